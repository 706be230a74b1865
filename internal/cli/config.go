package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config holds CLI configuration
type Config struct {
	ServerURL  string
	CookieFile string
	Output     string
	Verbose    bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:  getEnvOrDefault("TABLEKIT_SERVER", "http://localhost:8080"),
		CookieFile: getEnvOrDefault("TABLEKIT_COOKIE_FILE", defaultCookieFile()),
		Output:     "text",
		Verbose:    false,
	}
}

// LoadCookies reads the persisted session cookies. A missing file means
// no session.
func (c *Config) LoadCookies() (map[string]string, error) {
	data, err := os.ReadFile(c.CookieFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	cookies := map[string]string{}
	if err := json.Unmarshal(data, &cookies); err != nil {
		return nil, err
	}
	return cookies, nil
}

// SaveCookies persists the session cookies for later invocations
func (c *Config) SaveCookies(cookies map[string]string) error {
	dir := filepath.Dir(c.CookieFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	data, err := json.Marshal(cookies)
	if err != nil {
		return err
	}
	return os.WriteFile(c.CookieFile, data, 0600)
}

// ClearCookies removes the persisted session cookies
func (c *Config) ClearCookies() error {
	err := os.Remove(c.CookieFile)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func defaultCookieFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tablekit/cookies"
	}
	return filepath.Join(home, ".tablekit", "cookies")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
