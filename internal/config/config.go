package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/tablekit/tablekit/internal/storage/redis"
)

// Storage backend names accepted in StorageConfig.Type
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

// Config groups the application configuration, read via Viper from the
// environment and optionally a config file
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Storage StorageConfig
	Session SessionConfig
	Staff   StaffConfig
	SSE     SSEConfig
}

// AppConfig is general application configuration
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// HTTPConfig configures the HTTP server
type HTTPConfig struct {
	Host string
	Port int
}

// Addr returns the listen address (host:port)
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StorageConfig selects and configures the storage backend
type StorageConfig struct {
	Type  string
	Redis redis.Config
}

// SessionConfig configures credential tokens. Secret signs both the
// staff and customer tracks; with an empty secret every login fails.
type SessionConfig struct {
	Secret   string
	TokenTTL time.Duration
}

// StaffConfig holds the bootstrap staff passwords seeded into storage
// at startup. An empty password leaves that role unable to log in.
type StaffConfig struct {
	KitchenPassword string
	ManagerPassword string
}

// SSEConfig configures the event stream
type SSEConfig struct {
	HeartbeatInterval time.Duration
	SendBufferSize    int
}

// Load reads configuration from environment variables and optionally a
// .env file in the working directory. Environment variables win.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // missing file is fine

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Env:  v.GetString("APP_ENV"),
			Name: v.GetString("APP_NAME"),
		},
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		Storage: StorageConfig{
			Type: v.GetString("STORAGE_TYPE"),
			Redis: redis.Config{
				URL:          v.GetString("REDIS_URL"),
				PoolSize:     v.GetInt("REDIS_POOL_SIZE"),
				MinIdleConns: v.GetInt("REDIS_MIN_IDLE_CONNS"),
			},
		},
		Session: SessionConfig{
			Secret:   v.GetString("SESSION_SECRET"),
			TokenTTL: v.GetDuration("SESSION_TOKEN_TTL"),
		},
		Staff: StaffConfig{
			KitchenPassword: v.GetString("KITCHEN_PASSWORD"),
			ManagerPassword: v.GetString("MANAGER_PASSWORD"),
		},
		SSE: SSEConfig{
			HeartbeatInterval: v.GetDuration("SSE_HEARTBEAT_INTERVAL"),
			SendBufferSize:    v.GetInt("SSE_SEND_BUFFER_SIZE"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "tablekit")
	v.SetDefault("HTTP_HOST", "")
	v.SetDefault("HTTP_PORT", 8080)
	v.SetDefault("STORAGE_TYPE", StorageMemory)
	v.SetDefault("REDIS_URL", "redis://localhost:6379")
	v.SetDefault("REDIS_POOL_SIZE", 10)
	v.SetDefault("REDIS_MIN_IDLE_CONNS", 2)
	v.SetDefault("SESSION_SECRET", "")
	v.SetDefault("SESSION_TOKEN_TTL", 12*time.Hour)
	v.SetDefault("KITCHEN_PASSWORD", "")
	v.SetDefault("MANAGER_PASSWORD", "")
	v.SetDefault("SSE_HEARTBEAT_INTERVAL", 30*time.Second)
	v.SetDefault("SSE_SEND_BUFFER_SIZE", 64)
}

func (c *Config) validate() error {
	switch c.Storage.Type {
	case StorageMemory, StorageRedis:
	default:
		return fmt.Errorf("unknown storage type %q", c.Storage.Type)
	}
	if c.Session.TokenTTL <= 0 {
		return fmt.Errorf("session token TTL must be positive")
	}
	return nil
}
