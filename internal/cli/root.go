package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "tablectl",
		Short: "CLI tool for the restaurant ordering API",
		Long: `tablectl is a CLI tool for interacting with the restaurant ordering
JSON API.

It supports customer, kitchen and manager sessions, table and menu
management, order tracking, and real-time SSE event streaming.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cookies, err := cfg.LoadCookies()
			if err != nil {
				return err
			}

			client = NewClient(cfg.ServerURL, cookies)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: TABLEKIT_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.CookieFile, "cookie-file", cfg.CookieFile, "Cookie file path (env: TABLEKIT_COOKIE_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newSessionCmd())
	rootCmd.AddCommand(newTableCmd())
	rootCmd.AddCommand(newMenuCmd())
	rootCmd.AddCommand(newOrderCmd())
	rootCmd.AddCommand(newSettingsCmd())
	rootCmd.AddCommand(newEventsCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
