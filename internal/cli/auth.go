package cli

import (
	"strconv"

	"github.com/spf13/cobra"
)

func newLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the server",
	}

	cmd.AddCommand(newTableLoginCmd())
	cmd.AddCommand(newStaffLoginCmd("kitchen", "/api/v1/auth/kitchen-login"))
	cmd.AddCommand(newStaffLoginCmd("manager", "/api/v1/auth/manager-login"))

	return cmd
}

func newTableLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "table <table-id> <pin>",
		Short: "Log in as a customer at a table",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tableID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return err
			}

			var result LoginResult
			body := map[string]any{"table_id": tableID, "pin": args[1]}
			if err := client.Post("/api/v1/auth/table-login", body, &result); err != nil {
				return err
			}

			if err := cfg.SaveCookies(client.Cookies()); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newStaffLoginCmd(role, path string) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   role,
		Short: "Log in as " + role + " staff",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result LoginResult
			body := map[string]string{"password": password}
			if err := client.Post(path, body, &result); err != nil {
				return err
			}

			if err := cfg.SaveCookies(client.Cookies()); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "Staff password")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newLogoutCmd() *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Log out and discard sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			var body any
			if role != "" {
				body = map[string]string{"role": role}
			}
			if err := client.Post("/api/v1/auth/logout", body, nil); err != nil {
				return err
			}

			// The server's cookie deletions have been applied to the client
			if err := cfg.SaveCookies(client.Cookies()); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage("Logged out")
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", "", "Log out of one track only (staff or customer)")

	return cmd
}

func newSessionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Session
			if err := client.Get("/api/v1/auth/session", &result); err != nil {
				return err
			}

			// The server may have cleared a stale customer cookie
			if err := cfg.SaveCookies(client.Cookies()); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}
