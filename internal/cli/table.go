package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTableCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Manage tables (manager only)",
	}

	cmd.AddCommand(newTableListCmd())
	cmd.AddCommand(newTableCreateCmd())
	cmd.AddCommand(newTableGetCmd())
	cmd.AddCommand(newTableRenameCmd())
	cmd.AddCommand(newTableDeleteCmd())
	cmd.AddCommand(newTableSetPINCmd())
	cmd.AddCommand(newTableRandomizePINCmd())

	return cmd
}

func newTableListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Table
			if err := client.Get("/api/v1/tables", &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newTableCreateCmd() *cobra.Command {
	var pin string

	cmd := &cobra.Command{
		Use:   "create <label>",
		Short: "Create a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Table
			body := map[string]string{"label": args[0]}
			if pin != "" {
				body["pin"] = pin
			}
			if err := client.Post("/api/v1/tables", body, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&pin, "pin", "", "Initial PIN (4 digits, random when omitted)")

	return cmd
}

func newTableGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Table
			if err := client.Get("/api/v1/tables/"+args[0], &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newTableRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <label>",
		Short: "Rename a table",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Table
			body := map[string]string{"label": args[1]}
			if err := client.Patch("/api/v1/tables/"+args[0], body, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newTableDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/tables/" + args[0]); err != nil {
				return err
			}
			NewOutput(cfg.Output).PrintMessage(fmt.Sprintf("Table %s deleted", args[0]))
			return nil
		},
	}
}

func newTableSetPINCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-pin <id> <pin>",
		Short: "Set a table's PIN, signing out its customers",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Table
			body := map[string]string{"pin": args[1]}
			if err := client.Put("/api/v1/tables/"+args[0]+"/pin", body, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newTableRandomizePINCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "randomize-pin <id>",
		Short: "Give a table a fresh random PIN, signing out its customers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Table
			if err := client.Post("/api/v1/tables/"+args[0]+"/pin/randomize", nil, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}
