package cli

import (
	"github.com/spf13/cobra"
)

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "View and change restaurant settings",
	}

	cmd.AddCommand(newSettingsShowCmd())
	cmd.AddCommand(newSettingsSetCmd())

	return cmd
}

func newSettingsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Settings
			if err := client.Get("/api/v1/settings", &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newSettingsSetCmd() *cobra.Command {
	var name string
	var currency string
	var orderingOpen bool

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change settings (manager only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]any{}
			if cmd.Flags().Changed("name") {
				body["restaurant_name"] = name
			}
			if cmd.Flags().Changed("currency") {
				body["currency"] = currency
			}
			if cmd.Flags().Changed("ordering-open") {
				body["ordering_open"] = orderingOpen
			}

			var result Settings
			if err := client.Patch("/api/v1/settings", body, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Restaurant name")
	cmd.Flags().StringVar(&currency, "currency", "", "Currency code")
	cmd.Flags().BoolVar(&orderingOpen, "ordering-open", true, "Whether customers can place orders")

	return cmd
}
