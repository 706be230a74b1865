package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newOrderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Place and track orders",
	}

	cmd.AddCommand(newOrderCreateCmd())
	cmd.AddCommand(newOrderListCmd())
	cmd.AddCommand(newOrderGetCmd())
	cmd.AddCommand(newOrderTableCmd())
	cmd.AddCommand(newOrderStatusCmd())
	cmd.AddCommand(newOrderDeleteCmd())

	return cmd
}

func newOrderCreateCmd() *cobra.Command {
	var tableID int64
	var note string

	cmd := &cobra.Command{
		Use:   "create <item-id>:<qty> [<item-id>:<qty>...]",
		Short: "Place an order",
		Long: `Place an order for one or more menu items.

Each argument is an item ID and quantity separated by a colon, e.g.
"12:2" for two of item 12. Customers order for their own table;
staff must name the table with --table.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines := make([]map[string]any, 0, len(args))
			for _, arg := range args {
				itemID, qty, err := parseOrderLine(arg)
				if err != nil {
					return err
				}
				lines = append(lines, map[string]any{"item_id": itemID, "quantity": qty})
			}

			body := map[string]any{"lines": lines}
			if tableID != 0 {
				body["table_id"] = tableID
			}
			if note != "" {
				body["note"] = note
			}

			var result Order
			if err := client.Post("/api/v1/orders", body, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().Int64Var(&tableID, "table", 0, "Table ID (staff only; customers use their session)")
	cmd.Flags().StringVar(&note, "note", "", "Note for the kitchen")

	return cmd
}

func parseOrderLine(arg string) (int64, int, error) {
	itemStr, qtyStr, found := strings.Cut(arg, ":")
	if !found {
		qtyStr = "1"
	}
	itemID, err := strconv.ParseInt(itemStr, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid item id %q", itemStr)
	}
	qty, err := strconv.Atoi(qtyStr)
	if err != nil || qty < 1 {
		return 0, 0, fmt.Errorf("invalid quantity %q", qtyStr)
	}
	return itemID, qty, nil
}

func newOrderListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all orders (kitchen and manager)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Order
			if err := client.Get("/api/v1/orders", &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newOrderGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Order
			if err := client.Get("/api/v1/orders/"+args[0], &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newOrderTableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "table <table-id>",
		Short: "List a table's orders",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Order
			if err := client.Get("/api/v1/tables/"+args[0]+"/orders", &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newOrderStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Move an order to a new status (kitchen and manager)",
		Long: `Move an order along its lifecycle.

Statuses flow open -> preparing -> ready -> delivered, and any order
that is not yet delivered may be cancelled.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Order
			body := map[string]string{"status": args[1]}
			if err := client.Patch("/api/v1/orders/"+args[0]+"/status", body, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newOrderDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an order (manager only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/orders/" + args[0]); err != nil {
				return err
			}
			NewOutput(cfg.Output).PrintMessage(fmt.Sprintf("Order %s deleted", args[0]))
			return nil
		},
	}
}
