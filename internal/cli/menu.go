package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newMenuCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "View and edit the menu",
	}

	cmd.AddCommand(newMenuShowCmd())
	cmd.AddCommand(newMenuCategoryCmd())
	cmd.AddCommand(newMenuItemCmd())

	return cmd
}

func newMenuShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the full menu",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []MenuSection
			if err := client.Get("/api/v1/menu", &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newMenuCategoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage menu categories (manager only)",
	}

	var position int

	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Category
			body := map[string]any{"name": args[0], "position": position}
			if err := client.Post("/api/v1/menu/categories", body, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
	addCmd.Flags().IntVar(&position, "position", 0, "Display position")

	var updatePosition int
	updateCmd := &cobra.Command{
		Use:   "update <id> <name>",
		Short: "Rename or reposition a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Category
			body := map[string]any{"name": args[1], "position": updatePosition}
			if err := client.Patch("/api/v1/menu/categories/"+args[0], body, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
	updateCmd.Flags().IntVar(&updatePosition, "position", 0, "Display position")

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an empty category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/menu/categories/" + args[0]); err != nil {
				return err
			}
			NewOutput(cfg.Output).PrintMessage(fmt.Sprintf("Category %s deleted", args[0]))
			return nil
		},
	}

	cmd.AddCommand(addCmd, updateCmd, deleteCmd)
	return cmd
}

func newMenuItemCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage menu items (manager only)",
	}

	cmd.AddCommand(newMenuItemAddCmd())
	cmd.AddCommand(newMenuItemUpdateCmd())
	cmd.AddCommand(newMenuItemDeleteCmd())

	return cmd
}

type itemFlags struct {
	category    int64
	description string
	price       int64
	unavailable bool
}

func (f *itemFlags) register(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&f.category, "category", 0, "Category ID")
	cmd.Flags().StringVar(&f.description, "description", "", "Item description")
	cmd.Flags().Int64Var(&f.price, "price", 0, "Price in cents")
	cmd.Flags().BoolVar(&f.unavailable, "unavailable", false, "Mark the item as unavailable")
}

func (f *itemFlags) body(name string) map[string]any {
	return map[string]any{
		"category_id": f.category,
		"name":        name,
		"description": f.description,
		"price_cents": f.price,
		"available":   !f.unavailable,
	}
}

func newMenuItemAddCmd() *cobra.Command {
	var flags itemFlags

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a menu item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result MenuItem
			if err := client.Post("/api/v1/menu/items", flags.body(args[0]), &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	flags.register(cmd)
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("price")

	return cmd
}

func newMenuItemUpdateCmd() *cobra.Command {
	var flags itemFlags

	cmd := &cobra.Command{
		Use:   "update <id> <name>",
		Short: "Update a menu item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("invalid item id %q", args[0])
			}

			var result MenuItem
			if err := client.Put("/api/v1/menu/items/"+args[0], flags.body(args[1]), &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	flags.register(cmd)
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("price")

	return cmd
}

func newMenuItemDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a menu item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/menu/items/" + args[0]); err != nil {
				return err
			}
			NewOutput(cfg.Output).PrintMessage(fmt.Sprintf("Item %s deleted", args[0]))
			return nil
		},
	}
}
