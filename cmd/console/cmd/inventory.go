package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/muhammadnuman-eng/school-managment-crm-sub001/internal/console/resources"
)

// inventoryCmd groups inventory subcommands
var inventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Manage inventory items",
}

var inventoryItemsCmd = &cobra.Command{
	Use:   "items",
	Short: "List inventory items",
	Run: func(cmd *cobra.Command, args []string) {
		app, err := buildConsole(cmd)
		if err != nil {
			fail(err)
		}

		categoryID, _ := cmd.Flags().GetString("category")
		items, err := app.inventory.ListItems(context.Background(), categoryID)
		if err != nil {
			fail(err)
		}

		for _, item := range items.Items {
			fmt.Printf("%-12s %-28s qty=%-5d %-16s %s\n",
				item.SKU, item.Name, item.Quantity.Int(), item.CategoryName, item.StatusLabel)
		}
	},
}

var inventoryAdjustCmd = &cobra.Command{
	Use:   "adjust <item-id>",
	Short: "Adjust an item's stock by a signed delta",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app, err := buildConsole(cmd)
		if err != nil {
			fail(err)
		}

		delta, _ := cmd.Flags().GetInt("delta")
		reason, _ := cmd.Flags().GetString("reason")
		if delta == 0 {
			fail(fmt.Errorf("--delta must be non-zero"))
		}

		item, err := app.inventory.AdjustStock(context.Background(), args[0], resources.StockAdjustment{
			Delta:  delta,
			Reason: reason,
		})
		if err != nil {
			fail(err)
		}
		if item != nil {
			fmt.Printf("%s now at qty=%d\n", item.Name, item.Quantity.Int())
		}
	},
}

func init() {
	rootCmd.AddCommand(inventoryCmd)
	inventoryCmd.AddCommand(inventoryItemsCmd)
	inventoryCmd.AddCommand(inventoryAdjustCmd)

	inventoryItemsCmd.Flags().String("category", "", "Filter by category id")

	inventoryAdjustCmd.Flags().Int("delta", 0, "Signed stock delta")
	inventoryAdjustCmd.Flags().String("reason", "", "Adjustment reason")
}
