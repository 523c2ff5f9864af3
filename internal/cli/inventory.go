package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/brewtrack/internal/models"
	"github.com/example/brewtrack/internal/wire"
)

var inventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Inspect the bottle inventory",
	Long: `Show bottle counts per beer type.

The inventory is only written through batch completion (credit) and order
dispatch (debit); there is no direct set command.`,
}

var inventoryShowCmd = &cobra.Command{
	Use:   "show [beer-type]",
	Short: "Show bottle counts, for all beer types or one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if len(args) == 1 {
			level, err := wire.InventoryService().Level(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to read inventory: %w", err)
			}
			fmt.Printf("%s: %d bottles\n", args[0], level)
			return nil
		}

		levels, err := wire.InventoryService().Levels(ctx)
		if err != nil {
			return fmt.Errorf("failed to read inventory: %w", err)
		}

		fmt.Printf("\n%-12s %8s\n", "BEER", "BOTTLES")
		fmt.Println("─────────────────────")
		for _, beer := range models.BeerTypes {
			fmt.Printf("%-12s %8d\n", beer, levels[beer])
		}
		fmt.Println()
		return nil
	},
}

func init() {
	inventoryCmd.AddCommand(inventoryShowCmd)
}

// InventoryCmd returns the inventory command
func InventoryCmd() *cobra.Command {
	return inventoryCmd
}
