package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/brewtrack/internal/config"
	"github.com/example/brewtrack/internal/models"
	"github.com/example/brewtrack/internal/wire"
)

// StatusCmd returns the status command
func StatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show a brewery overview",
		Long: `Display the whole brewery at a glance:
- Batches in flight, grouped by phase
- Tank occupancy
- Bottle inventory
- Pending orders`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			title := "Brewery Status"
			if cfg, err := config.LoadConfig(); err == nil && cfg.BreweryName != "" {
				title = cfg.BreweryName
			}
			fmt.Println(color.New(color.Bold).Sprint(title))
			fmt.Println()

			if err := printBatchSection(ctx); err != nil {
				return err
			}
			if err := printTankSection(ctx); err != nil {
				return err
			}
			if err := printInventorySection(ctx); err != nil {
				return err
			}
			return printOrderSection(ctx)
		},
	}
}

func printBatchSection(ctx context.Context) error {
	batches, err := wire.BatchService().ListBatches(ctx)
	if err != nil {
		return fmt.Errorf("failed to list batches: %w", err)
	}

	fmt.Println("Batches:")
	if len(batches) == 0 {
		fmt.Println("  (none)")
		fmt.Println()
		return nil
	}

	now := time.Now()
	for _, b := range batches {
		line := fmt.Sprintf("  %s: %d L %s [%s]", b.ID, b.Volume, b.BeerType, phaseLabel(b))
		if b.Tank != "" {
			line += fmt.Sprintf(" in %s", b.Tank)
		}
		if b.PhaseEnd != nil && b.Phase != models.PhaseFinished {
			if b.PhaseEnd.Before(now) {
				line += color.New(color.FgHiGreen).Sprint(" (ready to advance)")
			} else {
				line += fmt.Sprintf(" (until %s)", b.PhaseEnd.Format("02 Jan 15:04"))
			}
		}
		fmt.Println(line)
	}
	fmt.Println()
	return nil
}

func printTankSection(ctx context.Context) error {
	tanks, err := wire.TankService().ListTanks(ctx)
	if err != nil {
		return fmt.Errorf("failed to list tanks: %w", err)
	}

	occupied := 0
	for _, t := range tanks {
		if t.HeldBy != "" {
			occupied++
		}
	}

	fmt.Printf("Tanks: %d of %d occupied\n", occupied, len(tanks))
	for _, t := range tanks {
		if t.HeldBy != "" {
			fmt.Printf("  %s: %s\n", t.Name, t.HeldBy)
		}
	}
	fmt.Println()
	return nil
}

func printInventorySection(ctx context.Context) error {
	levels, err := wire.InventoryService().Levels(ctx)
	if err != nil {
		return fmt.Errorf("failed to read inventory: %w", err)
	}

	fmt.Println("Inventory:")
	for _, beer := range models.BeerTypes {
		fmt.Printf("  %-12s %6d bottles\n", beer, levels[beer])
	}
	fmt.Println()
	return nil
}

func printOrderSection(ctx context.Context) error {
	orders, err := wire.OrderService().ListOrders(ctx)
	if err != nil {
		return fmt.Errorf("failed to list orders: %w", err)
	}

	pending := 0
	for _, o := range orders {
		if !o.Dispatched {
			pending++
		}
	}

	fmt.Printf("Orders: %d pending\n", pending)
	for _, o := range orders {
		if o.Dispatched {
			continue
		}
		fmt.Printf("  %s: %d x %s for %s, required %s\n",
			o.Invoice, o.Quantity, o.BeerType, o.Customer, o.DateRequired.Format("02-Jan-06"))
	}
	return nil
}
