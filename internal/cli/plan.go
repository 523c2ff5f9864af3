package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/brewtrack/internal/core/faults"
	"github.com/example/brewtrack/internal/wire"
)

// PlanCmd returns the plan command
func PlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Recommend what to brew next",
		Long: `Reconcile projected output against forecast demand over the next three
months and recommend the beer type to brew next, plus the largest free
fermentation-capable tank to brew it in.

Planning is a pure read: it never changes batches, orders or inventory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := wire.PlannerService().Plan(context.Background())
			if err != nil {
				var notReady *faults.ForecastNotReadyError
				if errors.As(err, &notReady) {
					fmt.Println("No forecast fitted yet. Run `brewtrack forecast fit <sales.csv>` first.")
					return nil
				}
				return fmt.Errorf("failed to plan: %w", err)
			}

			fmt.Printf("\nProduction plan, %s to %s\n\n",
				resp.Months[0].Format("Jan 2006"), resp.Months[2].Format("Jan 2006"))

			fmt.Printf("%-12s %10s %10s %10s\n", "BEER", "PROJECTED", "FORECAST", "DEFICIT")
			fmt.Println("─────────────────────────────────────────────")
			for _, row := range resp.Rows {
				projected, forecast := 0, 0
				for i := 0; i < 3; i++ {
					projected += row.Projected[i]
					forecast += row.Forecast[i]
				}
				deficit := fmt.Sprintf("%+d", row.Deficit)
				if row.Deficit < 0 {
					deficit = color.New(color.FgRed).Sprint(deficit)
				}
				fmt.Printf("%-12s %10d %10d %10s\n", row.BeerType, projected, forecast, deficit)
			}
			fmt.Println()

			fmt.Printf("Brew next: %s\n", color.New(color.FgHiGreen, color.Bold).Sprint(resp.Recommended))
			if resp.Tank != "" {
				fmt.Printf("Tank:      %s (%d litres)\n", resp.Tank, resp.TankCapacity)
			} else {
				fmt.Println(color.New(color.FgYellow).Sprint("No fermentation-capable tank is free right now"))
			}
			return nil
		},
	}
}
