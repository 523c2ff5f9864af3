package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/brewtrack/internal/models"
	"github.com/example/brewtrack/internal/ports/primary"
	"github.com/example/brewtrack/internal/wire"
)

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Fit and inspect demand forecasts",
	Long:  "Fit a monthly demand forecast from a historical sales CSV and inspect the stored curve",
}

var forecastFitCmd = &cobra.Command{
	Use:   "fit [sales-csv]",
	Short: "Fit the demand forecast from a sales export",
	Long: `Fit the per-beer monthly demand model from a historical sales CSV.

The CSV needs Date Required (e.g. 14-Jun-19), Recipe and Quantity ordered
columns; rows with missing or malformed values are dropped and counted.
Fitting replaces any previously stored forecast.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		horizon, _ := cmd.Flags().GetInt("horizon")

		resp, err := wire.ForecastService().Fit(context.Background(), primary.FitForecastRequest{
			CSVPath:       args[0],
			HorizonMonths: horizon,
		})
		if err != nil {
			return fmt.Errorf("failed to fit forecast: %w", err)
		}

		fmt.Printf("✓ Fitted forecast from %d sales rows", resp.RowsLoaded)
		if resp.RowsDropped > 0 {
			fmt.Printf(" (%d malformed rows dropped)", resp.RowsDropped)
		}
		fmt.Println()
		for _, beer := range models.BeerTypes {
			if n := resp.Points[beer]; n > 0 {
				fmt.Printf("  %s: %d months\n", beer, n)
			}
		}
		return nil
	},
}

var forecastShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored forecast",
	RunE: func(cmd *cobra.Command, args []string) error {
		curves, err := wire.ForecastService().Show(context.Background())
		if err != nil {
			return fmt.Errorf("failed to read forecast: %w", err)
		}

		if len(curves) == 0 {
			fmt.Println("No forecast fitted yet. Run `brewtrack forecast fit <sales.csv>` first.")
			return nil
		}

		for _, beer := range models.BeerTypes {
			points := curves[beer]
			if len(points) == 0 {
				continue
			}
			fmt.Printf("\n%s:\n", beer)
			for _, p := range points {
				fmt.Printf("  %s  %6d bottles\n", p.MonthStart.Format("Jan 2006"), p.Predicted)
			}
		}
		fmt.Println()
		return nil
	},
}

func init() {
	forecastFitCmd.Flags().IntP("horizon", "H", 0, "Forecast horizon in months (default 12)")

	forecastCmd.AddCommand(forecastFitCmd)
	forecastCmd.AddCommand(forecastShowCmd)
}

// ForecastCmd returns the forecast command
func ForecastCmd() *cobra.Command {
	return forecastCmd
}
