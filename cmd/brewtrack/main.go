package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/brewtrack/internal/cli"
	"github.com/example/brewtrack/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "brewtrack",
		Short:   "brewtrack - production tracker for a small brewery",
		Version: version.String(),
		Long: `brewtrack tracks beer batches through the brewing pipeline, allocates
fermentation and conditioning tanks, keeps the bottle inventory and order
book, and recommends what to brew next from a fitted demand forecast.`,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.BatchCmd())
	rootCmd.AddCommand(cli.TankCmd())
	rootCmd.AddCommand(cli.InventoryCmd())
	rootCmd.AddCommand(cli.OrderCmd())
	rootCmd.AddCommand(cli.ForecastCmd())
	rootCmd.AddCommand(cli.PlanCmd())
	rootCmd.AddCommand(cli.StateCmd())
	rootCmd.AddCommand(cli.LogCmd())
	rootCmd.AddCommand(cli.StatusCmd())

	// Developer tools
	rootCmd.AddCommand(cli.DevCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
