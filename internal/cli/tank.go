package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/brewtrack/internal/wire"
)

var tankCmd = &cobra.Command{
	Use:   "tank",
	Short: "Inspect the tank fleet",
	Long:  "Show the fixed tank fleet and which batch currently holds each tank",
}

var tankListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tanks with their occupancy",
	RunE: func(cmd *cobra.Command, args []string) error {
		tanks, err := wire.TankService().ListTanks(context.Background())
		if err != nil {
			return fmt.Errorf("failed to list tanks: %w", err)
		}

		fmt.Printf("\n%-12s %8s  %-22s %s\n", "TANK", "LITRES", "CAPABILITIES", "HELD BY")
		fmt.Println("──────────────────────────────────────────────────────────")
		for _, t := range tanks {
			held := color.New(color.FgHiGreen).Sprint("free")
			if t.HeldBy != "" {
				held = color.New(color.FgYellow).Sprint(t.HeldBy)
			}
			fmt.Printf("%-12s %8d  %-22s %s\n", t.Name, t.Capacity, strings.Join(t.Capabilities, ", "), held)
		}
		fmt.Println()
		return nil
	},
}

func init() {
	tankCmd.AddCommand(tankListCmd)
}

// TankCmd returns the tank command
func TankCmd() *cobra.Command {
	return tankCmd
}
