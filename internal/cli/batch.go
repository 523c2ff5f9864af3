package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/brewtrack/internal/ports/primary"
	"github.com/example/brewtrack/internal/wire"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Manage production batches",
	Long:  "Add, advance, inspect, and delete batches moving through the brewing pipeline",
}

var batchAddCmd = &cobra.Command{
	Use:   "add [id] [beer-type] [volume]",
	Short: "Register a new batch",
	Long:  "Register a new batch in the unset phase. Beer type is one of dunkel, pilsner, red_helles; volume is in litres.",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		volume, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid volume %q: must be a whole number of litres", args[2])
		}

		resp, err := wire.BatchService().AddBatch(ctx, primary.AddBatchRequest{
			BatchID:  args[0],
			BeerType: args[1],
			Volume:   volume,
		})
		if err != nil {
			return fmt.Errorf("failed to add batch: %w", err)
		}

		b := resp.Batch
		fmt.Printf("✓ Added batch %s: %d litres of %s\n", b.ID, b.Volume, b.BeerType)
		fmt.Printf("  Will yield %d bottles\n", b.Volume*2)
		return nil
	},
}

var batchPhaseCmd = &cobra.Command{
	Use:   "phase [id] [phase]",
	Short: "Advance a batch to its next phase",
	Long: `Advance a batch one step along the pipeline:
hot_brewing -> fermenting -> conditioning -> bottling -> finished

Fermenting and conditioning occupy a tank; pass one with --tank.
Finishing a batch credits its bottles to the inventory.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		tank, _ := cmd.Flags().GetString("tank")

		resp, err := wire.BatchService().ChangePhase(ctx, primary.ChangePhaseRequest{
			BatchID: args[0],
			Phase:   args[1],
			Tank:    tank,
		})
		if err != nil {
			return fmt.Errorf("failed to change phase: %w", err)
		}

		b := resp.Batch
		fmt.Printf("✓ Batch %s is now %s\n", b.ID, b.Phase)
		if b.Tank != "" {
			fmt.Printf("  Tank: %s\n", b.Tank)
		}
		if b.PhaseEnd != nil {
			fmt.Printf("  Phase ends: %s\n", b.PhaseEnd.Format(time.RFC1123))
		}
		if resp.CreditedBottles > 0 {
			fmt.Printf("  Credited %d bottles of %s to inventory\n", resp.CreditedBottles, b.BeerType)
		}
		return nil
	},
}

var batchShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show batch details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := wire.BatchService().GetBatch(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get batch: %w", err)
		}

		fmt.Printf("\nBatch:  %s\n", b.ID)
		fmt.Printf("Beer:   %s\n", b.BeerType)
		fmt.Printf("Volume: %d litres (%d bottles)\n", b.Volume, b.Volume*2)
		fmt.Printf("Phase:  %s\n", phaseLabel(b))
		if b.Tank != "" {
			fmt.Printf("Tank:   %s\n", b.Tank)
		}
		if b.PhaseStart != nil && b.PhaseEnd != nil {
			fmt.Printf("Window: %s -> %s\n", b.PhaseStart.Format(time.RFC1123), b.PhaseEnd.Format(time.RFC1123))
		}
		return nil
	},
}

var batchListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all batches",
	RunE: func(cmd *cobra.Command, args []string) error {
		batches, err := wire.BatchService().ListBatches(context.Background())
		if err != nil {
			return fmt.Errorf("failed to list batches: %w", err)
		}

		if len(batches) == 0 {
			fmt.Println("No batches found")
			return nil
		}

		fmt.Printf("\n%-12s %-12s %8s  %-14s %-10s\n", "ID", "BEER", "LITRES", "PHASE", "TANK")
		fmt.Println("────────────────────────────────────────────────────────────")
		for _, b := range batches {
			tank := b.Tank
			if tank == "" {
				tank = "-"
			}
			fmt.Printf("%-12s %-12s %8d  %-14s %-10s\n", b.ID, b.BeerType, b.Volume, phaseLabel(b), tank)
		}
		fmt.Println()
		return nil
	},
}

var batchDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a batch",
	Long:  "Delete a batch in any phase. A tank held by the batch is freed immediately.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := wire.BatchService().DeleteBatch(context.Background(), args[0]); err != nil {
			return fmt.Errorf("failed to delete batch: %w", err)
		}

		fmt.Printf("✓ Deleted batch %s\n", args[0])
		return nil
	},
}

// phaseLabel renders the phase for display; unset batches read better as
// "not started".
func phaseLabel(b *primary.Batch) string {
	if string(b.Phase) == "unset" {
		return "not started"
	}
	return string(b.Phase)
}

func init() {
	batchPhaseCmd.Flags().StringP("tank", "t", "", "Tank to occupy (fermenting and conditioning phases)")

	batchCmd.AddCommand(batchAddCmd)
	batchCmd.AddCommand(batchPhaseCmd)
	batchCmd.AddCommand(batchShowCmd)
	batchCmd.AddCommand(batchListCmd)
	batchCmd.AddCommand(batchDeleteCmd)
}

// BatchCmd returns the batch command
func BatchCmd() *cobra.Command {
	return batchCmd
}
