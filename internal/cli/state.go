package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/brewtrack/internal/wire"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Export and import tracker state",
	Long:  "Move the complete tracker state (batches, orders, inventory, forecast) in and out of JSON files",
}

var stateExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export all state to a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := wire.StateService().Snapshot(context.Background())
		if err != nil {
			return fmt.Errorf("failed to snapshot state: %w", err)
		}

		if err := wire.SnapshotStore().Save(args[0], snap); err != nil {
			return fmt.Errorf("failed to write snapshot: %w", err)
		}

		fmt.Printf("✓ Exported %d batches, %d orders and %d forecast curves to %s\n",
			len(snap.Batches), len(snap.Orders), len(snap.Forecasts), args[0])
		return nil
	},
}

var stateImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Replace all state from a JSON file",
	Long:  "Replace the complete tracker state with a previously exported snapshot. Existing state is discarded.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := wire.SnapshotStore().Load(args[0])
		if err != nil {
			return fmt.Errorf("failed to read snapshot: %w", err)
		}

		if err := wire.StateService().Restore(context.Background(), snap); err != nil {
			return fmt.Errorf("failed to restore state: %w", err)
		}

		fmt.Printf("✓ Imported %d batches and %d orders from %s\n",
			len(snap.Batches), len(snap.Orders), args[0])
		return nil
	},
}

func init() {
	stateCmd.AddCommand(stateExportCmd)
	stateCmd.AddCommand(stateImportCmd)
}

// StateCmd returns the state command
func StateCmd() *cobra.Command {
	return stateCmd
}
