package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/brewtrack/internal/ports/primary"
	"github.com/example/brewtrack/internal/wire"
)

// LogCmd returns the log command
func LogCmd() *cobra.Command {
	var entityType string
	var limit int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the audit trail",
		Long:  "List recorded mutations (batch, order, inventory, forecast, state), newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := wire.AuditService().ListEntries(context.Background(), primary.AuditFilters{
				EntityType: entityType,
				Limit:      limit,
			})
			if err != nil {
				return fmt.Errorf("failed to list audit entries: %w", err)
			}

			if len(entries) == 0 {
				fmt.Println("No audit entries found")
				return nil
			}

			for _, e := range entries {
				fmt.Printf("%s  %-9s %-10s %s", e.CreatedAt, e.EntityType, e.Action, e.EntityID)
				if e.FieldName != "" {
					fmt.Printf("  %s: %s -> %s", e.FieldName, e.OldValue, e.NewValue)
				}
				fmt.Println()
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&entityType, "type", "t", "", "Filter by entity type (batch, order, inventory, forecast, state)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "Maximum entries to show (0 for all)")

	return cmd
}
