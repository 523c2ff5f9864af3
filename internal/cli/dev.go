package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/brewtrack/internal/db"
)

// DevCmd returns the dev command group for development utilities.
func DevCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Development utilities",
		Long: `Development utilities for working with a throwaway brewtrack database.

These commands require BREWTRACK_DB_PATH to point somewhere other than the
default database, to prevent accidental modification of real data.`,
	}

	cmd.AddCommand(devResetCmd())
	return cmd
}

func devResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Reset the dev database with fresh fixtures",
		Long: `Delete the dev database and recreate it with fixture data: batches in
several phases, stocked inventory, pending orders and a fitted forecast.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath := os.Getenv("BREWTRACK_DB_PATH")
			if dbPath == "" {
				return fmt.Errorf("BREWTRACK_DB_PATH not set - refusing to reset the default database")
			}

			if err := os.Remove(dbPath); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("failed to remove dev database: %w", err)
			}

			database, err := db.GetDB()
			if err != nil {
				return fmt.Errorf("failed to recreate database: %w", err)
			}

			if err := db.SeedFixtures(database); err != nil {
				return fmt.Errorf("failed to seed fixtures: %w", err)
			}

			fmt.Printf("✓ Reset dev database at %s with fixtures\n", dbPath)
			return nil
		},
	}
}
