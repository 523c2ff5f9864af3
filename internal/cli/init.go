package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/brewtrack/internal/config"
	"github.com/example/brewtrack/internal/db"
	"github.com/example/brewtrack/internal/version"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	var breweryName string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the brewtrack database",
		Long:  `Initialize the brewtrack database at ~/.brewtrack/brewtrack.db with the required schema.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, err := db.GetDBPath()
			if err != nil {
				return fmt.Errorf("failed to get database path: %w", err)
			}

			fmt.Printf("Initializing brewtrack database at %s\n", dbPath)

			if _, err := db.GetDB(); err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}

			fmt.Println("✓ Database initialized successfully")

			if _, err := config.LoadConfig(); err != nil {
				cfg := &config.Config{Version: version.Number, BreweryName: breweryName}
				if err := config.SaveConfig(cfg); err != nil {
					return fmt.Errorf("failed to write config: %w", err)
				}
				fmt.Println("✓ Config file created at ~/.brewtrack/config.json")
			}

			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  brewtrack batch add B-1 dunkel 1000")
			fmt.Println("  brewtrack status")

			return nil
		},
	}

	cmd.Flags().StringVar(&breweryName, "name", "", "Brewery name shown in status output")

	return cmd
}
