package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/brewtrack/internal/core/faults"
	"github.com/example/brewtrack/internal/models"
	"github.com/example/brewtrack/internal/ports/secondary"
)

// InventoryRepository implements secondary.InventoryRepository with SQLite.
// The inventory table always carries one row per beer type; the schema
// seeds them at zero, so reads never miss.
type InventoryRepository struct {
	db *sql.DB
}

// NewInventoryRepository creates a new SQLite inventory repository.
func NewInventoryRepository(db *sql.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// Level returns the bottle count for one beer type.
func (r *InventoryRepository) Level(ctx context.Context, beer models.BeerType) (int, error) {
	var quantity int
	err := r.db.QueryRowContext(ctx,
		"SELECT quantity FROM inventory WHERE beer_type = ?", string(beer),
	).Scan(&quantity)
	if err == sql.ErrNoRows {
		return 0, faults.NotFound("inventory", string(beer))
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read stock level: %w", err)
	}
	return quantity, nil
}

// Levels returns the bottle counts for all beer types.
func (r *InventoryRepository) Levels(ctx context.Context) (map[models.BeerType]int, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT beer_type, quantity FROM inventory")
	if err != nil {
		return nil, fmt.Errorf("failed to read stock levels: %w", err)
	}
	defer rows.Close()

	levels := make(map[models.BeerType]int)
	for rows.Next() {
		var beer string
		var quantity int
		if err := rows.Scan(&beer, &quantity); err != nil {
			return nil, fmt.Errorf("failed to scan stock level: %w", err)
		}
		levels[models.BeerType(beer)] = quantity
	}

	return levels, rows.Err()
}

// Credit adds bottles to a beer type's count.
func (r *InventoryRepository) Credit(ctx context.Context, beer models.BeerType, bottles int) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE inventory SET quantity = quantity + ?, updated_at = CURRENT_TIMESTAMP WHERE beer_type = ?",
		bottles, string(beer),
	)
	if err != nil {
		return fmt.Errorf("failed to credit inventory: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return faults.NotFound("inventory", string(beer))
	}

	return nil
}

// Set overwrites a beer type's count. Used by snapshot restore.
func (r *InventoryRepository) Set(ctx context.Context, beer models.BeerType, bottles int) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE inventory SET quantity = ?, updated_at = CURRENT_TIMESTAMP WHERE beer_type = ?",
		bottles, string(beer),
	)
	if err != nil {
		return fmt.Errorf("failed to set stock level: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return faults.NotFound("inventory", string(beer))
	}

	return nil
}

// Ensure InventoryRepository implements the interface
var _ secondary.InventoryRepository = (*InventoryRepository)(nil)
