package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/brewtrack/internal/models"
	"github.com/example/brewtrack/internal/ports/secondary"
)

// ForecastRepository implements secondary.ForecastRepository with SQLite.
// Month starts are stored normalized to UTC midnight on the first of the
// month, so lookups can match on equality.
type ForecastRepository struct {
	db *sql.DB
}

// NewForecastRepository creates a new SQLite forecast repository.
func NewForecastRepository(db *sql.DB) *ForecastRepository {
	return &ForecastRepository{db: db}
}

// Replace swaps a beer type's stored forecast for a freshly fitted one.
func (r *ForecastRepository) Replace(ctx context.Context, beer models.BeerType, points []secondary.ForecastPoint) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM forecasts WHERE beer_type = ?", string(beer)); err != nil {
		return fmt.Errorf("failed to clear forecast: %w", err)
	}

	for _, p := range points {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO forecasts (beer_type, month_start, predicted) VALUES (?, ?, ?)",
			string(beer), normalizeMonth(p.MonthStart), p.Predicted,
		); err != nil {
			return fmt.Errorf("failed to store forecast point: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit forecast: %w", err)
	}

	return nil
}

// Get returns the predicted demand for a beer type in the month starting at
// monthStart. The bool is false when no value is stored.
func (r *ForecastRepository) Get(ctx context.Context, beer models.BeerType, monthStart time.Time) (int, bool, error) {
	var predicted int
	err := r.db.QueryRowContext(ctx,
		"SELECT predicted FROM forecasts WHERE beer_type = ? AND month_start = ?",
		string(beer), normalizeMonth(monthStart),
	).Scan(&predicted)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get forecast: %w", err)
	}
	return predicted, true, nil
}

// All returns every stored forecast point grouped by beer type.
func (r *ForecastRepository) All(ctx context.Context) (map[models.BeerType][]secondary.ForecastPoint, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT beer_type, month_start, predicted FROM forecasts ORDER BY beer_type, month_start",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list forecasts: %w", err)
	}
	defer rows.Close()

	out := make(map[models.BeerType][]secondary.ForecastPoint)
	for rows.Next() {
		var beer string
		var point secondary.ForecastPoint
		if err := rows.Scan(&beer, &point.MonthStart, &point.Predicted); err != nil {
			return nil, fmt.Errorf("failed to scan forecast: %w", err)
		}
		out[models.BeerType(beer)] = append(out[models.BeerType(beer)], point)
	}

	return out, rows.Err()
}

// HasAny reports whether any forecast has been fitted at all.
func (r *ForecastRepository) HasAny(ctx context.Context) (bool, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM forecasts").Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check forecast state: %w", err)
	}
	return count > 0, nil
}

func normalizeMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// Ensure ForecastRepository implements the interface
var _ secondary.ForecastRepository = (*ForecastRepository)(nil)
