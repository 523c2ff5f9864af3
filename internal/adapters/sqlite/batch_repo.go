// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/brewtrack/internal/core/faults"
	"github.com/example/brewtrack/internal/models"
	"github.com/example/brewtrack/internal/ports/secondary"
)

// BatchRepository implements secondary.BatchRepository with SQLite.
type BatchRepository struct {
	db *sql.DB
}

// NewBatchRepository creates a new SQLite batch repository.
func NewBatchRepository(db *sql.DB) *BatchRepository {
	return &BatchRepository{db: db}
}

const batchColumns = `id, beer_type, volume, phase, tank, last_completed, credited,
	hot_brewing_start, hot_brewing_end, fermenting_start, fermenting_end,
	conditioning_start, conditioning_end, bottling_start, bottling_end,
	created_at, updated_at`

// Create persists a batch with all of its fields. Snapshot restore depends
// on a single insert carrying phase, tank, windows and the credited flag.
func (r *BatchRepository) Create(ctx context.Context, batch *secondary.BatchRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO batches (id, beer_type, volume, phase, tank, last_completed, credited,
			hot_brewing_start, hot_brewing_end, fermenting_start, fermenting_end,
			conditioning_start, conditioning_end, bottling_start, bottling_end)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		batch.ID, string(batch.BeerType), batch.Volume, string(batch.Phase),
		nullStr(batch.Tank), string(batch.LastCompleted), batch.Credited,
		nullTime(batch.HotBrewingStart), nullTime(batch.HotBrewingEnd),
		nullTime(batch.FermentingStart), nullTime(batch.FermentingEnd),
		nullTime(batch.ConditioningStart), nullTime(batch.ConditioningEnd),
		nullTime(batch.BottlingStart), nullTime(batch.BottlingEnd),
	)
	if err != nil {
		return fmt.Errorf("failed to create batch: %w", err)
	}

	return nil
}

// GetByID retrieves a batch by its ID.
func (r *BatchRepository) GetByID(ctx context.Context, id string) (*secondary.BatchRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+batchColumns+" FROM batches WHERE id = ?", id,
	)

	record, err := scanBatch(row)
	if err == sql.ErrNoRows {
		return nil, faults.NotFound("batch", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get batch: %w", err)
	}

	return record, nil
}

// Exists reports whether a batch with the given ID is present.
func (r *BatchRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM batches WHERE id = ?", id).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check batch existence: %w", err)
	}
	return count > 0, nil
}

// Update rewrites an existing batch's mutable fields.
func (r *BatchRepository) Update(ctx context.Context, batch *secondary.BatchRecord) error {
	result, err := r.db.ExecContext(ctx, batchUpdateSQL, batchUpdateArgs(batch)...)
	if err != nil {
		return fmt.Errorf("failed to update batch: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return faults.NotFound("batch", batch.ID)
	}

	return nil
}

// Finish marks the batch finished and credits its bottles to the inventory
// in one transaction. Either both changes land or neither does.
func (r *BatchRepository) Finish(ctx context.Context, batch *secondary.BatchRecord, bottles int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, batchUpdateSQL, batchUpdateArgs(batch)...)
	if err != nil {
		return fmt.Errorf("failed to finish batch: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return faults.NotFound("batch", batch.ID)
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE inventory SET quantity = quantity + ?, updated_at = CURRENT_TIMESTAMP WHERE beer_type = ?",
		bottles, string(batch.BeerType),
	); err != nil {
		return fmt.Errorf("failed to credit inventory: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit finish: %w", err)
	}

	return nil
}

// Delete removes a batch regardless of phase.
func (r *BatchRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM batches WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete batch: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return faults.NotFound("batch", id)
	}

	return nil
}

// List retrieves all batches ordered by creation time.
func (r *BatchRepository) List(ctx context.Context) ([]*secondary.BatchRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+batchColumns+" FROM batches ORDER BY created_at, id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}
	defer rows.Close()

	var batches []*secondary.BatchRecord
	for rows.Next() {
		record, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan batch: %w", err)
		}
		batches = append(batches, record)
	}

	return batches, rows.Err()
}

// DeleteAll clears the table. Used by snapshot restore.
func (r *BatchRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM batches"); err != nil {
		return fmt.Errorf("failed to clear batches: %w", err)
	}
	return nil
}

const batchUpdateSQL = `UPDATE batches SET
	beer_type = ?, volume = ?, phase = ?, tank = ?, last_completed = ?, credited = ?,
	hot_brewing_start = ?, hot_brewing_end = ?, fermenting_start = ?, fermenting_end = ?,
	conditioning_start = ?, conditioning_end = ?, bottling_start = ?, bottling_end = ?,
	updated_at = CURRENT_TIMESTAMP
	WHERE id = ?`

func batchUpdateArgs(batch *secondary.BatchRecord) []any {
	return []any{
		string(batch.BeerType), batch.Volume, string(batch.Phase),
		nullStr(batch.Tank), string(batch.LastCompleted), batch.Credited,
		nullTime(batch.HotBrewingStart), nullTime(batch.HotBrewingEnd),
		nullTime(batch.FermentingStart), nullTime(batch.FermentingEnd),
		nullTime(batch.ConditioningStart), nullTime(batch.ConditioningEnd),
		nullTime(batch.BottlingStart), nullTime(batch.BottlingEnd),
		batch.ID,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBatch(row rowScanner) (*secondary.BatchRecord, error) {
	var (
		beer, phase, last            sql.NullString
		tank                         sql.NullString
		hbStart, hbEnd, fStart, fEnd sql.NullTime
		cStart, cEnd, bStart, bEnd   sql.NullTime
	)

	record := &secondary.BatchRecord{}
	err := row.Scan(&record.ID, &beer, &record.Volume, &phase, &tank, &last, &record.Credited,
		&hbStart, &hbEnd, &fStart, &fEnd, &cStart, &cEnd, &bStart, &bEnd,
		&record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return nil, err
	}

	record.BeerType = models.BeerType(beer.String)
	record.Phase = models.Phase(phase.String)
	record.Tank = tank.String
	record.LastCompleted = models.Phase(last.String)
	record.HotBrewingStart, record.HotBrewingEnd = timePtr(hbStart), timePtr(hbEnd)
	record.FermentingStart, record.FermentingEnd = timePtr(fStart), timePtr(fEnd)
	record.ConditioningStart, record.ConditioningEnd = timePtr(cStart), timePtr(cEnd)
	record.BottlingStart, record.BottlingEnd = timePtr(bStart), timePtr(bEnd)

	return record, nil
}

func nullStr(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

// Ensure BatchRepository implements the interface
var _ secondary.BatchRepository = (*BatchRepository)(nil)
