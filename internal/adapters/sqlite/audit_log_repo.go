package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/brewtrack/internal/ports/secondary"
)

// AuditLogRepository implements secondary.AuditLogRepository with SQLite.
type AuditLogRepository struct {
	db *sql.DB
}

// NewAuditLogRepository creates a new SQLite audit log repository.
func NewAuditLogRepository(db *sql.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

// Create persists a new audit entry.
func (r *AuditLogRepository) Create(ctx context.Context, entry *secondary.AuditEntry) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO audit_log (id, entity_type, entity_id, action, field_name, old_value, new_value) VALUES (?, ?, ?, ?, ?, ?, ?)",
		entry.ID, entry.EntityType, entry.EntityID, entry.Action,
		nullStr(entry.FieldName), nullStr(entry.OldValue), nullStr(entry.NewValue),
	)
	if err != nil {
		return fmt.Errorf("failed to create audit entry: %w", err)
	}

	return nil
}

// List retrieves entries, newest first, optionally filtered by entity type.
func (r *AuditLogRepository) List(ctx context.Context, filters secondary.AuditFilters) ([]*secondary.AuditEntry, error) {
	query := "SELECT id, entity_type, entity_id, action, field_name, old_value, new_value, created_at FROM audit_log WHERE 1=1"
	args := []any{}

	if filters.EntityType != "" {
		query += " AND entity_type = ?"
		args = append(args, filters.EntityType)
	}

	query += " ORDER BY created_at DESC, id DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []*secondary.AuditEntry
	for rows.Next() {
		var (
			field, oldVal, newVal sql.NullString
			createdAt             time.Time
		)

		entry := &secondary.AuditEntry{}
		err := rows.Scan(&entry.ID, &entry.EntityType, &entry.EntityID, &entry.Action,
			&field, &oldVal, &newVal, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}

		entry.FieldName = field.String
		entry.OldValue = oldVal.String
		entry.NewValue = newVal.String
		entry.CreatedAt = createdAt.Format(time.RFC3339)

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// Ensure AuditLogRepository implements the interface
var _ secondary.AuditLogRepository = (*AuditLogRepository)(nil)
