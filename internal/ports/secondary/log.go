package secondary

import "context"

// LogWriter defines the interface for writing audit log entries. Audit
// writes are best effort: a failed write never fails the mutation it
// records.
type LogWriter interface {
	// LogCreate logs a create operation for an entity.
	LogCreate(ctx context.Context, entityType, entityID string) error

	// LogUpdate logs an update operation for an entity field.
	// fieldName, oldValue, newValue describe what changed.
	LogUpdate(ctx context.Context, entityType, entityID, fieldName, oldValue, newValue string) error

	// LogDelete logs a delete operation for an entity.
	LogDelete(ctx context.Context, entityType, entityID string) error
}

// AuditLogRepository defines the secondary port for reading and writing
// persisted audit entries.
type AuditLogRepository interface {
	// Create persists a new audit entry.
	Create(ctx context.Context, entry *AuditEntry) error

	// List retrieves entries, newest first, optionally filtered by entity
	// type. A zero limit means no limit.
	List(ctx context.Context, filters AuditFilters) ([]*AuditEntry, error)
}

// AuditEntry is one recorded mutation.
type AuditEntry struct {
	ID         string
	EntityType string // "batch", "order", "inventory", "forecast", "state"
	EntityID   string
	Action     string // "create", "update", "delete"
	FieldName  string
	OldValue   string
	NewValue   string
	CreatedAt  string
}

// AuditFilters contains filter options for listing audit entries.
type AuditFilters struct {
	EntityType string
	Limit      int
}
