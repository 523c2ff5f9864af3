package primary

import "context"

// AuditService defines the primary port for reading the audit trail.
type AuditService interface {
	// ListEntries lists recorded mutations, newest first.
	ListEntries(ctx context.Context, filters AuditFilters) ([]*AuditEntry, error)
}

// AuditFilters contains filter options for listing audit entries.
type AuditFilters struct {
	EntityType string
	Limit      int
}

// AuditEntry is one recorded mutation at the port boundary.
type AuditEntry struct {
	ID         string
	EntityType string
	EntityID   string
	Action     string
	FieldName  string
	OldValue   string
	NewValue   string
	CreatedAt  string
}
