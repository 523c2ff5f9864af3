package app

import (
	"context"
	"fmt"

	"github.com/example/brewtrack/internal/ports/primary"
	"github.com/example/brewtrack/internal/ports/secondary"
)

// AuditServiceImpl implements the AuditService interface.
type AuditServiceImpl struct {
	log secondary.AuditLogRepository
}

// NewAuditService creates a new AuditService.
func NewAuditService(log secondary.AuditLogRepository) *AuditServiceImpl {
	return &AuditServiceImpl{log: log}
}

// ListEntries lists recorded mutations, newest first.
func (s *AuditServiceImpl) ListEntries(ctx context.Context, filters primary.AuditFilters) ([]*primary.AuditEntry, error) {
	records, err := s.log.List(ctx, secondary.AuditFilters{
		EntityType: filters.EntityType,
		Limit:      filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	entries := make([]*primary.AuditEntry, len(records))
	for i, r := range records {
		entries[i] = &primary.AuditEntry{
			ID:         r.ID,
			EntityType: r.EntityType,
			EntityID:   r.EntityID,
			Action:     r.Action,
			FieldName:  r.FieldName,
			OldValue:   r.OldValue,
			NewValue:   r.NewValue,
			CreatedAt:  r.CreatedAt,
		}
	}
	return entries, nil
}
