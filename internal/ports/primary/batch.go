// Package primary defines the primary ports (driving adapters) for the
// application. These are the interfaces through which the CLI drives the
// tracker; implementations live in the application layer.
package primary

import (
	"context"
	"time"

	"github.com/example/brewtrack/internal/models"
)

// BatchService defines the primary port for batch operations.
type BatchService interface {
	// AddBatch registers a new batch in the unset phase.
	AddBatch(ctx context.Context, req AddBatchRequest) (*AddBatchResponse, error)

	// ChangePhase moves a batch to the next production phase, allocating
	// or releasing a tank as the phase demands.
	ChangePhase(ctx context.Context, req ChangePhaseRequest) (*ChangePhaseResponse, error)

	// GetBatch retrieves a batch by ID.
	GetBatch(ctx context.Context, batchID string) (*Batch, error)

	// ListBatches lists all batches.
	ListBatches(ctx context.Context) ([]*Batch, error)

	// DeleteBatch removes a batch regardless of phase, implicitly freeing
	// any tank it holds.
	DeleteBatch(ctx context.Context, batchID string) error
}

// AddBatchRequest contains parameters for registering a batch.
type AddBatchRequest struct {
	BatchID  string
	BeerType string
	Volume   int // litres
}

// AddBatchResponse contains the result of registering a batch.
type AddBatchResponse struct {
	Batch *Batch
}

// ChangePhaseRequest contains parameters for a phase transition. Tank is
// empty for phases that do not occupy one.
type ChangePhaseRequest struct {
	BatchID string
	Phase   string
	Tank    string
}

// ChangePhaseResponse contains the batch after the transition, plus the
// bottle count credited when the transition finished the batch.
type ChangePhaseResponse struct {
	Batch           *Batch
	CreditedBottles int
}

// Batch represents a batch at the port boundary. Window pointers are nil
// until the corresponding phase is reached.
type Batch struct {
	ID            string
	BeerType      models.BeerType
	Volume        int
	Phase         models.Phase
	Tank          string
	LastCompleted models.Phase
	Credited      bool
	PhaseStart    *time.Time // start of the current phase
	PhaseEnd      *time.Time // scheduled end of the current phase
	CreatedAt     time.Time
}
