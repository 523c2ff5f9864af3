// Package app implements the primary ports. Services hold no state of
// their own: all domain state lives behind the secondary ports, all domain
// rules in the core packages. Every mutating operation runs under the
// shared aggregate lock so occupancy and stock checks cannot race.
package app

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	corebatch "github.com/example/brewtrack/internal/core/batch"
	"github.com/example/brewtrack/internal/core/faults"
	"github.com/example/brewtrack/internal/core/tank"
	"github.com/example/brewtrack/internal/models"
	"github.com/example/brewtrack/internal/ports/primary"
	"github.com/example/brewtrack/internal/ports/secondary"
)

// BatchServiceImpl implements the BatchService interface.
type BatchServiceImpl struct {
	batches secondary.BatchRepository
	audit   secondary.LogWriter
	mu      *sync.Mutex
	now     func() time.Time
}

// NewBatchService creates a new BatchService with injected dependencies.
// The mutex is the process-wide aggregate lock shared by all services.
func NewBatchService(batches secondary.BatchRepository, audit secondary.LogWriter, mu *sync.Mutex) *BatchServiceImpl {
	return &BatchServiceImpl{
		batches: batches,
		audit:   audit,
		mu:      mu,
		now:     time.Now,
	}
}

// AddBatch registers a new batch in the unset phase.
func (s *BatchServiceImpl) AddBatch(ctx context.Context, req primary.AddBatchRequest) (*primary.AddBatchResponse, error) {
	if req.BatchID == "" {
		return nil, faults.Validationf("batch ID must not be empty")
	}
	beer, err := models.ParseBeerType(req.BeerType)
	if err != nil {
		return nil, &faults.ValidationError{Msg: err.Error()}
	}
	if req.Volume <= 0 {
		return nil, faults.Validationf("batch volume must be a positive number of litres, got %d", req.Volume)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.batches.Exists(ctx, req.BatchID)
	if err != nil {
		return nil, fmt.Errorf("failed to check batch ID: %w", err)
	}
	if exists {
		return nil, faults.Validationf("batch %s already exists", req.BatchID)
	}

	record := &secondary.BatchRecord{
		ID:       req.BatchID,
		BeerType: beer,
		Volume:   req.Volume,
		Phase:    models.PhaseUnset,
	}
	if err := s.batches.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create batch: %w", err)
	}

	s.audit.LogCreate(ctx, "batch", record.ID)
	return &primary.AddBatchResponse{Batch: toBatchView(record)}, nil
}

// ChangePhase moves a batch to the next production phase. Tank occupancy is
// derived from the full live batch set under the aggregate lock, so two
// concurrent requests can never both claim the same free tank.
func (s *BatchServiceImpl) ChangePhase(ctx context.Context, req primary.ChangePhaseRequest) (*primary.ChangePhaseResponse, error) {
	target, err := models.ParsePhase(req.Phase)
	if err != nil {
		return nil, &faults.ValidationError{Msg: err.Error()}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.batches.GetByID(ctx, req.BatchID)
	if err != nil {
		return nil, err
	}

	var requested *tank.Tank
	if req.Tank != "" {
		t, err := tank.Lookup(req.Tank)
		if err != nil {
			return nil, err
		}
		requested = &t
	}

	all, err := s.batches.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to scan batches for occupancy: %w", err)
	}
	assignments := make([]tank.Assignment, 0, len(all))
	for _, b := range all {
		assignments = append(assignments, tank.Assignment{BatchID: b.ID, Tank: b.Tank})
	}

	guard := corebatch.CanChangePhase(corebatch.PhaseChangeContext{
		BatchID:       record.ID,
		CurrentPhase:  record.Phase,
		TargetPhase:   target,
		BatchVolume:   record.Volume,
		CurrentTank:   record.Tank,
		RequestedTank: requested,
		Occupied:      tank.Occupied(assignments),
	})
	if err := guard.Error(); err != nil {
		return nil, err
	}

	oldPhase := record.Phase
	record.Phase = target
	record.LastCompleted = models.PreviousPhase(target)
	if target.NeedsTank() {
		record.Tank = requested.Name
	} else {
		record.Tank = ""
	}

	credited := 0
	if target == models.PhaseFinished {
		// The guard rejects transitions out of finished, so the batch
		// cannot be credited yet. The flag flip and the ledger credit land
		// in one transaction; a replayed snapshot keeps the flag set.
		record.Credited = true
		credited = models.BottleCount(record.Volume)
		if err := s.batches.Finish(ctx, record, credited); err != nil {
			return nil, fmt.Errorf("failed to finish batch: %w", err)
		}
	} else {
		start := s.now()
		record.SetWindow(target, start, start.Add(corebatch.PhaseDuration(target, record.Volume)))
		if err := s.batches.Update(ctx, record); err != nil {
			return nil, fmt.Errorf("failed to update batch: %w", err)
		}
	}

	s.audit.LogUpdate(ctx, "batch", record.ID, "phase", string(oldPhase), string(target))
	if credited > 0 {
		s.audit.LogUpdate(ctx, "inventory", string(record.BeerType), "credit", "", strconv.Itoa(credited))
	}

	return &primary.ChangePhaseResponse{Batch: toBatchView(record), CreditedBottles: credited}, nil
}

// GetBatch retrieves a batch by ID.
func (s *BatchServiceImpl) GetBatch(ctx context.Context, batchID string) (*primary.Batch, error) {
	record, err := s.batches.GetByID(ctx, batchID)
	if err != nil {
		return nil, err
	}
	return toBatchView(record), nil
}

// ListBatches lists all batches.
func (s *BatchServiceImpl) ListBatches(ctx context.Context) ([]*primary.Batch, error) {
	records, err := s.batches.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}
	batches := make([]*primary.Batch, len(records))
	for i, r := range records {
		batches[i] = toBatchView(r)
	}
	return batches, nil
}

// DeleteBatch removes a batch regardless of phase. Because occupancy is
// always derived from the live batch set, the deleted batch's tank becomes
// reusable immediately.
func (s *BatchServiceImpl) DeleteBatch(ctx context.Context, batchID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.batches.GetByID(ctx, batchID); err != nil {
		return err
	}
	if err := s.batches.Delete(ctx, batchID); err != nil {
		return fmt.Errorf("failed to delete batch: %w", err)
	}
	s.audit.LogDelete(ctx, "batch", batchID)
	return nil
}

// toBatchView maps a record to the port boundary type.
func toBatchView(r *secondary.BatchRecord) *primary.Batch {
	start, end := r.CurrentWindow()
	return &primary.Batch{
		ID:            r.ID,
		BeerType:      r.BeerType,
		Volume:        r.Volume,
		Phase:         r.Phase,
		Tank:          r.Tank,
		LastCompleted: r.LastCompleted,
		Credited:      r.Credited,
		PhaseStart:    start,
		PhaseEnd:      end,
		CreatedAt:     r.CreatedAt,
	}
}
