package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/example/brewtrack/internal/core/faults"
	"github.com/example/brewtrack/internal/core/planner"
	"github.com/example/brewtrack/internal/core/tank"
	"github.com/example/brewtrack/internal/models"
	"github.com/example/brewtrack/internal/ports/primary"
	"github.com/example/brewtrack/internal/ports/secondary"
)

// PlannerServiceImpl implements the PlannerService interface. It takes a
// consistent snapshot of batches, inventory and forecast under the
// aggregate lock and hands it to the pure planner.
type PlannerServiceImpl struct {
	batches   secondary.BatchRepository
	inventory secondary.InventoryRepository
	forecasts secondary.ForecastRepository
	mu        *sync.Mutex
	now       func() time.Time
}

// NewPlannerService creates a new PlannerService with injected dependencies.
func NewPlannerService(batches secondary.BatchRepository, inventory secondary.InventoryRepository, forecasts secondary.ForecastRepository, mu *sync.Mutex) *PlannerServiceImpl {
	return &PlannerServiceImpl{
		batches:   batches,
		inventory: inventory,
		forecasts: forecasts,
		mu:        mu,
		now:       time.Now,
	}
}

// Plan runs the production-planning reconciliation.
func (s *PlannerServiceImpl) Plan(ctx context.Context) (*primary.PlanResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ready, err := s.forecasts.HasAny(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check forecast state: %w", err)
	}
	if !ready {
		return nil, &faults.ForecastNotReadyError{}
	}

	records, err := s.batches.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}
	states := make([]planner.BatchState, 0, len(records))
	assignments := make([]tank.Assignment, 0, len(records))
	for _, r := range records {
		_, end := r.CurrentWindow()
		states = append(states, planner.BatchState{
			ID:       r.ID,
			BeerType: r.BeerType,
			Volume:   r.Volume,
			Phase:    r.Phase,
			Credited: r.Credited,
			PhaseEnd: end,
		})
		assignments = append(assignments, tank.Assignment{BatchID: r.ID, Tank: r.Tank})
	}

	levels, err := s.inventory.Levels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read inventory: %w", err)
	}

	result := planner.Plan(planner.Input{
		Now:       s.now(),
		Batches:   states,
		Inventory: levels,
		Forecast: func(beer models.BeerType, monthStart time.Time) (int, bool) {
			v, ok, err := s.forecasts.Get(ctx, beer, monthStart)
			if err != nil || !ok {
				return 0, false
			}
			return v, true
		},
		Occupied: tank.Occupied(assignments),
	})

	resp := &primary.PlanResponse{
		Months:       result.Months,
		Recommended:  result.Recommended,
		Tank:         result.Tank,
		TankCapacity: result.TankCapacity,
	}
	for _, b := range result.Beers {
		resp.Rows = append(resp.Rows, primary.PlanRow{
			BeerType:  b.BeerType,
			Projected: b.Projected,
			Forecast:  b.Forecast,
			Deficit:   b.Deficit,
		})
	}
	return resp, nil
}
