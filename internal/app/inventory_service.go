package app

import (
	"context"
	"fmt"

	"github.com/example/brewtrack/internal/core/faults"
	"github.com/example/brewtrack/internal/core/tank"
	"github.com/example/brewtrack/internal/models"
	"github.com/example/brewtrack/internal/ports/primary"
	"github.com/example/brewtrack/internal/ports/secondary"
)

// InventoryServiceImpl implements the InventoryService interface.
type InventoryServiceImpl struct {
	inventory secondary.InventoryRepository
}

// NewInventoryService creates a new InventoryService.
func NewInventoryService(inventory secondary.InventoryRepository) *InventoryServiceImpl {
	return &InventoryServiceImpl{inventory: inventory}
}

// Level returns the bottle count for one beer type.
func (s *InventoryServiceImpl) Level(ctx context.Context, beerType string) (int, error) {
	beer, err := models.ParseBeerType(beerType)
	if err != nil {
		return 0, &faults.ValidationError{Msg: err.Error()}
	}
	return s.inventory.Level(ctx, beer)
}

// Levels returns the bottle counts for all beer types.
func (s *InventoryServiceImpl) Levels(ctx context.Context) (map[models.BeerType]int, error) {
	return s.inventory.Levels(ctx)
}

// TankServiceImpl implements the TankService interface. The catalog itself
// is fixed; only the occupancy column is live data.
type TankServiceImpl struct {
	batches secondary.BatchRepository
}

// NewTankService creates a new TankService.
func NewTankService(batches secondary.BatchRepository) *TankServiceImpl {
	return &TankServiceImpl{batches: batches}
}

// ListTanks returns every tank with its current holder derived from the
// live batch set.
func (s *TankServiceImpl) ListTanks(ctx context.Context) ([]*primary.TankStatus, error) {
	all, err := s.batches.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to scan batches for occupancy: %w", err)
	}
	assignments := make([]tank.Assignment, 0, len(all))
	for _, b := range all {
		assignments = append(assignments, tank.Assignment{BatchID: b.ID, Tank: b.Tank})
	}
	occupied := tank.Occupied(assignments)

	var statuses []*primary.TankStatus
	for _, t := range tank.All() {
		caps := make([]string, len(t.Capabilities))
		for i, c := range t.Capabilities {
			caps[i] = string(c)
		}
		statuses = append(statuses, &primary.TankStatus{
			Name:         t.Name,
			Capabilities: caps,
			Capacity:     t.Capacity,
			HeldBy:       occupied[t.Name],
		})
	}
	return statuses, nil
}
