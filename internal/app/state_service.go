package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/example/brewtrack/internal/core/faults"
	"github.com/example/brewtrack/internal/models"
	"github.com/example/brewtrack/internal/ports/primary"
	"github.com/example/brewtrack/internal/ports/secondary"
)

// StateServiceImpl implements the StateService interface: the snapshot side
// of the save/load contract. Encoding belongs to the persistence adapter.
type StateServiceImpl struct {
	batches   secondary.BatchRepository
	orders    secondary.OrderRepository
	inventory secondary.InventoryRepository
	forecasts secondary.ForecastRepository
	audit     secondary.LogWriter
	mu        *sync.Mutex
	now       func() time.Time
}

// NewStateService creates a new StateService with injected dependencies.
func NewStateService(batches secondary.BatchRepository, orders secondary.OrderRepository, inventory secondary.InventoryRepository, forecasts secondary.ForecastRepository, audit secondary.LogWriter, mu *sync.Mutex) *StateServiceImpl {
	return &StateServiceImpl{
		batches:   batches,
		orders:    orders,
		inventory: inventory,
		forecasts: forecasts,
		audit:     audit,
		mu:        mu,
		now:       time.Now,
	}
}

// Snapshot captures the full tracker state under the aggregate lock, so the
// snapshot is internally consistent.
func (s *StateServiceImpl) Snapshot(ctx context.Context) (*primary.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := &primary.Snapshot{TakenAt: s.now()}

	batches, err := s.batches.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot batches: %w", err)
	}
	for _, b := range batches {
		snap.Batches = append(snap.Batches, toBatchSnapshot(b))
	}

	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot orders: %w", err)
	}
	for _, o := range orders {
		snap.Orders = append(snap.Orders, primary.OrderSnapshot{
			Invoice:      o.Invoice,
			Customer:     o.Customer,
			DateRequired: o.DateRequired,
			BeerType:     string(o.BeerType),
			Quantity:     o.Quantity,
			Dispatched:   o.Dispatched,
		})
	}

	levels, err := s.inventory.Levels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot inventory: %w", err)
	}
	snap.Inventory = make(map[string]int, len(levels))
	for beer, count := range levels {
		snap.Inventory[string(beer)] = count
	}

	forecasts, err := s.forecasts.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot forecasts: %w", err)
	}
	for _, beer := range models.BeerTypes {
		points, ok := forecasts[beer]
		if !ok {
			continue
		}
		fs := primary.ForecastSnapshot{BeerType: string(beer)}
		for _, p := range points {
			fs.Points = append(fs.Points, primary.ForecastEntry{MonthStart: p.MonthStart, Predicted: p.Predicted})
		}
		snap.Forecasts = append(snap.Forecasts, fs)
	}

	return snap, nil
}

// Restore replaces all tracker state with the snapshot's contents. The
// whole snapshot is validated and converted before the first write, so a
// rejected snapshot leaves the existing state untouched.
func (s *StateServiceImpl) Restore(ctx context.Context, snap *primary.Snapshot) error {
	if snap == nil {
		return faults.Validationf("snapshot is empty")
	}

	batchRecords := make([]*secondary.BatchRecord, 0, len(snap.Batches))
	for i := range snap.Batches {
		record, err := fromBatchSnapshot(&snap.Batches[i])
		if err != nil {
			return err
		}
		batchRecords = append(batchRecords, record)
	}

	orderRecords := make([]*secondary.OrderRecord, 0, len(snap.Orders))
	for _, o := range snap.Orders {
		beer, err := models.ParseBeerType(o.BeerType)
		if err != nil {
			return faults.Validationf("snapshot order %s: %v", o.Invoice, err)
		}
		orderRecords = append(orderRecords, &secondary.OrderRecord{
			Invoice:      o.Invoice,
			Customer:     o.Customer,
			DateRequired: o.DateRequired,
			BeerType:     beer,
			Quantity:     o.Quantity,
			Dispatched:   o.Dispatched,
		})
	}

	type curve struct {
		beer   models.BeerType
		points []secondary.ForecastPoint
	}
	curves := make([]curve, 0, len(snap.Forecasts))
	for _, fs := range snap.Forecasts {
		beer, err := models.ParseBeerType(fs.BeerType)
		if err != nil {
			return faults.Validationf("snapshot forecast: %v", err)
		}
		points := make([]secondary.ForecastPoint, len(fs.Points))
		for i, p := range fs.Points {
			points[i] = secondary.ForecastPoint{MonthStart: p.MonthStart, Predicted: p.Predicted}
		}
		curves = append(curves, curve{beer: beer, points: points})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.batches.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to clear batches: %w", err)
	}
	for _, record := range batchRecords {
		if err := s.batches.Create(ctx, record); err != nil {
			return fmt.Errorf("failed to restore batch %s: %w", record.ID, err)
		}
	}

	if err := s.orders.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to clear orders: %w", err)
	}
	for _, record := range orderRecords {
		if err := s.orders.Create(ctx, record); err != nil {
			return fmt.Errorf("failed to restore order %s: %w", record.Invoice, err)
		}
	}

	for _, beer := range models.BeerTypes {
		if err := s.inventory.Set(ctx, beer, snap.Inventory[string(beer)]); err != nil {
			return fmt.Errorf("failed to restore inventory for %s: %w", beer, err)
		}
	}

	for _, c := range curves {
		if err := s.forecasts.Replace(ctx, c.beer, c.points); err != nil {
			return fmt.Errorf("failed to restore forecast for %s: %w", c.beer, err)
		}
	}

	s.audit.LogUpdate(ctx, "state", "tracker", "restore", "", s.now().Format(time.RFC3339))
	return nil
}

// snapshotPhases is the order of window slots in a batch snapshot.
var snapshotPhases = []models.Phase{
	models.PhaseHotBrewing,
	models.PhaseFermenting,
	models.PhaseConditioning,
	models.PhaseBottling,
}

func toBatchSnapshot(b *secondary.BatchRecord) primary.BatchSnapshot {
	snap := primary.BatchSnapshot{
		ID:            b.ID,
		BeerType:      string(b.BeerType),
		Volume:        b.Volume,
		Phase:         string(b.Phase),
		Tank:          b.Tank,
		LastCompleted: string(b.LastCompleted),
		Credited:      b.Credited,
	}
	starts := []*time.Time{b.HotBrewingStart, b.FermentingStart, b.ConditioningStart, b.BottlingStart}
	ends := []*time.Time{b.HotBrewingEnd, b.FermentingEnd, b.ConditioningEnd, b.BottlingEnd}
	for i := range snapshotPhases {
		if starts[i] != nil && ends[i] != nil {
			snap.Windows[i] = &primary.Window{Start: *starts[i], End: *ends[i]}
		}
	}
	return snap
}

func fromBatchSnapshot(snap *primary.BatchSnapshot) (*secondary.BatchRecord, error) {
	beer, err := models.ParseBeerType(snap.BeerType)
	if err != nil {
		return nil, faults.Validationf("snapshot batch %s: %v", snap.ID, err)
	}
	record := &secondary.BatchRecord{
		ID:            snap.ID,
		BeerType:      beer,
		Volume:        snap.Volume,
		Phase:         models.Phase(snap.Phase),
		Tank:          snap.Tank,
		LastCompleted: models.Phase(snap.LastCompleted),
		Credited:      snap.Credited,
	}
	if record.LastCompleted == "" {
		record.LastCompleted = models.PhaseUnset
	}
	for i, phase := range snapshotPhases {
		if w := snap.Windows[i]; w != nil {
			record.SetWindow(phase, w.Start, w.End)
		}
	}
	return record, nil
}
