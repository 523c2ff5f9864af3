package app

// ============================================================================
// Mock Implementations
// ============================================================================

import (
	"context"
	"sort"
	"time"

	"github.com/example/brewtrack/internal/core/faults"
	"github.com/example/brewtrack/internal/models"
	"github.com/example/brewtrack/internal/ports/secondary"
)

// mockBatchRepository implements secondary.BatchRepository in memory.
type mockBatchRepository struct {
	batches   map[string]*secondary.BatchRecord
	order     []string // insertion order for List
	inventory *mockInventoryRepository

	createErr error
	updateErr error
	listErr   error
	finishErr error
}

func newMockBatchRepository(inv *mockInventoryRepository) *mockBatchRepository {
	return &mockBatchRepository{
		batches:   make(map[string]*secondary.BatchRecord),
		inventory: inv,
	}
}

func (m *mockBatchRepository) Create(ctx context.Context, batch *secondary.BatchRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	cp := *batch
	m.batches[batch.ID] = &cp
	m.order = append(m.order, batch.ID)
	return nil
}

func (m *mockBatchRepository) GetByID(ctx context.Context, id string) (*secondary.BatchRecord, error) {
	if b, ok := m.batches[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, faults.NotFound("batch", id)
}

func (m *mockBatchRepository) Exists(ctx context.Context, id string) (bool, error) {
	_, ok := m.batches[id]
	return ok, nil
}

func (m *mockBatchRepository) Update(ctx context.Context, batch *secondary.BatchRecord) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.batches[batch.ID]; !ok {
		return faults.NotFound("batch", batch.ID)
	}
	cp := *batch
	m.batches[batch.ID] = &cp
	return nil
}

func (m *mockBatchRepository) Finish(ctx context.Context, batch *secondary.BatchRecord, bottles int) error {
	if m.finishErr != nil {
		return m.finishErr
	}
	if err := m.Update(ctx, batch); err != nil {
		return err
	}
	return m.inventory.Credit(ctx, batch.BeerType, bottles)
}

func (m *mockBatchRepository) Delete(ctx context.Context, id string) error {
	delete(m.batches, id)
	for i, bid := range m.order {
		if bid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *mockBatchRepository) List(ctx context.Context) ([]*secondary.BatchRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []*secondary.BatchRecord
	for _, id := range m.order {
		cp := *m.batches[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (m *mockBatchRepository) DeleteAll(ctx context.Context) error {
	m.batches = make(map[string]*secondary.BatchRecord)
	m.order = nil
	return nil
}

// mockOrderRepository implements secondary.OrderRepository in memory.
// Dispatch mirrors the sqlite adapter: debit and status flip together.
type mockOrderRepository struct {
	orders    map[string]*secondary.OrderRecord
	inventory *mockInventoryRepository

	createErr   error
	dispatchErr error
}

func newMockOrderRepository(inv *mockInventoryRepository) *mockOrderRepository {
	return &mockOrderRepository{
		orders:    make(map[string]*secondary.OrderRecord),
		inventory: inv,
	}
}

func (m *mockOrderRepository) Create(ctx context.Context, order *secondary.OrderRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	cp := *order
	m.orders[order.Invoice] = &cp
	return nil
}

func (m *mockOrderRepository) GetByInvoice(ctx context.Context, invoice string) (*secondary.OrderRecord, error) {
	if o, ok := m.orders[invoice]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, faults.NotFound("order", invoice)
}

func (m *mockOrderRepository) Exists(ctx context.Context, invoice string) (bool, error) {
	_, ok := m.orders[invoice]
	return ok, nil
}

func (m *mockOrderRepository) Dispatch(ctx context.Context, order *secondary.OrderRecord) error {
	if m.dispatchErr != nil {
		return m.dispatchErr
	}
	stored, ok := m.orders[order.Invoice]
	if !ok {
		return faults.NotFound("order", order.Invoice)
	}
	available := m.inventory.levels[order.BeerType]
	if available < order.Quantity {
		return &faults.InsufficientStockError{
			BeerType:  string(order.BeerType),
			Requested: order.Quantity,
			Available: available,
		}
	}
	m.inventory.levels[order.BeerType] -= order.Quantity
	stored.Dispatched = true
	return nil
}

func (m *mockOrderRepository) Delete(ctx context.Context, invoice string) (bool, error) {
	if _, ok := m.orders[invoice]; !ok {
		return false, nil
	}
	delete(m.orders, invoice)
	return true, nil
}

func (m *mockOrderRepository) List(ctx context.Context) ([]*secondary.OrderRecord, error) {
	var out []*secondary.OrderRecord
	for _, o := range m.orders {
		cp := *o
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Invoice < out[j].Invoice })
	return out, nil
}

func (m *mockOrderRepository) DeleteAll(ctx context.Context) error {
	m.orders = make(map[string]*secondary.OrderRecord)
	return nil
}

// mockInventoryRepository implements secondary.InventoryRepository in memory.
type mockInventoryRepository struct {
	levels map[models.BeerType]int
}

func newMockInventoryRepository() *mockInventoryRepository {
	return &mockInventoryRepository{levels: map[models.BeerType]int{
		models.BeerDunkel:    0,
		models.BeerPilsner:   0,
		models.BeerRedHelles: 0,
	}}
}

func (m *mockInventoryRepository) Level(ctx context.Context, beer models.BeerType) (int, error) {
	return m.levels[beer], nil
}

func (m *mockInventoryRepository) Levels(ctx context.Context) (map[models.BeerType]int, error) {
	out := make(map[models.BeerType]int, len(m.levels))
	for k, v := range m.levels {
		out[k] = v
	}
	return out, nil
}

func (m *mockInventoryRepository) Credit(ctx context.Context, beer models.BeerType, bottles int) error {
	m.levels[beer] += bottles
	return nil
}

func (m *mockInventoryRepository) Set(ctx context.Context, beer models.BeerType, bottles int) error {
	m.levels[beer] = bottles
	return nil
}

// mockForecastRepository implements secondary.ForecastRepository in memory.
type mockForecastRepository struct {
	points map[models.BeerType][]secondary.ForecastPoint
}

func newMockForecastRepository() *mockForecastRepository {
	return &mockForecastRepository{points: make(map[models.BeerType][]secondary.ForecastPoint)}
}

func (m *mockForecastRepository) Replace(ctx context.Context, beer models.BeerType, points []secondary.ForecastPoint) error {
	m.points[beer] = append([]secondary.ForecastPoint(nil), points...)
	return nil
}

func (m *mockForecastRepository) Get(ctx context.Context, beer models.BeerType, monthStart time.Time) (int, bool, error) {
	for _, p := range m.points[beer] {
		if p.MonthStart.Equal(monthStart) {
			return p.Predicted, true, nil
		}
	}
	return 0, false, nil
}

func (m *mockForecastRepository) All(ctx context.Context) (map[models.BeerType][]secondary.ForecastPoint, error) {
	out := make(map[models.BeerType][]secondary.ForecastPoint, len(m.points))
	for k, v := range m.points {
		out[k] = append([]secondary.ForecastPoint(nil), v...)
	}
	return out, nil
}

func (m *mockForecastRepository) HasAny(ctx context.Context) (bool, error) {
	for _, v := range m.points {
		if len(v) > 0 {
			return true, nil
		}
	}
	return false, nil
}

// nopLogWriter discards audit entries.
type nopLogWriter struct{}

func (nopLogWriter) LogCreate(ctx context.Context, entityType, entityID string) error { return nil }
func (nopLogWriter) LogUpdate(ctx context.Context, entityType, entityID, fieldName, oldValue, newValue string) error {
	return nil
}
func (nopLogWriter) LogDelete(ctx context.Context, entityType, entityID string) error { return nil }
