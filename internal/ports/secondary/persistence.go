// Package secondary defines the secondary ports (driven adapters) for the
// application. These are the interfaces through which the application drives
// external systems: the sqlite store, the sales CSV reader, and the
// forecasting model.
package secondary

import (
	"context"
	"time"

	"github.com/example/brewtrack/internal/models"
)

// BatchRepository defines the secondary port for batch persistence.
type BatchRepository interface {
	// Create persists a new batch in the unset phase.
	Create(ctx context.Context, batch *BatchRecord) error

	// GetByID retrieves a batch by its ID. Missing batches return a
	// faults.NotFoundError.
	GetByID(ctx context.Context, id string) (*BatchRecord, error)

	// Exists reports whether a batch with the given ID is present.
	Exists(ctx context.Context, id string) (bool, error)

	// Update rewrites an existing batch's mutable fields.
	Update(ctx context.Context, batch *BatchRecord) error

	// Finish atomically marks the batch finished and credits its bottles
	// to the inventory. Either both changes land or neither does.
	Finish(ctx context.Context, batch *BatchRecord, bottles int) error

	// Delete removes a batch regardless of phase. Occupancy is derived
	// from the live batch set, so deleting frees any held tank.
	Delete(ctx context.Context, id string) error

	// List retrieves all batches ordered by creation time.
	List(ctx context.Context) ([]*BatchRecord, error)

	// DeleteAll clears the table. Used by snapshot restore.
	DeleteAll(ctx context.Context) error
}

// BatchRecord represents a batch as stored in persistence. Phase window
// pointers are nil until the batch reaches the phase.
type BatchRecord struct {
	ID            string
	BeerType      models.BeerType
	Volume        int // litres
	Phase         models.Phase
	Tank          string // empty unless fermenting or conditioning
	LastCompleted models.Phase
	Credited      bool

	HotBrewingStart   *time.Time
	HotBrewingEnd     *time.Time
	FermentingStart   *time.Time
	FermentingEnd     *time.Time
	ConditioningStart *time.Time
	ConditioningEnd   *time.Time
	BottlingStart     *time.Time
	BottlingEnd       *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CurrentWindow returns the start and end of the batch's current phase.
// Both are nil for unset batches; finished batches report the bottling
// window, the last one with timestamps.
func (b *BatchRecord) CurrentWindow() (start, end *time.Time) {
	switch b.Phase {
	case models.PhaseHotBrewing:
		return b.HotBrewingStart, b.HotBrewingEnd
	case models.PhaseFermenting:
		return b.FermentingStart, b.FermentingEnd
	case models.PhaseConditioning:
		return b.ConditioningStart, b.ConditioningEnd
	case models.PhaseBottling, models.PhaseFinished:
		return b.BottlingStart, b.BottlingEnd
	default:
		return nil, nil
	}
}

// SetWindow records the start and end timestamps for the given phase.
func (b *BatchRecord) SetWindow(phase models.Phase, start, end time.Time) {
	switch phase {
	case models.PhaseHotBrewing:
		b.HotBrewingStart, b.HotBrewingEnd = &start, &end
	case models.PhaseFermenting:
		b.FermentingStart, b.FermentingEnd = &start, &end
	case models.PhaseConditioning:
		b.ConditioningStart, b.ConditioningEnd = &start, &end
	case models.PhaseBottling:
		b.BottlingStart, b.BottlingEnd = &start, &end
	}
}

// OrderRepository defines the secondary port for customer order persistence.
type OrderRepository interface {
	// Create persists a new pending order.
	Create(ctx context.Context, order *OrderRecord) error

	// GetByInvoice retrieves an order by invoice number. Missing orders
	// return a faults.NotFoundError.
	GetByInvoice(ctx context.Context, invoice string) (*OrderRecord, error)

	// Exists reports whether an invoice number is already registered.
	Exists(ctx context.Context, invoice string) (bool, error)

	// Dispatch atomically debits the inventory and marks the order
	// dispatched. When stock is short it returns a
	// faults.InsufficientStockError and changes nothing.
	Dispatch(ctx context.Context, order *OrderRecord) error

	// Delete removes an order. Reports whether it was present.
	Delete(ctx context.Context, invoice string) (bool, error)

	// List retrieves all orders ordered by date required.
	List(ctx context.Context) ([]*OrderRecord, error)

	// DeleteAll clears the table. Used by snapshot restore.
	DeleteAll(ctx context.Context) error
}

// OrderRecord represents a customer order as stored in persistence.
type OrderRecord struct {
	Invoice      string
	Customer     string
	DateRequired time.Time
	BeerType     models.BeerType
	Quantity     int // bottles
	Dispatched   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// InventoryRepository defines the secondary port for the bottle ledger.
// Counts never go negative; debits that would are rejected upstream.
type InventoryRepository interface {
	// Level returns the bottle count for one beer type.
	Level(ctx context.Context, beer models.BeerType) (int, error)

	// Levels returns the bottle counts for all beer types.
	Levels(ctx context.Context) (map[models.BeerType]int, error)

	// Credit adds bottles to a beer type's count.
	Credit(ctx context.Context, beer models.BeerType, bottles int) error

	// Set overwrites a beer type's count. Used by snapshot restore.
	Set(ctx context.Context, beer models.BeerType, bottles int) error
}

// ForecastRepository defines the secondary port for persisted forecasts.
type ForecastRepository interface {
	// Replace swaps a beer type's stored forecast for a freshly fitted one.
	Replace(ctx context.Context, beer models.BeerType, points []ForecastPoint) error

	// Get returns the predicted demand for a beer type in the month
	// starting at monthStart. The bool is false when no value is stored.
	Get(ctx context.Context, beer models.BeerType, monthStart time.Time) (int, bool, error)

	// All returns every stored forecast point grouped by beer type.
	All(ctx context.Context) (map[models.BeerType][]ForecastPoint, error)

	// HasAny reports whether any forecast has been fitted at all.
	HasAny(ctx context.Context) (bool, error)
}

// ForecastPoint is one month of predicted demand.
type ForecastPoint struct {
	MonthStart time.Time // first day of the month
	Predicted  int       // bottles
}

// SalesHistorySource defines the secondary port for historical sales data.
// The CSV adapter implements it; the forecast service only sees the
// cleaned-up series.
type SalesHistorySource interface {
	// Load reads historical sales rows, dropping rows with missing or
	// malformed values. dropped reports how many were discarded.
	Load(ctx context.Context, path string) (sales []SalesRecord, dropped int, err error)
}

// SalesRecord is one cleaned historical sales row.
type SalesRecord struct {
	Date     time.Time
	BeerType models.BeerType
	Quantity int // bottles
}

// Forecaster defines the secondary port for the demand model. brewtrack
// only depends on the lookup contract, not on the statistical method.
type Forecaster interface {
	// Fit trains on a beer type's history and returns monthly predictions
	// starting at the month of from, covering the given horizon.
	Fit(history []SalesRecord, from time.Time, horizonMonths int) ([]ForecastPoint, error)
}
