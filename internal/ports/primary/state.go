package primary

import (
	"context"
	"time"
)

// StateService defines the primary port for the snapshot contract. The
// service produces and consumes Snapshot values; how they are encoded and
// where they live is the persistence adapter's business.
type StateService interface {
	// Snapshot captures all tracker state under the aggregate lock.
	Snapshot(ctx context.Context) (*Snapshot, error)

	// Restore replaces all tracker state with the snapshot's contents.
	Restore(ctx context.Context, snap *Snapshot) error
}

// Snapshot is the full serializable tracker state.
type Snapshot struct {
	TakenAt   time.Time          `json:"taken_at"`
	Batches   []BatchSnapshot    `json:"batches"`
	Orders    []OrderSnapshot    `json:"orders"`
	Inventory map[string]int     `json:"inventory"` // beer type -> bottles
	Forecasts []ForecastSnapshot `json:"forecasts"`
}

// BatchSnapshot mirrors a batch record with JSON-friendly fields.
type BatchSnapshot struct {
	ID            string     `json:"id"`
	BeerType      string     `json:"beer_type"`
	Volume        int        `json:"volume"`
	Phase         string     `json:"phase"`
	Tank          string     `json:"tank,omitempty"`
	LastCompleted string     `json:"last_completed,omitempty"`
	Credited      bool       `json:"credited"`
	Windows       [4]*Window `json:"windows"` // hot brewing, fermenting, conditioning, bottling
}

// Window is one phase's start/end pair.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// OrderSnapshot mirrors an order record.
type OrderSnapshot struct {
	Invoice      string    `json:"invoice"`
	Customer     string    `json:"customer"`
	DateRequired time.Time `json:"date_required"`
	BeerType     string    `json:"beer_type"`
	Quantity     int       `json:"quantity"`
	Dispatched   bool      `json:"dispatched"`
}

// ForecastSnapshot is one beer type's stored forecast curve.
type ForecastSnapshot struct {
	BeerType string          `json:"beer_type"`
	Points   []ForecastEntry `json:"points"`
}

// ForecastEntry is one month of a snapshotted forecast.
type ForecastEntry struct {
	MonthStart time.Time `json:"month_start"`
	Predicted  int       `json:"predicted"`
}

// SnapshotStore defines the contract the CLI uses to move snapshots in and
// out of files. Implemented by the persistence adapter.
type SnapshotStore interface {
	Save(path string, snap *Snapshot) error
	Load(path string) (*Snapshot, error)
}
