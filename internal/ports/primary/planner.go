package primary

import (
	"context"
	"time"

	"github.com/example/brewtrack/internal/models"
)

// PlannerService defines the primary port for production planning. Planning
// is a pure read: it never mutates batches, orders or inventory.
type PlannerService interface {
	// Plan reconciles projected output against the fitted forecast and
	// recommends the next beer and tank. Returns a
	// faults.ForecastNotReadyError when no forecast has been fitted.
	Plan(ctx context.Context) (*PlanResponse, error)
}

// PlanResponse is the recommendation plus the full reconciliation table for
// display.
type PlanResponse struct {
	Months       [3]time.Time // first day of each window month
	Rows         []PlanRow    // fixed beer-type order
	Recommended  models.BeerType
	Tank         string // empty when no ferment-capable tank is free
	TankCapacity int
}

// PlanRow is one beer type's reconciliation numbers.
type PlanRow struct {
	BeerType  models.BeerType
	Projected [3]int
	Forecast  [3]int
	Deficit   int
}

// ForecastService defines the primary port for fitting demand forecasts.
type ForecastService interface {
	// Fit loads a historical sales CSV, fits the monthly model per beer
	// type, and stores the resulting forecast for later planning runs.
	Fit(ctx context.Context, req FitForecastRequest) (*FitForecastResponse, error)

	// Show returns the stored forecast points grouped by beer type.
	Show(ctx context.Context) (map[models.BeerType][]ForecastPointView, error)
}

// FitForecastRequest contains parameters for fitting a forecast.
type FitForecastRequest struct {
	CSVPath       string
	HorizonMonths int // 0 means the default horizon
}

// FitForecastResponse summarises a fit run.
type FitForecastResponse struct {
	RowsLoaded  int
	RowsDropped int
	Points      map[models.BeerType]int // points stored per beer type
}

// ForecastPointView is one stored month of predicted demand.
type ForecastPointView struct {
	MonthStart time.Time
	Predicted  int
}
