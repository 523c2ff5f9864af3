package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/example/brewtrack/internal/models"
	"github.com/example/brewtrack/internal/ports/primary"
	"github.com/example/brewtrack/internal/ports/secondary"
)

// DefaultForecastHorizon is how many months ahead a fit predicts. A year
// keeps the three-month planning window covered for a long while between
// refits.
const DefaultForecastHorizon = 12

// ForecastServiceImpl implements the ForecastService interface.
type ForecastServiceImpl struct {
	history   secondary.SalesHistorySource
	model     secondary.Forecaster
	forecasts secondary.ForecastRepository
	audit     secondary.LogWriter
	mu        *sync.Mutex
	now       func() time.Time
}

// NewForecastService creates a new ForecastService with injected dependencies.
func NewForecastService(history secondary.SalesHistorySource, model secondary.Forecaster, forecasts secondary.ForecastRepository, audit secondary.LogWriter, mu *sync.Mutex) *ForecastServiceImpl {
	return &ForecastServiceImpl{
		history:   history,
		model:     model,
		forecasts: forecasts,
		audit:     audit,
		mu:        mu,
		now:       time.Now,
	}
}

// Fit loads the sales history, fits the model per beer type, and stores
// the predictions for later planning runs.
func (s *ForecastServiceImpl) Fit(ctx context.Context, req primary.FitForecastRequest) (*primary.FitForecastResponse, error) {
	horizon := req.HorizonMonths
	if horizon <= 0 {
		horizon = DefaultForecastHorizon
	}

	sales, dropped, err := s.history.Load(ctx, req.CSVPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load sales history: %w", err)
	}

	byBeer := make(map[models.BeerType][]secondary.SalesRecord)
	for _, rec := range sales {
		byBeer[rec.BeerType] = append(byBeer[rec.BeerType], rec)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	resp := &primary.FitForecastResponse{
		RowsLoaded:  len(sales),
		RowsDropped: dropped,
		Points:      make(map[models.BeerType]int),
	}
	from := s.now()
	for _, beer := range models.BeerTypes {
		history := byBeer[beer]
		if len(history) == 0 {
			continue
		}
		points, err := s.model.Fit(history, from, horizon)
		if err != nil {
			return nil, fmt.Errorf("failed to fit forecast for %s: %w", beer, err)
		}
		if err := s.forecasts.Replace(ctx, beer, points); err != nil {
			return nil, fmt.Errorf("failed to store forecast for %s: %w", beer, err)
		}
		resp.Points[beer] = len(points)
		s.audit.LogUpdate(ctx, "forecast", string(beer), "points", "", fmt.Sprintf("%d", len(points)))
	}
	return resp, nil
}

// Show returns the stored forecast points grouped by beer type.
func (s *ForecastServiceImpl) Show(ctx context.Context) (map[models.BeerType][]primary.ForecastPointView, error) {
	stored, err := s.forecasts.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read forecasts: %w", err)
	}
	out := make(map[models.BeerType][]primary.ForecastPointView, len(stored))
	for beer, points := range stored {
		views := make([]primary.ForecastPointView, len(points))
		for i, p := range points {
			views[i] = primary.ForecastPointView{MonthStart: p.MonthStart, Predicted: p.Predicted}
		}
		out[beer] = views
	}
	return out, nil
}
