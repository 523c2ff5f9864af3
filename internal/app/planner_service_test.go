package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/example/brewtrack/internal/core/faults"
	"github.com/example/brewtrack/internal/models"
	"github.com/example/brewtrack/internal/ports/secondary"
)

func newPlannerFixture() (*PlannerServiceImpl, *mockBatchRepository, *mockInventoryRepository, *mockForecastRepository) {
	inv := newMockInventoryRepository()
	batches := newMockBatchRepository(inv)
	forecasts := newMockForecastRepository()
	svc := NewPlannerService(batches, inv, forecasts, &sync.Mutex{})
	svc.now = func() time.Time { return time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC) }
	return svc, batches, inv, forecasts
}

func monthStart(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}

func TestPlanForecastNotReady(t *testing.T) {
	svc, _, _, _ := newPlannerFixture()
	_, err := svc.Plan(context.Background())
	var fnr *faults.ForecastNotReadyError
	if !errors.As(err, &fnr) {
		t.Fatalf("expected ForecastNotReadyError, got %v", err)
	}
}

func TestPlanReconciliation(t *testing.T) {
	svc, batches, inv, forecasts := newPlannerFixture()
	ctx := context.Background()

	// 120 pilsner bottles on hand; a conditioning dunkel batch lands this
	// month (conditioning ends June 20, bottling adds under a day).
	inv.levels[models.BeerPilsner] = 120
	condEnd := time.Date(2025, time.June, 20, 12, 0, 0, 0, time.UTC)
	condStart := condEnd.Add(-336 * time.Hour)
	rec := &secondary.BatchRecord{
		ID: "B-1", BeerType: models.BeerDunkel, Volume: 500,
		Phase: models.PhaseConditioning, Tank: "albert",
	}
	rec.SetWindow(models.PhaseConditioning, condStart, condEnd)
	if err := batches.Create(ctx, rec); err != nil {
		t.Fatal(err)
	}

	forecasts.Replace(ctx, models.BeerDunkel, []secondary.ForecastPoint{
		{MonthStart: monthStart(2025, time.June), Predicted: 400},
		{MonthStart: monthStart(2025, time.July), Predicted: 500},
		{MonthStart: monthStart(2025, time.August), Predicted: 300},
	})
	forecasts.Replace(ctx, models.BeerPilsner, []secondary.ForecastPoint{
		{MonthStart: monthStart(2025, time.June), Predicted: 100},
	})

	resp, err := svc.Plan(ctx)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	// dunkel: projected 1000 this month, forecast 1200 -> deficit -200.
	// pilsner: projected 120, forecast 100 -> +20. red_helles: 0.
	if resp.Recommended != models.BeerDunkel {
		t.Errorf("expected dunkel recommended, got %s", resp.Recommended)
	}
	for _, row := range resp.Rows {
		switch row.BeerType {
		case models.BeerDunkel:
			if row.Projected[0] != 1000 {
				t.Errorf("dunkel projected = %v", row.Projected)
			}
			if row.Deficit != -200 {
				t.Errorf("dunkel deficit = %d", row.Deficit)
			}
		case models.BeerPilsner:
			if row.Projected[0] != 120 || row.Deficit != 20 {
				t.Errorf("pilsner row = %+v", row)
			}
		}
	}

	// albert is held by the conditioning batch; camilla is the largest
	// free fermenter left (tie with emily broken by name).
	if resp.Tank != "camilla" {
		t.Errorf("expected camilla, got %s", resp.Tank)
	}
	if resp.Months[0] != monthStart(2025, time.June) || resp.Months[2] != monthStart(2025, time.August) {
		t.Errorf("unexpected window months: %v", resp.Months)
	}
}

func TestPlanIsReadOnly(t *testing.T) {
	svc, batches, inv, forecasts := newPlannerFixture()
	ctx := context.Background()

	inv.levels[models.BeerDunkel] = 50
	forecasts.Replace(ctx, models.BeerDunkel, []secondary.ForecastPoint{
		{MonthStart: monthStart(2025, time.June), Predicted: 10},
	})
	if _, err := svc.Plan(ctx); err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	if inv.levels[models.BeerDunkel] != 50 {
		t.Error("planner mutated inventory")
	}
	if got, _ := batches.List(ctx); len(got) != 0 {
		t.Error("planner mutated batches")
	}
}
