// Package forecast fits demand models over historical sales.
package forecast

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/example/brewtrack/internal/ports/secondary"
)

// SeasonalModel predicts each calendar month's demand as the mean of that
// month's historical totals. Beer demand is strongly seasonal and the
// month-of-year mean captures that without overfitting the short histories
// a small brewery has.
type SeasonalModel struct{}

// NewSeasonalModel creates a new seasonal forecaster.
func NewSeasonalModel() *SeasonalModel {
	return &SeasonalModel{}
}

// Fit trains on one beer type's history and returns monthly predictions
// starting at the month of from. An empty history yields no points.
func (m *SeasonalModel) Fit(history []secondary.SalesRecord, from time.Time, horizonMonths int) ([]secondary.ForecastPoint, error) {
	if len(history) == 0 || horizonMonths <= 0 {
		return nil, nil
	}

	// Total bottles per observed month
	totals := make(map[monthKey]int)
	for _, rec := range history {
		key := monthKey{rec.Date.Year(), rec.Date.Month()}
		totals[key] += rec.Quantity
	}

	// Mean of the monthly totals, per calendar month and overall
	sums := make(map[time.Month]decimal.Decimal)
	counts := make(map[time.Month]int)
	grand := decimal.Zero
	for key, total := range totals {
		d := decimal.NewFromInt(int64(total))
		sums[key.month] = sums[key.month].Add(d)
		counts[key.month]++
		grand = grand.Add(d)
	}
	overall := grand.Div(decimal.NewFromInt(int64(len(totals))))

	start := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC)
	points := make([]secondary.ForecastPoint, 0, horizonMonths)
	for i := 0; i < horizonMonths; i++ {
		monthStart := start.AddDate(0, i, 0)

		// Months never observed fall back to the overall mean
		mean := overall
		if n := counts[monthStart.Month()]; n > 0 {
			mean = sums[monthStart.Month()].Div(decimal.NewFromInt(int64(n)))
		}

		points = append(points, secondary.ForecastPoint{
			MonthStart: monthStart,
			Predicted:  int(mean.Round(0).IntPart()),
		})
	}

	return points, nil
}

type monthKey struct {
	year  int
	month time.Month
}

// Ensure SeasonalModel implements the interface
var _ secondary.Forecaster = (*SeasonalModel)(nil)
