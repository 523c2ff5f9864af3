// Package planner contains the production-planning reconciliation. It is a
// pure read-and-compute pass: given the live batches, the inventory, the
// tank occupancy and a sales forecast, it projects finished-goods output
// over a three-month window and recommends the next beer and tank.
package planner

import (
	"time"

	"github.com/example/brewtrack/internal/core/batch"
	"github.com/example/brewtrack/internal/core/tank"
	"github.com/example/brewtrack/internal/models"
)

// WindowMonths is the length of the planning window.
const WindowMonths = 3

// BatchState is the slice of a batch the planner needs.
type BatchState struct {
	ID       string
	BeerType models.BeerType
	Volume   int
	Phase    models.Phase
	Credited bool
	// PhaseEnd is the scheduled end of the batch's current phase, nil when
	// the batch has not entered production yet.
	PhaseEnd *time.Time
}

// ForecastFn looks up the predicted demand for a beer type in the calendar
// month starting at monthStart. The second return is false when the
// forecast has no value for that month.
type ForecastFn func(beer models.BeerType, monthStart time.Time) (int, bool)

// Input bundles the state a planning run reads.
type Input struct {
	Now       time.Time
	Batches   []BatchState
	Inventory map[models.BeerType]int
	Forecast  ForecastFn
	// Occupied maps tank name to holding batch, derived from live batches.
	Occupied map[string]string
}

// BeerPlan is one beer type's row of the reconciliation table.
type BeerPlan struct {
	BeerType  models.BeerType
	Projected [WindowMonths]int // bottles on hand or finishing, per month
	Forecast  [WindowMonths]int // predicted demand, per month
	Deficit   int               // sum(Projected) - sum(Forecast)
}

// Result is the planner's recommendation plus the full audit table.
type Result struct {
	Months       [WindowMonths]time.Time // first day of each window month
	Beers        []BeerPlan              // fixed beer-type order
	Recommended  models.BeerType
	Tank         string // empty when no capable tank is free
	TankCapacity int
}

// TankAvailable reports whether a usable fermenting tank was found.
func (r Result) TankAvailable() bool { return r.Tank != "" }

// Plan runs the reconciliation. It never mutates its inputs.
func Plan(in Input) Result {
	months := windowMonths(in.Now)

	plans := make([]BeerPlan, len(models.BeerTypes))
	index := make(map[models.BeerType]int, len(models.BeerTypes))
	for i, beer := range models.BeerTypes {
		plans[i] = BeerPlan{BeerType: beer}
		index[beer] = i
	}

	// Project each in-flight batch's finish time and drop its bottles into
	// the month bucket the finish lands in.
	for _, b := range in.Batches {
		finish, ok := projectedFinish(b)
		if !ok {
			continue
		}
		for m := 0; m < WindowMonths; m++ {
			if finish.Year() == months[m].Year() && finish.Month() == months[m].Month() {
				plans[index[b.BeerType]].Projected[m] += models.BottleCount(b.Volume)
				break
			}
		}
	}

	// Current stock is a one-time baseline: it counts toward this month
	// only, not again in later months.
	for beer, count := range in.Inventory {
		if i, ok := index[beer]; ok {
			plans[i].Projected[0] += count
		}
	}

	for i := range plans {
		for m := 0; m < WindowMonths; m++ {
			if v, ok := in.Forecast(plans[i].BeerType, months[m]); ok {
				plans[i].Forecast[m] = v
			}
		}
		projected, forecast := 0, 0
		for m := 0; m < WindowMonths; m++ {
			projected += plans[i].Projected[m]
			forecast += plans[i].Forecast[m]
		}
		plans[i].Deficit = projected - forecast
	}

	// The beer with the most negative deficit wins; the fixed beer-type
	// order breaks ties.
	recommended := plans[0].BeerType
	worst := plans[0].Deficit
	for _, p := range plans[1:] {
		if p.Deficit < worst {
			worst = p.Deficit
			recommended = p.BeerType
		}
	}

	result := Result{Beers: plans, Recommended: recommended}
	copy(result.Months[:], months)

	if t, ok := tank.LargestFreeFermenter(in.Occupied); ok {
		result.Tank = t.Name
		result.TankCapacity = t.Capacity
	}
	return result
}

// projectedFinish computes when a batch will be fully bottled, assuming
// every remaining phase starts the moment the previous one ends. Batches
// not yet in production, already finished, or already credited contribute
// nothing.
func projectedFinish(b BatchState) (time.Time, bool) {
	if b.Credited || b.Phase == models.PhaseFinished || b.Phase == models.PhaseUnset || b.PhaseEnd == nil {
		return time.Time{}, false
	}
	finish := *b.PhaseEnd
	for p := b.Phase; ; {
		next, ok := models.NextPhase(p)
		if !ok || next == models.PhaseFinished {
			break
		}
		finish = finish.Add(batch.PhaseDuration(next, b.Volume))
		p = next
	}
	return finish, true
}

// windowMonths returns the first day of the current month and the two
// months after it. time.Date normalises month overflow, so December rolls
// into January of the following year.
func windowMonths(now time.Time) []time.Time {
	months := make([]time.Time, WindowMonths)
	for i := 0; i < WindowMonths; i++ {
		months[i] = time.Date(now.Year(), now.Month()+time.Month(i), 1, 0, 0, 0, 0, now.Location())
	}
	return months
}
