// Package batch contains the pure business logic for the batch phase state
// machine. Guards evaluate preconditions without side effects; the service
// layer applies the mutation only when a guard allows it.
package batch

import (
	"strings"
	"time"

	"github.com/example/brewtrack/internal/core/faults"
	"github.com/example/brewtrack/internal/core/tank"
	"github.com/example/brewtrack/internal/models"
)

// Fixed phase durations. Bottling is volume-dependent: one minute per
// bottle, two bottles per litre.
const (
	HotBrewingDuration   = 5 * time.Hour
	FermentingDuration   = 672 * time.Hour // four weeks
	ConditioningDuration = 336 * time.Hour // two weeks
)

// PhaseDuration returns how long a batch of the given volume spends in a
// phase. Finished and unset have no duration.
func PhaseDuration(p models.Phase, volumeLitres int) time.Duration {
	switch p {
	case models.PhaseHotBrewing:
		return HotBrewingDuration
	case models.PhaseFermenting:
		return FermentingDuration
	case models.PhaseConditioning:
		return ConditioningDuration
	case models.PhaseBottling:
		return time.Duration(models.BottleCount(volumeLitres)) * time.Minute
	default:
		return 0
	}
}

// GuardResult represents the outcome of a guard evaluation. When not
// allowed, Err carries the typed fault to return to the caller.
type GuardResult struct {
	Allowed bool
	Err     error
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return r.Err
}

func allowed() GuardResult { return GuardResult{Allowed: true} }

func denied(err error) GuardResult { return GuardResult{Allowed: false, Err: err} }

// PhaseChangeContext provides everything a phase-change guard needs. The
// service layer assembles it from the batch, the tank catalog, and the
// occupancy derived from all live batches.
type PhaseChangeContext struct {
	BatchID      string
	CurrentPhase models.Phase
	TargetPhase  models.Phase
	BatchVolume  int

	CurrentTank   string     // tank the batch already holds, empty if none
	RequestedTank *tank.Tank // resolved requested tank, nil when none given

	// Occupied maps tank name to the batch holding it, derived from the
	// full live batch set (the requesting batch included).
	Occupied map[string]string
}

// CanChangePhase evaluates whether a batch may move to the target phase.
// Rules:
//   - No transition leaves finished.
//   - Phases advance one step at a time, never skipped or revisited.
//   - hot_brewing, bottling and finished take no tank.
//   - fermenting and conditioning need a tank that is free (or already held
//     by this batch), has the capability, and fits the volume.
func CanChangePhase(ctx PhaseChangeContext) GuardResult {
	if ctx.CurrentPhase == models.PhaseFinished {
		return denied(faults.Statef("batch %s is finished and cannot re-enter production", ctx.BatchID))
	}

	next, ok := models.NextPhase(ctx.CurrentPhase)
	if !ok || next != ctx.TargetPhase {
		return denied(faults.Statef("batch %s is in phase %s; the only allowed next phase is %s",
			ctx.BatchID, ctx.CurrentPhase, next))
	}

	if !ctx.TargetPhase.NeedsTank() {
		if ctx.RequestedTank != nil {
			return denied(faults.Validationf("phase %s does not use a tank; omit the tank selection", ctx.TargetPhase))
		}
		return allowed()
	}

	if ctx.RequestedTank == nil {
		return denied(faults.Validationf("phase %s requires a tank. %s", ctx.TargetPhase, availableTanksHint(ctx)))
	}

	t := *ctx.RequestedTank
	if holder, busy := ctx.Occupied[t.Name]; busy && holder != ctx.BatchID {
		return denied(faults.Validationf("tank %s is held by batch %s. %s", t.Name, holder, availableTanksHint(ctx)))
	}

	if !t.Can(capabilityFor(ctx.TargetPhase)) {
		return denied(faults.Validationf("tank %s cannot host %s. %s", t.Name, ctx.TargetPhase, availableTanksHint(ctx)))
	}

	if t.Capacity < ctx.BatchVolume {
		return denied(faults.Validationf("tank %s holds %d L, batch %s needs %d L. %s",
			t.Name, t.Capacity, ctx.BatchID, ctx.BatchVolume, availableTanksHint(ctx)))
	}

	return allowed()
}

// capabilityFor maps a tank-bound phase to the capability it demands.
func capabilityFor(p models.Phase) tank.Capability {
	if p == models.PhaseConditioning {
		return tank.CapabilityCondition
	}
	return tank.CapabilityFerment
}

// availableTanksHint enumerates the tanks the batch could use right now.
// The batch's own tank counts as available: a batch may stay put when the
// tank covers both fermenting and conditioning.
func availableTanksHint(ctx PhaseChangeContext) string {
	free := make(map[string]bool)
	for _, name := range tank.Names() {
		holder, busy := ctx.Occupied[name]
		if !busy || holder == ctx.BatchID {
			free[name] = true
		}
	}

	var usable []string
	for _, t := range tank.All() {
		if free[t.Name] && t.Can(capabilityFor(ctx.TargetPhase)) && t.Capacity >= ctx.BatchVolume {
			usable = append(usable, t.Name)
		}
	}
	if len(usable) == 0 {
		return "No suitable tank is currently available."
	}
	return "Available tanks: " + strings.Join(usable, ", ")
}
