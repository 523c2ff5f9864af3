package batch

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/example/brewtrack/internal/core/faults"
	"github.com/example/brewtrack/internal/core/tank"
	"github.com/example/brewtrack/internal/models"
)

func mustTank(t *testing.T, name string) *tank.Tank {
	t.Helper()
	tk, err := tank.Lookup(name)
	if err != nil {
		t.Fatalf("tank %s: %v", name, err)
	}
	return &tk
}

func TestPhaseDurations(t *testing.T) {
	tests := []struct {
		phase  models.Phase
		volume int
		want   time.Duration
	}{
		{models.PhaseHotBrewing, 800, 5 * time.Hour},
		{models.PhaseFermenting, 800, 672 * time.Hour},
		{models.PhaseConditioning, 800, 336 * time.Hour},
		// 500 L -> 1000 bottles -> 1000 minutes, just under 16.7 hours.
		{models.PhaseBottling, 500, 1000 * time.Minute},
		{models.PhaseFinished, 500, 0},
	}
	for _, tt := range tests {
		if got := PhaseDuration(tt.phase, tt.volume); got != tt.want {
			t.Errorf("PhaseDuration(%s, %d) = %v, want %v", tt.phase, tt.volume, got, tt.want)
		}
	}
}

func TestCanChangePhaseFinishedBatchRejected(t *testing.T) {
	res := CanChangePhase(PhaseChangeContext{
		BatchID:      "B-1",
		CurrentPhase: models.PhaseFinished,
		TargetPhase:  models.PhaseHotBrewing,
	})
	if res.Allowed {
		t.Fatal("expected rejection")
	}
	var se *faults.StateError
	if !errors.As(res.Error(), &se) {
		t.Fatalf("expected StateError, got %T", res.Error())
	}
}

func TestCanChangePhaseNoSkipping(t *testing.T) {
	res := CanChangePhase(PhaseChangeContext{
		BatchID:       "B-1",
		CurrentPhase:  models.PhaseHotBrewing,
		TargetPhase:   models.PhaseConditioning,
		BatchVolume:   500,
		RequestedTank: mustTank(t, "gertrude"),
	})
	if res.Allowed {
		t.Fatal("expected rejection of skipped phase")
	}
	var se *faults.StateError
	if !errors.As(res.Error(), &se) {
		t.Fatalf("expected StateError, got %T", res.Error())
	}
}

func TestCanChangePhaseNoRevisit(t *testing.T) {
	res := CanChangePhase(PhaseChangeContext{
		BatchID:      "B-1",
		CurrentPhase: models.PhaseBottling,
		TargetPhase:  models.PhaseBottling,
		BatchVolume:  500,
	})
	if res.Allowed {
		t.Fatal("expected rejection of revisited phase")
	}
}

func TestCanChangePhaseTankRejectedForUntankedPhases(t *testing.T) {
	for _, target := range []models.Phase{models.PhaseHotBrewing, models.PhaseBottling, models.PhaseFinished} {
		current := models.PreviousPhase(target)
		res := CanChangePhase(PhaseChangeContext{
			BatchID:       "B-1",
			CurrentPhase:  current,
			TargetPhase:   target,
			BatchVolume:   500,
			CurrentTank:   "",
			RequestedTank: mustTank(t, "albert"),
		})
		if res.Allowed {
			t.Errorf("expected tank selection rejected for %s", target)
			continue
		}
		var ve *faults.ValidationError
		if !errors.As(res.Error(), &ve) {
			t.Errorf("expected ValidationError for %s, got %T", target, res.Error())
		}
	}
}

func TestCanChangePhaseFermentingNeedsTank(t *testing.T) {
	res := CanChangePhase(PhaseChangeContext{
		BatchID:      "B-1",
		CurrentPhase: models.PhaseHotBrewing,
		TargetPhase:  models.PhaseFermenting,
		BatchVolume:  500,
	})
	if res.Allowed {
		t.Fatal("expected rejection without tank")
	}
	var ve *faults.ValidationError
	if !errors.As(res.Error(), &ve) {
		t.Fatalf("expected ValidationError, got %T", res.Error())
	}
	if !strings.Contains(ve.Msg, "Available tanks:") {
		t.Errorf("expected available tanks in message, got %q", ve.Msg)
	}
}

func TestCanChangePhaseR2D2CannotCondition(t *testing.T) {
	res := CanChangePhase(PhaseChangeContext{
		BatchID:       "B-1",
		CurrentPhase:  models.PhaseFermenting,
		TargetPhase:   models.PhaseConditioning,
		BatchVolume:   500,
		CurrentTank:   "r2d2",
		RequestedTank: mustTank(t, "r2d2"),
		Occupied:      map[string]string{"r2d2": "B-1"},
	})
	if res.Allowed {
		t.Fatal("expected r2d2 rejected for conditioning")
	}
	var ve *faults.ValidationError
	if !errors.As(res.Error(), &ve) {
		t.Fatalf("expected ValidationError, got %T", res.Error())
	}
}

func TestCanChangePhaseCapacityTooSmall(t *testing.T) {
	res := CanChangePhase(PhaseChangeContext{
		BatchID:       "B-1",
		CurrentPhase:  models.PhaseHotBrewing,
		TargetPhase:   models.PhaseFermenting,
		BatchVolume:   900,
		RequestedTank: mustTank(t, "brigadier"), // 800 L
	})
	if res.Allowed {
		t.Fatal("expected capacity rejection")
	}
}

func TestCanChangePhaseTankHeldByOtherBatch(t *testing.T) {
	res := CanChangePhase(PhaseChangeContext{
		BatchID:       "B-2",
		CurrentPhase:  models.PhaseHotBrewing,
		TargetPhase:   models.PhaseFermenting,
		BatchVolume:   500,
		RequestedTank: mustTank(t, "albert"),
		Occupied:      map[string]string{"albert": "B-1"},
	})
	if res.Allowed {
		t.Fatal("expected occupied tank rejected")
	}
	var ve *faults.ValidationError
	if !errors.As(res.Error(), &ve) {
		t.Fatalf("expected ValidationError, got %T", res.Error())
	}
	if !strings.Contains(ve.Msg, "held by batch B-1") {
		t.Errorf("unexpected message: %q", ve.Msg)
	}
}

func TestCanChangePhaseBatchMayKeepItsOwnTank(t *testing.T) {
	// A batch fermenting in albert may condition in albert: the tank spans
	// both capabilities and its own occupancy does not block it.
	res := CanChangePhase(PhaseChangeContext{
		BatchID:       "B-1",
		CurrentPhase:  models.PhaseFermenting,
		TargetPhase:   models.PhaseConditioning,
		BatchVolume:   500,
		CurrentTank:   "albert",
		RequestedTank: mustTank(t, "albert"),
		Occupied:      map[string]string{"albert": "B-1"},
	})
	if err := res.Error(); err != nil {
		t.Fatalf("expected batch to keep its tank: %v", err)
	}
}

func TestCanChangePhaseHappyPath(t *testing.T) {
	res := CanChangePhase(PhaseChangeContext{
		BatchID:      "B-1",
		CurrentPhase: models.PhaseUnset,
		TargetPhase:  models.PhaseHotBrewing,
		BatchVolume:  500,
	})
	if err := res.Error(); err != nil {
		t.Fatalf("expected hot brewing allowed: %v", err)
	}

	res = CanChangePhase(PhaseChangeContext{
		BatchID:       "B-1",
		CurrentPhase:  models.PhaseHotBrewing,
		TargetPhase:   models.PhaseFermenting,
		BatchVolume:   500,
		RequestedTank: mustTank(t, "r2d2"),
		Occupied:      map[string]string{},
	})
	if err := res.Error(); err != nil {
		t.Fatalf("expected fermenting in r2d2 allowed: %v", err)
	}
}
