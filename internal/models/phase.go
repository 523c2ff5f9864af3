package models

import "fmt"

// Phase is one stage of the production pipeline.
type Phase string

// Production phases in pipeline order. A batch starts unset and moves
// strictly forward, one phase at a time, until finished.
const (
	PhaseUnset        Phase = "unset"
	PhaseHotBrewing   Phase = "hot_brewing"
	PhaseFermenting   Phase = "fermenting"
	PhaseConditioning Phase = "conditioning"
	PhaseBottling     Phase = "bottling"
	PhaseFinished     Phase = "finished"
)

// pipeline is the fixed phase order.
var pipeline = []Phase{
	PhaseUnset,
	PhaseHotBrewing,
	PhaseFermenting,
	PhaseConditioning,
	PhaseBottling,
	PhaseFinished,
}

// ParsePhase validates a user-supplied phase string. The unset pseudo-phase
// is not accepted as input: batches begin there but never return.
func ParsePhase(s string) (Phase, error) {
	for _, p := range pipeline[1:] {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown phase %q (expected hot_brewing, fermenting, conditioning, bottling or finished)", s)
}

// NextPhase returns the phase that legally follows p, or false when p is
// terminal.
func NextPhase(p Phase) (Phase, bool) {
	for i, cur := range pipeline {
		if cur == p && i+1 < len(pipeline) {
			return pipeline[i+1], true
		}
	}
	return "", false
}

// PreviousPhase returns the phase completed when p begins. For hot brewing
// this is unset: the first phase has no predecessor.
func PreviousPhase(p Phase) Phase {
	for i, cur := range pipeline {
		if cur == p && i > 0 {
			return pipeline[i-1]
		}
	}
	return PhaseUnset
}

// NeedsTank reports whether a phase occupies one of the shared tanks.
func (p Phase) NeedsTank() bool {
	return p == PhaseFermenting || p == PhaseConditioning
}
