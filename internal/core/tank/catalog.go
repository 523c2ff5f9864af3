// Package tank contains the fixed tank catalog and the pure occupancy logic
// derived from it. The catalog never changes at runtime; which tank is busy
// is always recomputed from the live batch set, so there is exactly one
// source of truth for occupancy.
package tank

import (
	"sort"

	"github.com/example/brewtrack/internal/core/faults"
)

// Capability is a production phase a tank can physically host.
type Capability string

const (
	CapabilityFerment   Capability = "ferment"
	CapabilityCondition Capability = "condition"
)

// Tank describes one vessel in the brewhouse.
type Tank struct {
	Name         string
	Capabilities []Capability
	Capacity     int // litres
}

// Can reports whether the tank supports the given capability.
func (t Tank) Can(c Capability) bool {
	for _, cap := range t.Capabilities {
		if cap == c {
			return true
		}
	}
	return false
}

// catalog is the brewery's nine tanks. Fixed at startup, never mutated.
var catalog = []Tank{
	{Name: "albert", Capabilities: []Capability{CapabilityFerment, CapabilityCondition}, Capacity: 1000},
	{Name: "brigadier", Capabilities: []Capability{CapabilityFerment, CapabilityCondition}, Capacity: 800},
	{Name: "camilla", Capabilities: []Capability{CapabilityFerment, CapabilityCondition}, Capacity: 1000},
	{Name: "dylon", Capabilities: []Capability{CapabilityFerment, CapabilityCondition}, Capacity: 800},
	{Name: "emily", Capabilities: []Capability{CapabilityFerment, CapabilityCondition}, Capacity: 1000},
	{Name: "florence", Capabilities: []Capability{CapabilityFerment, CapabilityCondition}, Capacity: 800},
	{Name: "gertrude", Capabilities: []Capability{CapabilityCondition}, Capacity: 680},
	{Name: "harry", Capabilities: []Capability{CapabilityCondition}, Capacity: 680},
	{Name: "r2d2", Capabilities: []Capability{CapabilityFerment}, Capacity: 800},
}

// Lookup resolves a tank by name. Unknown names fail closed rather than
// returning a degraded zero-capability tank.
func Lookup(name string) (Tank, error) {
	for _, t := range catalog {
		if t.Name == name {
			return t, nil
		}
	}
	return Tank{}, faults.NotFound("tank", name)
}

// Names returns all tank names in catalog order.
func Names() []string {
	names := make([]string, len(catalog))
	for i, t := range catalog {
		names[i] = t.Name
	}
	return names
}

// All returns the full catalog in order.
func All() []Tank {
	tanks := make([]Tank, len(catalog))
	copy(tanks, catalog)
	return tanks
}

// Assignment records which tank a live batch currently holds.
type Assignment struct {
	BatchID string
	Tank    string
}

// Occupied derives the tank-to-batch occupancy map from the live batch set.
// Assignments with an empty tank name are ignored.
func Occupied(assignments []Assignment) map[string]string {
	occupied := make(map[string]string)
	for _, a := range assignments {
		if a.Tank != "" {
			occupied[a.Tank] = a.BatchID
		}
	}
	return occupied
}

// Free returns the names of unoccupied tanks in catalog order.
func Free(occupied map[string]string) []string {
	var free []string
	for _, t := range catalog {
		if _, busy := occupied[t.Name]; !busy {
			free = append(free, t.Name)
		}
	}
	return free
}

// LargestFreeFermenter picks the unoccupied ferment-capable tank with the
// greatest capacity, breaking ties by name. Returns false when every
// ferment-capable tank is busy.
func LargestFreeFermenter(occupied map[string]string) (Tank, bool) {
	var candidates []Tank
	for _, t := range catalog {
		if _, busy := occupied[t.Name]; busy {
			continue
		}
		if t.Can(CapabilityFerment) {
			candidates = append(candidates, t)
		}
	}
	if len(candidates) == 0 {
		return Tank{}, false
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Capacity != candidates[j].Capacity {
			return candidates[i].Capacity > candidates[j].Capacity
		}
		return candidates[i].Name < candidates[j].Name
	})
	return candidates[0], true
}
