package control

import (
	"sort"

	"towersim/internal/game/aircraft"
	"towersim/pkg/types"
)

// Fuel percentage at or below which an aircraft is considered critically low.
const criticalFuelPercent = 20

// LandingQueue is a rule-based queue of aircraft waiting in the air to land.
// Aircraft are prioritised by urgency: declared emergencies first, then
// critically low fuel, then passenger aircraft, then arrival order. Within
// each rule, the aircraft added to the queue first wins.
type LandingQueue struct {
	registry *Registry
	queue    []types.Callsign
}

// NewLandingQueue returns an empty landing queue. The registry is consulted
// for the emergency, fuel and kind attributes that drive prioritisation.
func NewLandingQueue(registry *Registry) *LandingQueue {
	return &LandingQueue{registry: registry}
}

// rank maps an aircraft to its priority tier; lower lands sooner.
func (q *LandingQueue) rank(callsign types.Callsign) int {
	ac, ok := q.registry.Get(callsign)
	if !ok {
		return 3
	}
	switch {
	case ac.HasEmergency():
		return 0
	case ac.FuelPercentRemaining() <= criticalFuelPercent:
		return 1
	case ac.Kind() == aircraft.Passenger:
		return 2
	default:
		return 3
	}
}

// front returns the index of the aircraft the priority rules select next, or
// -1 if the queue is empty. Earliest insertion wins within a tier.
func (q *LandingQueue) front() int {
	best, bestRank := -1, 4
	for i, cs := range q.queue {
		if r := q.rank(cs); r < bestRank {
			best, bestRank = i, r
		}
	}
	return best
}

func (q *LandingQueue) Add(callsign types.Callsign) {
	q.queue = append(q.queue, callsign)
}

func (q *LandingQueue) Peek() (types.Callsign, bool) {
	i := q.front()
	if i < 0 {
		return "", false
	}
	return q.queue[i], true
}

func (q *LandingQueue) Remove() (types.Callsign, bool) {
	i := q.front()
	if i < 0 {
		return "", false
	}
	cs := q.queue[i]
	q.queue = append(q.queue[:i:i], q.queue[i+1:]...)
	return cs, true
}

// InOrder returns the full removal order: a stable sort of the current
// contents by priority tier, with insertion order breaking ties. Equivalent
// to repeatedly removing until empty, but without touching the queue.
func (q *LandingQueue) InOrder() []types.Callsign {
	out := make([]types.Callsign, len(q.queue))
	copy(out, q.queue)
	sort.SliceStable(out, func(i, j int) bool {
		return q.rank(out[i]) < q.rank(out[j])
	})
	return out
}

func (q *LandingQueue) Contains(callsign types.Callsign) bool {
	for _, cs := range q.queue {
		if cs == callsign {
			return true
		}
	}
	return false
}

func (q *LandingQueue) Len() int {
	return len(q.queue)
}

func (q *LandingQueue) TypeName() string {
	return "LandingQueue"
}

func (q *LandingQueue) String() string {
	return FormatQueue(q)
}
