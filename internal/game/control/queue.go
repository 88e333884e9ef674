package control

import (
	"fmt"
	"strings"

	"towersim/pkg/types"
)

// AircraftQueue is an ordered multiset of aircraft callsigns waiting for the
// runway. The order in which aircraft leave the queue depends on the
// discipline of the concrete implementation.
type AircraftQueue interface {
	// Add appends the given aircraft to the queue.
	Add(callsign types.Callsign)

	// Peek returns the aircraft at the front of the queue without removing
	// it, or false if the queue is empty.
	Peek() (types.Callsign, bool)

	// Remove removes and returns the aircraft at the front of the queue, or
	// false if the queue is empty.
	Remove() (types.Callsign, bool)

	// InOrder returns all queued aircraft in removal order: the first element
	// is what Remove would return next, and so on. The result is an
	// independent copy and computing it never mutates the queue.
	InOrder() []types.Callsign

	// Contains reports whether the given aircraft is queued.
	Contains(callsign types.Callsign) bool

	Len() int

	// TypeName is the queue's persisted type identifier, e.g. "TakeoffQueue".
	TypeName() string
}

// FormatQueue returns the human-readable form of a queue, e.g.
// "LandingQueue [ABC123, XYZ987]" or "TakeoffQueue []".
func FormatQueue(q AircraftQueue) string {
	in := q.InOrder()
	parts := make([]string, len(in))
	for i, cs := range in {
		parts[i] = string(cs)
	}
	return fmt.Sprintf("%s [%s]", q.TypeName(), strings.Join(parts, ", "))
}

// EncodeQueue returns the persisted form of a queue: a TypeName:count header,
// followed by a comma-separated callsign line when the queue is non-empty.
func EncodeQueue(q AircraftQueue) string {
	in := q.InOrder()
	header := fmt.Sprintf("%s:%d", q.TypeName(), len(in))
	if len(in) == 0 {
		return header
	}
	parts := make([]string, len(in))
	for i, cs := range in {
		parts[i] = string(cs)
	}
	return header + "\n" + strings.Join(parts, ",")
}
