package ground

import (
	"errors"
	"fmt"

	"towersim/pkg/types"
)

// ErrGateOccupied is returned when parking at a gate that already holds an
// aircraft.
var ErrGateOccupied = errors.New("gate occupied")

// emptyGateMarker is the sentinel written in place of a callsign for an
// unoccupied gate.
const emptyGateMarker = "empty"

// Gate is a single parking position within a terminal. A gate holds at most
// one aircraft, identified by callsign; the aircraft itself lives in the
// tower's registry.
type Gate struct {
	number   int
	occupant types.Callsign
}

func NewGate(number int) *Gate {
	return &Gate{number: number}
}

func (g *Gate) Number() int { return g.number }

func (g *Gate) Occupied() bool { return g.occupant != "" }

// Occupant returns the callsign of the parked aircraft, or false if the gate
// is empty.
func (g *Gate) Occupant() (types.Callsign, bool) {
	return g.occupant, g.occupant != ""
}

// Park places the given aircraft at this gate.
func (g *Gate) Park(callsign types.Callsign) error {
	if g.Occupied() {
		return fmt.Errorf("%w: gate %d holds %s", ErrGateOccupied, g.number, g.occupant)
	}
	g.occupant = callsign
	return nil
}

// Clear vacates the gate.
func (g *Gate) Clear() {
	g.occupant = ""
}

// String returns e.g. "Gate 2 [ABC123]" or "Gate 2 [empty]".
func (g *Gate) String() string {
	if g.Occupied() {
		return fmt.Sprintf("Gate %d [%s]", g.number, g.occupant)
	}
	return fmt.Sprintf("Gate %d [%s]", g.number, emptyGateMarker)
}

// Encode returns the persisted form: gateNumber:callsign, with "empty" in
// place of a callsign for an unoccupied gate.
func (g *Gate) Encode() string {
	if g.Occupied() {
		return fmt.Sprintf("%d:%s", g.number, g.occupant)
	}
	return fmt.Sprintf("%d:%s", g.number, emptyGateMarker)
}
