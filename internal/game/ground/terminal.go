package ground

import (
	"errors"
	"fmt"
	"strings"

	"towersim/pkg/types"
)

// MaxGates is the maximum number of gates any terminal may have.
const MaxGates = 6

var (
	// ErrNoSuitableGate is returned when no compatible, non-emergency,
	// unoccupied gate exists for an aircraft.
	ErrNoSuitableGate = errors.New("no suitable gate")

	// ErrTerminalFull is returned when adding a gate beyond MaxGates.
	ErrTerminalFull = errors.New("terminal full")
)

// Terminal is a group of gates serving one class of aircraft. Gates keep the
// order in which they were added; gate searches always scan in that order.
type Terminal struct {
	class     types.AircraftClass
	number    int
	gates     []*Gate
	emergency bool
}

func NewTerminal(class types.AircraftClass, number int) *Terminal {
	return &Terminal{class: class, number: number}
}

func (t *Terminal) Class() types.AircraftClass { return t.class }
func (t *Terminal) Number() int                { return t.number }

func (t *Terminal) HasEmergency() bool { return t.emergency }
func (t *Terminal) DeclareEmergency()  { t.emergency = true }
func (t *Terminal) ClearEmergency()    { t.emergency = false }

// AddGate registers a gate with this terminal.
func (t *Terminal) AddGate(g *Gate) error {
	if len(t.gates) >= MaxGates {
		return fmt.Errorf("%w: terminal %d already has %d gates", ErrTerminalFull, t.number, MaxGates)
	}
	t.gates = append(t.gates, g)
	return nil
}

// Gates returns the terminal's gates in registration order. The returned
// slice is a copy; the gates themselves are shared.
func (t *Terminal) Gates() []*Gate {
	out := make([]*Gate, len(t.gates))
	copy(out, t.gates)
	return out
}

// FindUnoccupiedGate returns the first unoccupied gate in registration order,
// or ErrNoSuitableGate if every gate is taken.
func (t *Terminal) FindUnoccupiedGate() (*Gate, error) {
	for _, g := range t.gates {
		if !g.Occupied() {
			return g, nil
		}
	}
	return nil, fmt.Errorf("%w: terminal %d has no free gates", ErrNoSuitableGate, t.number)
}

// OccupiedCount returns the number of gates currently holding an aircraft.
func (t *Terminal) OccupiedCount() int {
	n := 0
	for _, g := range t.gates {
		if g.Occupied() {
			n++
		}
	}
	return n
}

// TypeName returns the persisted terminal type identifier, e.g.
// "AirplaneTerminal".
func (t *Terminal) TypeName() string {
	if t.class == types.Helicopter {
		return "HelicopterTerminal"
	}
	return "AirplaneTerminal"
}

// String returns e.g. "AirplaneTerminal 1, 4 gates (EMERGENCY)".
func (t *Terminal) String() string {
	s := fmt.Sprintf("%s %d, %d gates", t.TypeName(), t.number, len(t.gates))
	if t.emergency {
		s += " (EMERGENCY)"
	}
	return s
}

// Encode returns the persisted form: a header line
// TerminalType:number:emergency:numGates followed by one encoded gate per
// line.
func (t *Terminal) Encode() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:%d:%t:%d", t.TypeName(), t.number, t.emergency, len(t.gates))
	for _, g := range t.gates {
		b.WriteString("\n")
		b.WriteString(g.Encode())
	}
	return b.String()
}
