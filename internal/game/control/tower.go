package control

import (
	"fmt"
	"sort"

	"github.com/labstack/gommon/log"

	"towersim/internal/game/aircraft"
	"towersim/internal/game/ground"
	"towersim/internal/game/tasks"
	"towersim/pkg/types"
)

const maxEventLogSize = 50

// ControlTower is the root of all mutable simulation state: the aircraft
// registry, the terminals and their gates, both runway queues, the loading
// map and the elapsed-tick counter. The simulation advances only through
// explicit Tick calls; there is no timer and no concurrency.
type ControlTower struct {
	registry     *Registry
	terminals    []*ground.Terminal
	ticksElapsed int64
	landingQueue *LandingQueue
	takeoffQueue *TakeoffQueue
	loading      map[types.Callsign]int
	events       *EventLog
}

// NewControlTower assembles a tower from already-decoded state. Terminals are
// added afterwards with AddTerminal, in the order they should be scanned for
// gates.
func NewControlTower(ticksElapsed int64, registry *Registry, landingQueue *LandingQueue,
	takeoffQueue *TakeoffQueue, loading map[types.Callsign]int) *ControlTower {
	if loading == nil {
		loading = make(map[types.Callsign]int)
	}
	return &ControlTower{
		registry:     registry,
		ticksElapsed: ticksElapsed,
		landingQueue: landingQueue,
		takeoffQueue: takeoffQueue,
		loading:      loading,
		events:       NewEventLog(maxEventLogSize),
	}
}

// NewEmptyControlTower returns a tower with no aircraft, terminals or queued
// state.
func NewEmptyControlTower() *ControlTower {
	registry := NewRegistry()
	return NewControlTower(0, registry, NewLandingQueue(registry), NewTakeoffQueue(), nil)
}

func (t *ControlTower) AddTerminal(terminal *ground.Terminal) {
	t.terminals = append(t.terminals, terminal)
}

// Terminals returns the managed terminals in the order they were added.
func (t *ControlTower) Terminals() []*ground.Terminal {
	out := make([]*ground.Terminal, len(t.terminals))
	copy(out, t.terminals)
	return out
}

// Aircraft returns the managed aircraft in the order they were added.
func (t *ControlTower) Aircraft() []*aircraft.Aircraft {
	return t.registry.InOrder()
}

// AircraftByCallsign resolves a callsign against the registry.
func (t *ControlTower) AircraftByCallsign(callsign types.Callsign) (*aircraft.Aircraft, bool) {
	return t.registry.Get(callsign)
}

func (t *ControlTower) TicksElapsed() int64         { return t.ticksElapsed }
func (t *ControlTower) LandingQueue() *LandingQueue { return t.landingQueue }
func (t *ControlTower) TakeoffQueue() *TakeoffQueue { return t.takeoffQueue }
func (t *ControlTower) Events() []Event             { return t.events.Recent() }

// LoadingAircraft returns a copy of the loading map: aircraft currently at a
// gate taking on cargo or passengers, keyed to their remaining ticks.
func (t *ControlTower) LoadingAircraft() map[types.Callsign]int {
	out := make(map[types.Callsign]int, len(t.loading))
	for cs, ticks := range t.loading {
		out[cs] = ticks
	}
	return out
}

// AddAircraft admits an aircraft into the tower's jurisdiction. Aircraft
// currently in a WAIT or LOAD phase need a gate immediately; if none is
// available the admission fails with ground.ErrNoSuitableGate and the caller
// must handle it, since there is no queue to defer into.
func (t *ControlTower) AddAircraft(ac *aircraft.Aircraft) error {
	switch ac.Tasks().Current().Type {
	case tasks.WAIT, tasks.LOAD:
		gate, err := t.FindUnoccupiedGate(ac)
		if err != nil {
			return err
		}
		// Cannot fail: the gate was just confirmed unoccupied.
		_ = gate.Park(ac.Callsign())
	}
	t.registry.Add(ac)
	t.placeAircraftInQueues(ac)
	log.Infof("%s now under tower control (%s)", ac.Callsign(), ac.Tasks().Current())
	return nil
}

// FindUnoccupiedGate scans terminals in the order they were added, skipping
// terminals under emergency and terminals of the wrong class, and returns the
// first free gate. Fails with ground.ErrNoSuitableGate when every candidate
// is exhausted.
func (t *ControlTower) FindUnoccupiedGate(ac *aircraft.Aircraft) (*ground.Gate, error) {
	for _, terminal := range t.terminals {
		if terminal.HasEmergency() || terminal.Class() != ac.Class() {
			continue
		}
		gate, err := terminal.FindUnoccupiedGate()
		if err == nil {
			return gate, nil
		}
	}
	return nil, fmt.Errorf("%w for aircraft %s", ground.ErrNoSuitableGate, ac.Callsign())
}

// FindGateOfAircraft returns the gate the given aircraft is parked at, or nil
// if it is not parked anywhere.
func (t *ControlTower) FindGateOfAircraft(callsign types.Callsign) *ground.Gate {
	for _, terminal := range t.terminals {
		for _, gate := range terminal.Gates() {
			if occupant, ok := gate.Occupant(); ok && occupant == callsign {
				return gate
			}
		}
	}
	return nil
}

// Tick advances the simulation by one step. In strict order: every aircraft
// updates its own state and AWAY/WAIT phases advance immediately; loading
// aircraft count down; the runway goes to a landing attempt on even tick
// counts (falling back to a takeoff if no landing happens) and to a takeoff
// on odd counts; finally every aircraft is re-registered in the queue or map
// matching its current phase.
func (t *ControlTower) Tick() {
	t.ticksElapsed++

	for _, ac := range t.registry.InOrder() {
		ac.Tick()
		switch ac.Tasks().Current().Type {
		case tasks.AWAY, tasks.WAIT:
			ac.Tasks().MoveToNext()
		}
	}

	t.advanceLoading()

	if t.ticksElapsed%2 == 0 {
		if !t.TryLandAircraft() {
			t.TryTakeOffAircraft()
		}
	} else {
		t.TryTakeOffAircraft()
	}

	t.placeAllAircraftInQueues()
}

// TryLandAircraft lands the highest-priority aircraft in the landing queue if
// a gate can be found for it. With no gate available the aircraft stays
// queued and the attempt reports false with no side effects.
func (t *ControlTower) TryLandAircraft() bool {
	callsign, ok := t.landingQueue.Peek()
	if !ok {
		return false
	}
	ac, ok := t.registry.Get(callsign)
	if !ok {
		return false
	}
	gate, err := t.FindUnoccupiedGate(ac)
	if err != nil {
		return false
	}
	// Cannot fail: the gate was just confirmed unoccupied.
	_ = gate.Park(callsign)
	ac.Unload()
	t.landingQueue.Remove()
	ac.Tasks().MoveToNext()
	t.events.Add(t.ticksElapsed, callsign, fmt.Sprintf("landed, gate %d", gate.Number()))
	log.Infof("%s cleared to land, gate %d", callsign, gate.Number())
	return true
}

// TryTakeOffAircraft releases the aircraft at the front of the takeoff queue,
// if any, and advances it to its next task.
func (t *ControlTower) TryTakeOffAircraft() {
	callsign, ok := t.takeoffQueue.Remove()
	if !ok {
		return
	}
	if ac, ok := t.registry.Get(callsign); ok {
		ac.Tasks().MoveToNext()
	}
	t.events.Add(t.ticksElapsed, callsign, "departed")
	log.Infof("%s cleared for takeoff", callsign)
}

// advanceLoading decrements the remaining loading time of every aircraft at a
// gate. The callsigns are snapshotted and sorted before mutation so iteration
// order can never affect the result. An aircraft reaching zero leaves its
// gate and moves to its next task.
func (t *ControlTower) advanceLoading() {
	callsigns := make([]types.Callsign, 0, len(t.loading))
	for cs := range t.loading {
		callsigns = append(callsigns, cs)
	}
	sort.Slice(callsigns, func(i, j int) bool { return callsigns[i] < callsigns[j] })

	for _, cs := range callsigns {
		t.loading[cs]--
		if t.loading[cs] > 0 {
			continue
		}
		delete(t.loading, cs)
		if gate := t.FindGateOfAircraft(cs); gate != nil {
			gate.Clear()
		}
		if ac, ok := t.registry.Get(cs); ok {
			ac.Tasks().MoveToNext()
		}
		t.events.Add(t.ticksElapsed, cs, "finished loading")
	}
}

func (t *ControlTower) placeAllAircraftInQueues() {
	for _, ac := range t.registry.InOrder() {
		t.placeAircraftInQueues(ac)
	}
}

// placeAircraftInQueues registers the aircraft in the queue or map matching
// its current task. Idempotent: already-registered aircraft are left alone.
func (t *ControlTower) placeAircraftInQueues(ac *aircraft.Aircraft) {
	callsign := ac.Callsign()
	switch ac.Tasks().Current().Type {
	case tasks.LAND:
		if !t.landingQueue.Contains(callsign) {
			t.landingQueue.Add(callsign)
		}
	case tasks.TAKEOFF:
		if !t.takeoffQueue.Contains(callsign) {
			t.takeoffQueue.Add(callsign)
		}
	case tasks.LOAD:
		if _, ok := t.loading[callsign]; !ok {
			t.loading[callsign] = ac.LoadingTime()
		}
	}
}

// String returns e.g.
// "ControlTower: 3 terminals, 12 total aircraft (3 LAND, 4 TAKEOFF, 2 LOAD)".
func (t *ControlTower) String() string {
	return fmt.Sprintf("ControlTower: %d terminals, %d total aircraft (%d LAND, %d TAKEOFF, %d LOAD)",
		len(t.terminals), t.registry.Len(),
		t.landingQueue.Len(), t.takeoffQueue.Len(), len(t.loading))
}
