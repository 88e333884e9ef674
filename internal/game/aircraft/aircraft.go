package aircraft

import (
	"fmt"
	"math"

	"towersim/internal/game/tasks"
	"towersim/pkg/types"
)

// Kind distinguishes passenger aircraft from freight aircraft. It is derived
// from the model's capacities rather than carried as separate entity types.
type Kind int

const (
	Passenger Kind = iota
	Freight
)

// Fraction of the fuel capacity burned on each tick spent flying.
const fuelBurnPerTick = 0.10

// Aircraft is a single aircraft under tower management. Its operational phase
// is driven by its circular task list; fuel and cargo levels evolve as the
// simulation ticks.
type Aircraft struct {
	callsign  types.Callsign
	model     Characteristics
	taskList  *tasks.TaskList
	fuel      float64
	onboard   int // passengers, or kilograms of freight
	emergency bool
}

func New(callsign types.Callsign, model Characteristics, taskList *tasks.TaskList, fuel float64, onboard int) *Aircraft {
	return &Aircraft{
		callsign: callsign,
		model:    model,
		taskList: taskList,
		fuel:     fuel,
		onboard:  onboard,
	}
}

func (ac *Aircraft) Callsign() types.Callsign         { return ac.callsign }
func (ac *Aircraft) Characteristics() Characteristics { return ac.model }
func (ac *Aircraft) Tasks() *tasks.TaskList           { return ac.taskList }
func (ac *Aircraft) Fuel() float64                    { return ac.fuel }
func (ac *Aircraft) Onboard() int                     { return ac.onboard }

// Kind reports whether this aircraft carries passengers or freight.
func (ac *Aircraft) Kind() Kind {
	if ac.model.PassengerCapacity > 0 {
		return Passenger
	}
	return Freight
}

func (ac *Aircraft) Class() types.AircraftClass { return ac.model.Class }

func (ac *Aircraft) FuelPercentRemaining() float64 {
	return ac.fuel / ac.model.FuelCapacity * 100
}

func (ac *Aircraft) HasEmergency() bool { return ac.emergency }
func (ac *Aircraft) DeclareEmergency()  { ac.emergency = true }
func (ac *Aircraft) ClearEmergency()    { ac.emergency = false }

func (ac *Aircraft) capacity() int {
	if ac.Kind() == Passenger {
		return ac.model.PassengerCapacity
	}
	return ac.model.FreightCapacity
}

// loadTarget is the number of passengers or kilograms still to be taken on to
// reach the current LOAD task's percentage of capacity.
func (ac *Aircraft) loadTarget() int {
	task := ac.taskList.Current()
	if task.Type != tasks.LOAD {
		return 0
	}
	target := int(math.Round(float64(ac.capacity()) * float64(task.LoadPercent) / 100))
	if target < ac.onboard {
		return 0
	}
	return target - ac.onboard
}

// LoadingTime returns the number of ticks the aircraft occupies a gate while
// loading. Freight is loaded in bulk (heavier loads take longer); passengers
// board at roughly sixty per tick. Always at least one tick.
func (ac *Aircraft) LoadingTime() int {
	toLoad := ac.loadTarget()
	if ac.Kind() == Freight {
		switch {
		case toLoad > 50000:
			return 3
		case toLoad >= 1000:
			return 2
		default:
			return 1
		}
	}
	ticks := int(math.Round(float64(toLoad) / 60))
	if ticks < 1 {
		return 1
	}
	return ticks
}

// Tick advances the aircraft's own state by one simulation step: fuel burns
// while flying, and cargo or passengers come aboard while loading. Task
// transitions are the tower's responsibility, not the aircraft's.
func (ac *Aircraft) Tick() {
	switch ac.taskList.Current().Type {
	case tasks.AWAY:
		ac.fuel -= ac.model.FuelCapacity * fuelBurnPerTick
		if ac.fuel < 0 {
			ac.fuel = 0
		}
	case tasks.LOAD:
		perTick := int(math.Ceil(float64(ac.loadTarget()) / float64(ac.LoadingTime())))
		ac.onboard += perTick
		if ac.onboard > ac.capacity() {
			ac.onboard = ac.capacity()
		}
	}
}

// Unload removes all passengers or freight, as happens immediately after
// landing at a gate.
func (ac *Aircraft) Unload() {
	ac.onboard = 0
}

// Refuel fills the tanks back to capacity.
func (ac *Aircraft) Refuel() {
	ac.fuel = ac.model.FuelCapacity
}

// String returns e.g. "AIRPLANE ABC123 AIRBUS_A320 AWAY (EMERGENCY)".
func (ac *Aircraft) String() string {
	s := fmt.Sprintf("%s %s %s %s",
		ac.model.Class, ac.callsign, ac.model.Model, ac.taskList.Current().Type)
	if ac.emergency {
		s += " (EMERGENCY)"
	}
	return s
}

// Encode returns the persisted form:
// callsign:MODEL:taskListEncoded:fuelAmount:emergency:onboard.
func (ac *Aircraft) Encode() string {
	return fmt.Sprintf("%s:%s:%s:%.2f:%t:%d",
		ac.callsign, ac.model.Model, ac.taskList.Encode(), ac.fuel, ac.emergency, ac.onboard)
}
