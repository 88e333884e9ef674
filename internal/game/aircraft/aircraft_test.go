package aircraft

import (
	"math"
	"testing"

	"towersim/internal/game/tasks"
)

func mustModel(t *testing.T, model string) Characteristics {
	t.Helper()
	c, ok := CharacteristicsOf(model)
	if !ok {
		t.Fatalf("unknown model %s", model)
	}
	return c
}

func mustTasks(t *testing.T, list ...tasks.Task) *tasks.TaskList {
	t.Helper()
	tl, err := tasks.NewTaskList(list)
	if err != nil {
		t.Fatalf("NewTaskList: %v", err)
	}
	return tl
}

func TestKindDerivedFromCapacities(t *testing.T) {
	away := func() *tasks.TaskList { return mustTasks(t, tasks.NewTask(tasks.AWAY)) }

	pax := New("P1", mustModel(t, "AIRBUS_A320"), away(), 1000, 0)
	if pax.Kind() != Passenger {
		t.Error("AIRBUS_A320 should be a passenger aircraft")
	}
	freight := New("F1", mustModel(t, "BOEING_747_8F"), away(), 1000, 0)
	if freight.Kind() != Freight {
		t.Error("BOEING_747_8F should be a freight aircraft")
	}
	heli := New("H1", mustModel(t, "SIKORSKY_SKYCRANE"), away(), 500, 0)
	if heli.Kind() != Freight {
		t.Error("SIKORSKY_SKYCRANE should be a freight aircraft")
	}
}

func TestFuelPercentRemaining(t *testing.T) {
	ac := New("Q1", mustModel(t, "AIRBUS_A320"), mustTasks(t, tasks.NewTask(tasks.AWAY)), 2720, 0)
	if got := ac.FuelPercentRemaining(); got != 10 {
		t.Errorf("FuelPercentRemaining() = %v, want 10", got)
	}
}

func TestTickBurnsFuelWhileAway(t *testing.T) {
	model := mustModel(t, "AIRBUS_A320")
	ac := New("Q1", model, mustTasks(t, tasks.NewTask(tasks.AWAY)), model.FuelCapacity, 0)

	ac.Tick()
	if got, want := ac.Fuel(), model.FuelCapacity*0.9; math.Abs(got-want) > 1e-9 {
		t.Errorf("fuel after one AWAY tick = %v, want %v", got, want)
	}

	// Fuel never goes negative, even on a long flight.
	for i := 0; i < 20; i++ {
		ac.Tick()
	}
	if got := ac.Fuel(); got != 0 {
		t.Errorf("fuel after exhaustion = %v, want 0", got)
	}
}

func TestTickDoesNothingWhileWaiting(t *testing.T) {
	model := mustModel(t, "FOKKER_100")
	ac := New("W1", model, mustTasks(t, tasks.NewTask(tasks.WAIT)), 5000, 40)
	ac.Tick()
	if ac.Fuel() != 5000 || ac.Onboard() != 40 {
		t.Errorf("WAIT tick changed state: fuel %v onboard %d", ac.Fuel(), ac.Onboard())
	}
}

func TestLoadingTimePassenger(t *testing.T) {
	model := mustModel(t, "AIRBUS_A320")
	// LOAD@60 of 150 seats = 90 passengers; 90/60 rounds to 2 ticks.
	tl := mustTasks(t, tasks.NewTask(tasks.LAND), tasks.NewLoadTask(60), tasks.NewTask(tasks.TAKEOFF), tasks.NewTask(tasks.AWAY))
	tl.MoveToNext()
	ac := New("Q1", model, tl, 10000, 0)
	if got := ac.LoadingTime(); got != 2 {
		t.Errorf("LoadingTime() = %d, want 2", got)
	}

	// A tiny load still takes one tick.
	tlSmall := mustTasks(t, tasks.NewTask(tasks.LAND), tasks.NewLoadTask(10), tasks.NewTask(tasks.TAKEOFF), tasks.NewTask(tasks.AWAY))
	tlSmall.MoveToNext()
	small := New("Q2", model, tlSmall, 10000, 0)
	if got := small.LoadingTime(); got != 1 {
		t.Errorf("LoadingTime() for small load = %d, want 1", got)
	}
}

func TestLoadingTimeFreightTiers(t *testing.T) {
	model := mustModel(t, "BOEING_747_8F")
	cases := []struct {
		percent int
		want    int
	}{
		{50, 3}, // 68878 kg
		{1, 2},  // 1378 kg
		{0, 1},
	}
	for _, c := range cases {
		tl := mustTasks(t, tasks.NewTask(tasks.LAND), tasks.NewLoadTask(c.percent), tasks.NewTask(tasks.TAKEOFF), tasks.NewTask(tasks.AWAY))
		tl.MoveToNext()
		ac := New("F1", model, tl, 100000, 0)
		if got := ac.LoadingTime(); got != c.want {
			t.Errorf("LoadingTime() at LOAD@%d = %d, want %d", c.percent, got, c.want)
		}
	}
}

func TestTickBoardsPassengersWhileLoading(t *testing.T) {
	model := mustModel(t, "AIRBUS_A320")
	tl := mustTasks(t, tasks.NewTask(tasks.LAND), tasks.NewLoadTask(60), tasks.NewTask(tasks.TAKEOFF), tasks.NewTask(tasks.AWAY))
	tl.MoveToNext()
	ac := New("Q1", model, tl, 10000, 0)

	ac.Tick()
	if got := ac.Onboard(); got != 45 {
		t.Errorf("onboard after first LOAD tick = %d, want 45", got)
	}
	ac.Tick()
	if got := ac.Onboard(); got != 90 {
		t.Errorf("onboard after second LOAD tick = %d, want 90", got)
	}
}

func TestUnloadAndRefuel(t *testing.T) {
	model := mustModel(t, "BOEING_787")
	ac := New("U1", model, mustTasks(t, tasks.NewTask(tasks.AWAY)), 40000, 200)

	ac.Unload()
	if ac.Onboard() != 0 {
		t.Errorf("onboard after Unload = %d", ac.Onboard())
	}
	ac.Refuel()
	if ac.Fuel() != model.FuelCapacity {
		t.Errorf("fuel after Refuel = %v, want %v", ac.Fuel(), model.FuelCapacity)
	}
}

func TestAircraftString(t *testing.T) {
	model := mustModel(t, "AIRBUS_A320")
	ac := New("ABC123", model, mustTasks(t, tasks.NewTask(tasks.AWAY)), 1000, 0)
	if got := ac.String(); got != "AIRPLANE ABC123 AIRBUS_A320 AWAY" {
		t.Errorf("String() = %q", got)
	}
	ac.DeclareEmergency()
	if got := ac.String(); got != "AIRPLANE ABC123 AIRBUS_A320 AWAY (EMERGENCY)" {
		t.Errorf("String() with emergency = %q", got)
	}
}

func TestAircraftEncode(t *testing.T) {
	model := mustModel(t, "AIRBUS_A320")
	tl := mustTasks(t, tasks.NewTask(tasks.AWAY), tasks.NewTask(tasks.LAND), tasks.NewLoadTask(20), tasks.NewTask(tasks.TAKEOFF))
	ac := New("X1", model, tl, 2702, 100)
	want := "X1:AIRBUS_A320:AWAY,LAND,LOAD@20,TAKEOFF:2702.00:false:100"
	if got := ac.Encode(); got != want {
		t.Errorf("Encode() = %q, want %q", got, want)
	}

	// The task list encodes from the current task, so the snapshot follows
	// the aircraft through its cycle.
	tl.MoveToNext()
	ac.DeclareEmergency()
	want = "X1:AIRBUS_A320:LAND,LOAD@20,TAKEOFF,AWAY:2702.00:true:100"
	if got := ac.Encode(); got != want {
		t.Errorf("Encode() after advance = %q, want %q", got, want)
	}
}
