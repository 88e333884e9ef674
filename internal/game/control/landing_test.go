package control

import (
	"reflect"
	"testing"

	"towersim/internal/game/aircraft"
	"towersim/internal/game/tasks"
	"towersim/pkg/types"
)

// testAircraft builds an aircraft whose task list starts at the first task of
// the given sequence.
func testAircraft(t *testing.T, callsign types.Callsign, model string, fuel float64, onboard int, seq ...tasks.Task) *aircraft.Aircraft {
	t.Helper()
	chars, ok := aircraft.CharacteristicsOf(model)
	if !ok {
		t.Fatalf("unknown model %s", model)
	}
	tl, err := tasks.NewTaskList(seq)
	if err != nil {
		t.Fatalf("NewTaskList: %v", err)
	}
	return aircraft.New(callsign, chars, tl, fuel, onboard)
}

func landingSeq() []tasks.Task {
	return []tasks.Task{
		tasks.NewTask(tasks.LAND), tasks.NewTask(tasks.WAIT), tasks.NewLoadTask(50),
		tasks.NewTask(tasks.TAKEOFF), tasks.NewTask(tasks.AWAY),
	}
}

func TestLandingQueueEmptyBehaviour(t *testing.T) {
	q := NewLandingQueue(NewRegistry())
	if _, ok := q.Peek(); ok {
		t.Error("Peek on empty queue reported an aircraft")
	}
	if _, ok := q.Remove(); ok {
		t.Error("Remove on empty queue reported an aircraft")
	}
	if got := q.InOrder(); len(got) != 0 {
		t.Errorf("InOrder() on empty queue = %v", got)
	}
}

func TestLandingQueuePriorityRules(t *testing.T) {
	registry := NewRegistry()
	q := NewLandingQueue(registry)

	// A: passenger, plenty of fuel. B: declared emergency. C: 15% fuel.
	a := testAircraft(t, "A", "AIRBUS_A320", 27200, 0, landingSeq()...)
	b := testAircraft(t, "B", "BOEING_747_8F", 226117, 0, landingSeq()...)
	b.DeclareEmergency()
	c := testAircraft(t, "C", "AIRBUS_A320", 4080, 0, landingSeq()...)

	for _, ac := range []*aircraft.Aircraft{a, b, c} {
		registry.Add(ac)
		q.Add(ac.Callsign())
	}

	if cs, _ := q.Peek(); cs != "B" {
		t.Errorf("Peek() = %q, want emergency aircraft B", cs)
	}

	want := []types.Callsign{"B", "C", "A"}
	if got := q.InOrder(); !reflect.DeepEqual(got, want) {
		t.Errorf("InOrder() = %v, want %v", got, want)
	}

	// Removal follows the same order.
	for _, wantCS := range want {
		cs, ok := q.Remove()
		if !ok || cs != wantCS {
			t.Fatalf("Remove() = %q, %v, want %q", cs, ok, wantCS)
		}
	}
}

func TestLandingQueuePassengerBeforeFreight(t *testing.T) {
	registry := NewRegistry()
	q := NewLandingQueue(registry)

	freight := testAircraft(t, "F1", "BOEING_747_8F", 226117, 0, landingSeq()...)
	pax := testAircraft(t, "P1", "BOEING_787", 126206, 0, landingSeq()...)
	registry.Add(freight)
	registry.Add(pax)
	q.Add("F1")
	q.Add("P1")

	if cs, _ := q.Peek(); cs != "P1" {
		t.Errorf("Peek() = %q, want passenger aircraft P1 despite later arrival", cs)
	}
}

func TestLandingQueueFIFOWithinTier(t *testing.T) {
	registry := NewRegistry()
	q := NewLandingQueue(registry)

	first := testAircraft(t, "F1", "BOEING_747_8F", 226117, 0, landingSeq()...)
	second := testAircraft(t, "F2", "SIKORSKY_SKYCRANE", 3328, 0, landingSeq()...)
	registry.Add(first)
	registry.Add(second)
	q.Add("F1")
	q.Add("F2")

	if cs, _ := q.Peek(); cs != "F1" {
		t.Errorf("Peek() = %q, want earliest arrival F1", cs)
	}

	// An emergency on the later arrival overtakes.
	second.DeclareEmergency()
	if cs, _ := q.Peek(); cs != "F2" {
		t.Errorf("Peek() = %q, want F2 after it declared an emergency", cs)
	}
	second.ClearEmergency()
	if cs, _ := q.Peek(); cs != "F1" {
		t.Errorf("Peek() = %q, want F1 after emergency cleared", cs)
	}
}

func TestLandingQueueCriticalFuelBoundary(t *testing.T) {
	registry := NewRegistry()
	q := NewLandingQueue(registry)

	// Exactly 20% counts as critically low; just above does not.
	atBoundary := testAircraft(t, "B1", "AIRBUS_A320", 5440, 0, landingSeq()...)
	above := testAircraft(t, "B2", "AIRBUS_A320", 5441, 0, landingSeq()...)
	registry.Add(above)
	registry.Add(atBoundary)
	q.Add("B2")
	q.Add("B1")

	if cs, _ := q.Peek(); cs != "B1" {
		t.Errorf("Peek() = %q, want B1 at exactly 20%% fuel", cs)
	}
}

func TestLandingQueueInOrderDoesNotMutate(t *testing.T) {
	registry := NewRegistry()
	q := NewLandingQueue(registry)

	a := testAircraft(t, "A", "BOEING_747_8F", 226117, 0, landingSeq()...)
	b := testAircraft(t, "B", "AIRBUS_A320", 27200, 0, landingSeq()...)
	registry.Add(a)
	registry.Add(b)
	q.Add("A")
	q.Add("B")

	first := q.InOrder()
	second := q.InOrder()
	if !reflect.DeepEqual(first, second) {
		t.Errorf("consecutive InOrder() calls differ: %v then %v", first, second)
	}
	if q.Len() != 2 || !q.Contains("A") || !q.Contains("B") {
		t.Error("InOrder() mutated the queue")
	}
}
