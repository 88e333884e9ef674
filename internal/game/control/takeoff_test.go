package control

import (
	"reflect"
	"testing"

	"towersim/pkg/types"
)

func TestTakeoffQueueFIFO(t *testing.T) {
	q := NewTakeoffQueue()

	if _, ok := q.Peek(); ok {
		t.Error("Peek on empty queue reported an aircraft")
	}
	if _, ok := q.Remove(); ok {
		t.Error("Remove on empty queue reported an aircraft")
	}

	q.Add("A")
	q.Add("B")
	q.Add("C")

	if cs, ok := q.Peek(); !ok || cs != "A" {
		t.Errorf("Peek() = %q, %v, want A", cs, ok)
	}
	for _, want := range []types.Callsign{"A", "B", "C"} {
		cs, ok := q.Remove()
		if !ok || cs != want {
			t.Fatalf("Remove() = %q, %v, want %q", cs, ok, want)
		}
	}
	if q.Len() != 0 {
		t.Errorf("Len() = %d after draining", q.Len())
	}
}

func TestTakeoffQueueInOrderIsInsertionOrder(t *testing.T) {
	q := NewTakeoffQueue()
	q.Add("QFA481")
	q.Add("UTD302")
	q.Add("UPS119")

	want := []types.Callsign{"QFA481", "UTD302", "UPS119"}
	if got := q.InOrder(); !reflect.DeepEqual(got, want) {
		t.Errorf("InOrder() = %v, want %v", got, want)
	}

	// The returned slice is a copy.
	in := q.InOrder()
	in[0] = "MUTATED"
	if got, _ := q.Peek(); got != "QFA481" {
		t.Errorf("mutating InOrder result changed the queue: Peek() = %q", got)
	}
}

func TestTakeoffQueueContains(t *testing.T) {
	q := NewTakeoffQueue()
	q.Add("QFA481")
	if !q.Contains("QFA481") {
		t.Error("Contains(QFA481) = false")
	}
	if q.Contains("UTD302") {
		t.Error("Contains(UTD302) = true for absent aircraft")
	}
}

func TestFormatQueue(t *testing.T) {
	q := NewTakeoffQueue()
	if got := FormatQueue(q); got != "TakeoffQueue []" {
		t.Errorf("FormatQueue(empty) = %q", got)
	}
	q.Add("ABC123")
	q.Add("XYZ987")
	if got := FormatQueue(q); got != "TakeoffQueue [ABC123, XYZ987]" {
		t.Errorf("FormatQueue() = %q", got)
	}
}

func TestEncodeQueue(t *testing.T) {
	q := NewTakeoffQueue()
	if got := EncodeQueue(q); got != "TakeoffQueue:0" {
		t.Errorf("EncodeQueue(empty) = %q", got)
	}
	q.Add("ABC123")
	q.Add("XYZ987")
	if got := EncodeQueue(q); got != "TakeoffQueue:2\nABC123,XYZ987" {
		t.Errorf("EncodeQueue() = %q", got)
	}
}
