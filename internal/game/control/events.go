package control

import (
	"time"

	"towersim/pkg/types"
)

// Event is one entry in the tower's operational feed.
type Event struct {
	Timestamp time.Time
	Tick      int64
	Callsign  types.Callsign
	Message   string
}

// EventLog is a bounded feed of tower events, oldest entries dropped first.
type EventLog struct {
	events  []Event
	maxSize int
}

func NewEventLog(maxSize int) *EventLog {
	return &EventLog{maxSize: maxSize}
}

func (l *EventLog) Add(tick int64, callsign types.Callsign, message string) {
	l.events = append(l.events, Event{
		Timestamp: time.Now(),
		Tick:      tick,
		Callsign:  callsign,
		Message:   message,
	})
	if len(l.events) > l.maxSize {
		l.events = l.events[len(l.events)-l.maxSize:]
	}
}

// Recent returns the logged events, oldest first. The slice is a copy.
func (l *EventLog) Recent() []Event {
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}
