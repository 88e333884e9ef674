package control

import "towersim/pkg/types"

// TakeoffQueue is a first-in-first-out queue of aircraft waiting to take off.
// An aircraft that has waited longer always departs first.
type TakeoffQueue struct {
	queue []types.Callsign
}

func NewTakeoffQueue() *TakeoffQueue {
	return &TakeoffQueue{}
}

func (q *TakeoffQueue) Add(callsign types.Callsign) {
	q.queue = append(q.queue, callsign)
}

func (q *TakeoffQueue) Peek() (types.Callsign, bool) {
	if len(q.queue) == 0 {
		return "", false
	}
	return q.queue[0], true
}

func (q *TakeoffQueue) Remove() (types.Callsign, bool) {
	if len(q.queue) == 0 {
		return "", false
	}
	front := q.queue[0]
	q.queue = append(q.queue[:0:0], q.queue[1:]...)
	return front, true
}

func (q *TakeoffQueue) InOrder() []types.Callsign {
	out := make([]types.Callsign, len(q.queue))
	copy(out, q.queue)
	return out
}

func (q *TakeoffQueue) Contains(callsign types.Callsign) bool {
	for _, cs := range q.queue {
		if cs == callsign {
			return true
		}
	}
	return false
}

func (q *TakeoffQueue) Len() int {
	return len(q.queue)
}

func (q *TakeoffQueue) TypeName() string {
	return "TakeoffQueue"
}

func (q *TakeoffQueue) String() string {
	return FormatQueue(q)
}
