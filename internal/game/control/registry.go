package control

import (
	"towersim/internal/game/aircraft"
	"towersim/pkg/types"
)

// Registry is the single owned store of all aircraft under tower management.
// Queues, gates and the loading map refer to aircraft by callsign and resolve
// them here. Iteration order is insertion order.
type Registry struct {
	order []*aircraft.Aircraft
	index map[types.Callsign]*aircraft.Aircraft
}

func NewRegistry() *Registry {
	return &Registry{index: make(map[types.Callsign]*aircraft.Aircraft)}
}

// Add appends an aircraft to the registry.
func (r *Registry) Add(ac *aircraft.Aircraft) {
	r.order = append(r.order, ac)
	r.index[ac.Callsign()] = ac
}

// Get resolves a callsign to its aircraft.
func (r *Registry) Get(callsign types.Callsign) (*aircraft.Aircraft, bool) {
	ac, ok := r.index[callsign]
	return ac, ok
}

// InOrder returns all aircraft in the order they were added. The slice is a
// copy.
func (r *Registry) InOrder() []*aircraft.Aircraft {
	out := make([]*aircraft.Aircraft, len(r.order))
	copy(out, r.order)
	return out
}

func (r *Registry) Len() int {
	return len(r.order)
}
