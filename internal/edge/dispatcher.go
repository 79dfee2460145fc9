// Package edge turns raw input edges into worker wake-ups.
//
// The dispatcher runs in edge context (the GPIO event goroutine or the
// simulator's key loop). It only filters and posts signals; every expensive
// step happens later in the workers.
package edge

import (
	"sync/atomic"

	"github.com/sweeney/occupancy-sensor/internal/logic"
)

// Releaser is a signal that can be posted without blocking.
type Releaser interface {
	Give()
}

// Handler is the callback handed to edge sources.
// It carries no access to the renderer or the render lock.
type Handler func(in logic.Input, now logic.Tick)

// Dispatcher classifies edges, debounces them and posts one unit to the
// matching signal per accepted edge.
//
// Calls must be serialized, like interrupts on a single line.
type Dispatcher struct {
	filter  *logic.Filter
	targets [3]Releaser
	bounced atomic.Uint64
}

// NewDispatcher creates a dispatcher posting to the given signals.
func NewDispatcher(filter *logic.Filter, entry, exit, reset Releaser) *Dispatcher {
	return &Dispatcher{
		filter:  filter,
		targets: [3]Releaser{logic.InputEntry: entry, logic.InputExit: exit, logic.InputReset: reset},
	}
}

// Edge handles a single raw edge on in.
func (d *Dispatcher) Edge(in logic.Input, now logic.Tick) {
	if !in.Valid() {
		return
	}
	if !d.filter.Accept(in, now) {
		d.bounced.Add(1)
		return
	}
	d.targets[in].Give()
}

// Dispatch handles several inputs reported by one notification. Each is
// evaluated independently in the order entry, exit, reset.
func (d *Dispatcher) Dispatch(pending Set, now logic.Tick) {
	for _, in := range logic.Inputs {
		if pending.Has(in) {
			d.Edge(in, now)
		}
	}
}

// Handler returns the edge callback for sources.
func (d *Dispatcher) Handler() Handler {
	return d.Edge
}

// Bounced returns the number of edges suppressed by the debounce filter.
func (d *Dispatcher) Bounced() uint64 {
	return d.bounced.Load()
}

// Set is a bitmask of inputs.
type Set uint8

// SetOf builds a set from the given inputs.
func SetOf(ins ...logic.Input) Set {
	var s Set
	for _, in := range ins {
		if in.Valid() {
			s |= 1 << uint(in)
		}
	}
	return s
}

// Has reports whether in is in the set.
func (s Set) Has(in logic.Input) bool {
	return in.Valid() && s&(1<<uint(in)) != 0
}
