// Package signal provides the wake-up primitives that carry accepted edges
// from edge context to the worker goroutines.
//
// Give never blocks and never allocates, so it is safe to call from an edge
// handler. Take blocks until a unit is available or the context ends.
package signal

import (
	"context"
	"sync/atomic"
)

// Counting is a counting signal. Every Give adds one unit; every Take
// consumes one. Units are never lost, however far Give runs ahead of Take.
type Counting struct {
	pending atomic.Int64
	wake    chan struct{}
}

// NewCounting creates a counting signal with no pending units.
func NewCounting() *Counting {
	return &Counting{wake: make(chan struct{}, 1)}
}

// Give adds one unit and wakes a waiting taker.
func (c *Counting) Give() {
	c.pending.Add(1)
	c.notify()
}

// Take consumes one unit, blocking until one is available.
// It returns ctx.Err() if the context ends first.
func (c *Counting) Take(ctx context.Context) error {
	for {
		if c.tryTake() {
			return nil
		}
		select {
		case <-c.wake:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// TryTake consumes one unit if one is pending.
func (c *Counting) TryTake() bool {
	return c.tryTake()
}

// Pending returns the number of units given but not yet taken.
func (c *Counting) Pending() int {
	return int(c.pending.Load())
}

func (c *Counting) tryTake() bool {
	for {
		n := c.pending.Load()
		if n <= 0 {
			return false
		}
		if c.pending.CompareAndSwap(n, n-1) {
			if n > 1 {
				// Units remain; pass the wake-up on to another taker.
				c.notify()
			}
			return true
		}
	}
}

func (c *Counting) notify() {
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

// Binary is a binary signal: any number of Gives before a Take collapse
// into a single unit.
type Binary struct {
	ch chan struct{}
}

// NewBinary creates a binary signal in the cleared state.
func NewBinary() *Binary {
	return &Binary{ch: make(chan struct{}, 1)}
}

// Give sets the signal. Giving an already set signal has no effect.
func (b *Binary) Give() {
	select {
	case b.ch <- struct{}{}:
	default:
	}
}

// Take blocks until the signal is set, then clears it.
// It returns ctx.Err() if the context ends first.
func (b *Binary) Take(ctx context.Context) error {
	select {
	case <-b.ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Pending reports whether the signal is set.
func (b *Binary) Pending() bool {
	return len(b.ch) > 0
}
