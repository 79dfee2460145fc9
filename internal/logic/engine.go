package logic

import "sync"

// DefaultCapacity is the reference maximum number of simultaneous occupants.
const DefaultCapacity = 10

// Engine is the bounded occupancy counter.
// All operations are serialized, so a concurrent TryEnter and Reset never
// observe an intermediate count.
type Engine struct {
	mu       sync.Mutex
	capacity int
	count    int
	counts   Counts
}

// NewEngine creates an engine with zero occupancy.
// capacity must be positive.
func NewEngine(capacity int) *Engine {
	if capacity <= 0 {
		panic("logic: capacity must be positive")
	}
	return &Engine{capacity: capacity}
}

// TryEnter admits one occupant if there is room.
// At capacity the count is left unchanged and a REJECTED outcome is returned.
func (e *Engine) TryEnter() Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.count >= e.capacity {
		e.counts.Rejected++
		return e.outcome(OutcomeRejected)
	}
	e.count++
	e.counts.Entered++
	return e.outcome(OutcomeEntered)
}

// TryExit releases one occupant. An exit at zero occupancy is swallowed and
// returns a NOOP outcome.
func (e *Engine) TryExit() Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.count == 0 {
		e.counts.Ignored++
		return e.outcome(OutcomeNoOp)
	}
	e.count--
	e.counts.Exited++
	return e.outcome(OutcomeExited)
}

// Reset sets the count to zero unconditionally.
func (e *Engine) Reset() Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.count = 0
	e.counts.Resets++
	return e.outcome(OutcomeReset)
}

// Count returns the current occupancy.
func (e *Engine) Count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.count
}

// Capacity returns the configured capacity.
func (e *Engine) Capacity() int {
	return e.capacity
}

// CountsSnapshot returns a copy of the outcome counters.
func (e *Engine) CountsSnapshot() Counts {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.counts
}

// caller must hold e.mu
func (e *Engine) outcome(kind OutcomeKind) Outcome {
	return Outcome{Kind: kind, Count: e.count, Capacity: e.capacity}
}

// LevelFor maps a count to its status level.
//
//	count == 0                 -> EMPTY
//	0 < count <= capacity-2    -> AVAILABLE
//	count == capacity-1        -> ALMOST_FULL
//	count >= capacity          -> FULL
func LevelFor(count, capacity int) Level {
	switch {
	case count <= 0:
		return LevelEmpty
	case count >= capacity:
		return LevelFull
	case count <= capacity-2:
		return LevelAvailable
	default:
		return LevelAlmostFull
	}
}
