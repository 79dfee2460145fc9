// Package logic contains the pure occupancy logic: debounce, the bounded
// counter and the status level mapping.
// This package has NO hardware dependencies (no GPIO, display, OS, or time.Sleep).
// Time is always injectable as a Tick parameter.
package logic

import "time"

// Input identifies one of the monitored inputs.
type Input int

const (
	InputEntry Input = iota
	InputExit
	InputReset

	numInputs
)

// Inputs lists the monitored inputs in dispatch order.
var Inputs = [numInputs]Input{InputEntry, InputExit, InputReset}

func (in Input) String() string {
	switch in {
	case InputEntry:
		return "ENTRY"
	case InputExit:
		return "EXIT"
	case InputReset:
		return "RESET"
	}
	return "UNKNOWN"
}

// Valid reports whether in is one of the monitored inputs.
func (in Input) Valid() bool {
	return in >= 0 && in < numInputs
}

// Tick is a wrapping millisecond timestamp from a monotonic clock.
// Differences must always be taken with unsigned subtraction.
type Tick uint32

// TickOf converts a monotonic offset (e.g. time since boot) to a Tick.
// Values beyond 2^32 ms wrap.
func TickOf(d time.Duration) Tick {
	return Tick(uint64(d.Milliseconds()))
}

// Level is the status level derived from the occupancy count.
type Level string

const (
	LevelEmpty      Level = "EMPTY"
	LevelAvailable  Level = "AVAILABLE"
	LevelAlmostFull Level = "ALMOST_FULL"
	LevelFull       Level = "FULL"
)

// OutcomeKind is the result category of an engine operation.
type OutcomeKind string

const (
	OutcomeEntered  OutcomeKind = "ENTERED"
	OutcomeRejected OutcomeKind = "REJECTED"
	OutcomeExited   OutcomeKind = "EXITED"
	OutcomeNoOp     OutcomeKind = "NOOP"
	OutcomeReset    OutcomeKind = "RESET"
)

// Outcome is returned by every engine operation.
type Outcome struct {
	Kind     OutcomeKind
	Count    int // count after the operation
	Capacity int
}

// Level returns the status level for the outcome's count.
func (o Outcome) Level() Level {
	return LevelFor(o.Count, o.Capacity)
}

// Free returns the number of free places after the operation.
func (o Outcome) Free() int {
	return o.Capacity - o.Count
}

// Counts tracks the number of each outcome since startup.
type Counts struct {
	Entered  int
	Rejected int
	Exited   int
	Ignored  int // exits at zero occupancy
	Resets   int
}
