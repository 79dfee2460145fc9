// Package status provides a thread-safe status tracker for the occupancy daemon.
// It is read by the heartbeat logger and the simulator's status dump.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/occupancy-sensor/internal/logic"
)

// DefaultHistory is the number of recent outcomes kept.
const DefaultHistory = 32

// Config contains daemon configuration for display.
type Config struct {
	Capacity      int
	DebounceMs    int64
	RejectToneMs  int64
	ResetPulseMs  int64
	ResetWaitMs   int64
	HeartbeatMs   int64
	HistoryLength int
}

// Entry is one recorded outcome.
type Entry struct {
	Time    time.Time
	Outcome logic.Outcome
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type and safe to use after the lock is released.
type Snapshot struct {
	Count        int
	Level        logic.Level
	Counts       logic.Counts
	Bounced      uint64
	RenderSkips  int
	LastOutcome  *Entry
	Recent       []Entry // oldest first
	HistoryDrops bool    // true if older outcomes were overwritten
	StartTime    time.Time
	Now          time.Time
	Config       Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu      sync.RWMutex
	snap    Snapshot
	history *ringBuffer
	now     func() time.Time
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	n := cfg.HistoryLength
	if n <= 0 {
		n = DefaultHistory
	}
	return &Tracker{
		snap: Snapshot{
			Level:     logic.LevelEmpty,
			StartTime: startTime,
			Config:    cfg,
		},
		history: newRingBuffer(n),
		now:     time.Now,
	}
}

// Record stores an outcome together with the engine counters at that time.
// Called by the workers as each outcome is applied, in engine order.
func (t *Tracker) Record(at time.Time, out logic.Outcome, counts logic.Counts) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.snap.Count = out.Count
	t.snap.Level = out.Level()
	t.snap.Counts = counts
	e := Entry{Time: at, Outcome: out}
	t.snap.LastOutcome = &e
	t.history.push(e)
}

// RenderSkipped counts a reset whose text render was skipped.
func (t *Tracker) RenderSkipped() {
	t.mu.Lock()
	t.snap.RenderSkips++
	t.mu.Unlock()
}

// SetBounced sets the number of suppressed edges.
func (t *Tracker) SetBounced(n uint64) {
	t.mu.Lock()
	t.snap.Bounced = n
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	if s.LastOutcome != nil {
		e := *s.LastOutcome
		s.LastOutcome = &e
	}
	s.Recent = t.history.items()
	s.HistoryDrops = t.history.overflow
	t.mu.RUnlock()
	s.Now = t.now()
	return s
}
