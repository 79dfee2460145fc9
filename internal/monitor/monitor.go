// Package monitor owns the shared occupancy context and runs the entry, exit
// and reset workers.
package monitor

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/sweeney/occupancy-sensor/internal/display"
	"github.com/sweeney/occupancy-sensor/internal/edge"
	"github.com/sweeney/occupancy-sensor/internal/logic"
	"github.com/sweeney/occupancy-sensor/internal/render"
	"github.com/sweeney/occupancy-sensor/internal/signal"
	"github.com/sweeney/occupancy-sensor/internal/status"
)

// Config configures a Monitor.
type Config struct {
	Capacity int
	Debounce time.Duration
	Timing   render.Timing
}

// Outputs groups the output drivers.
type Outputs struct {
	Display display.Display
	Light   render.Light
	Tone    render.Tone
}

// Monitor is the explicitly owned context shared by the workers: the engine,
// the per-channel signals, the dispatcher feeding them and the renderer.
type Monitor struct {
	engine     *logic.Engine
	entry      *signal.Counting
	exit       *signal.Counting
	reset      *signal.Binary
	dispatcher *edge.Dispatcher
	renderer   *render.Renderer
	tracker    *status.Tracker
	log        zerolog.Logger
	now        func() time.Time

	// applyMu orders engine updates with their status records.
	applyMu sync.Mutex
}

// New creates a Monitor. tracker may be nil.
func New(cfg Config, out Outputs, tracker *status.Tracker, log zerolog.Logger) *Monitor {
	m := &Monitor{
		engine:  logic.NewEngine(cfg.Capacity),
		entry:   signal.NewCounting(),
		exit:    signal.NewCounting(),
		reset:   signal.NewBinary(),
		tracker: tracker,
		log:     log.With().Str("component", "monitor").Logger(),
		now:     time.Now,
	}
	m.dispatcher = edge.NewDispatcher(logic.NewFilter(cfg.Debounce), m.entry, m.exit, m.reset)
	m.renderer = render.New(out.Display, out.Light, out.Tone, cfg.Timing, log)
	return m
}

// Handler returns the edge callback for input sources.
func (m *Monitor) Handler() edge.Handler {
	return m.dispatcher.Handler()
}

// Dispatcher returns the edge dispatcher.
func (m *Monitor) Dispatcher() *edge.Dispatcher {
	return m.dispatcher
}

// Count returns the current occupancy.
func (m *Monitor) Count() int {
	return m.engine.Count()
}

// Counts returns the outcome counters.
func (m *Monitor) Counts() logic.Counts {
	return m.engine.CountsSnapshot()
}

// Bounced returns the number of suppressed edges.
func (m *Monitor) Bounced() uint64 {
	return m.dispatcher.Bounced()
}

// Run renders the initial empty state and runs the three workers until ctx
// is cancelled. It returns nil on cancellation.
func (m *Monitor) Run(ctx context.Context) error {
	if err := m.renderer.Show(ctx, m.engine.Count(), m.engine.Capacity()); err != nil && ctx.Err() == nil {
		m.log.Warn().Err(err).Msg("initial render failed")
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return m.loop(ctx, "entry", m.entry.Take, m.enter) })
	g.Go(func() error { return m.loop(ctx, "exit", m.exit.Take, m.leave) })
	g.Go(func() error { return m.loop(ctx, "reset", m.reset.Take, m.clear) })

	err := g.Wait()
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

// loop blocks on take and runs one cycle per unit.
func (m *Monitor) loop(ctx context.Context, name string, take func(context.Context) error, cycle func(context.Context)) error {
	m.log.Debug().Str("worker", name).Msg("worker started")
	for {
		if err := take(ctx); err != nil {
			m.log.Debug().Str("worker", name).Msg("worker stopped")
			return err
		}
		cycle(ctx)
	}
}

func (m *Monitor) enter(ctx context.Context) {
	out := m.apply(m.engine.TryEnter)
	if err := m.renderer.Render(ctx, out); err != nil && ctx.Err() == nil {
		m.log.Warn().Err(err).Msg("entry render failed")
	}
}

func (m *Monitor) leave(ctx context.Context) {
	out := m.apply(m.engine.TryExit)
	if err := m.renderer.Render(ctx, out); err != nil && ctx.Err() == nil {
		m.log.Warn().Err(err).Msg("exit render failed")
	}
}

// clear applies the reset before contending for the render lock, so the
// count and light never wait behind an entry or exit render.
func (m *Monitor) clear(ctx context.Context) {
	m.apply(m.engine.Reset)
	if !m.renderer.RenderReset(ctx) && m.tracker != nil {
		m.tracker.RenderSkipped()
	}
}

// apply runs one engine operation and records its outcome.
func (m *Monitor) apply(op func() logic.Outcome) logic.Outcome {
	m.applyMu.Lock()
	defer m.applyMu.Unlock()

	out := op()
	m.logOutcome(out)
	if m.tracker != nil {
		m.tracker.Record(m.now(), out, m.engine.CountsSnapshot())
		m.tracker.SetBounced(m.dispatcher.Bounced())
	}
	return out
}

func (m *Monitor) logOutcome(out logic.Outcome) {
	ev := m.log.Info()
	if out.Kind == logic.OutcomeNoOp {
		ev = m.log.Debug()
	}
	ev.Str("outcome", string(out.Kind)).
		Int("count", out.Count).
		Int("free", out.Free()).
		Str("level", string(out.Level())).
		Msg("occupancy")
}
