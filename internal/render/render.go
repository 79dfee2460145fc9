// Package render serializes every update of the output surface (display
// text, status light and buzzer) behind a single render lock.
package render

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"github.com/sweeney/occupancy-sensor/internal/display"
	"github.com/sweeney/occupancy-sensor/internal/logic"
)

// Default alert timing.
const (
	DefaultRejectTone    = 500 * time.Millisecond
	DefaultResetPulse    = 100 * time.Millisecond
	DefaultResetLockWait = 100 * time.Millisecond
)

// Status layout.
const (
	MsgFull  = "LOTADO"
	MsgReset = "Resetado!"
)

// Light sets the status light.
type Light interface {
	Set(level logic.Level) error
}

// Tone switches the buzzer.
type Tone interface {
	ToneOn() error
	ToneOff() error
}

// Timing holds the alert durations and the reset path's lock wait.
type Timing struct {
	RejectTone    time.Duration // single sustained tone on a rejected entry
	ResetPulse    time.Duration // on and off time of each reset pulse
	ResetLockWait time.Duration // longest the reset path waits for the lock
}

// DefaultTiming returns the reference timing.
func DefaultTiming() Timing {
	return Timing{
		RejectTone:    DefaultRejectTone,
		ResetPulse:    DefaultResetPulse,
		ResetLockWait: DefaultResetLockWait,
	}
}

// Renderer owns the render lock and the output drivers.
type Renderer struct {
	lock    *semaphore.Weighted
	display display.Display
	light   Light
	tone    Tone
	timing  Timing
	log     zerolog.Logger

	// sleep is the alert busy-wait; replaced in tests.
	sleep func(time.Duration)
}

// New creates a Renderer.
func New(d display.Display, light Light, tone Tone, timing Timing, log zerolog.Logger) *Renderer {
	return &Renderer{
		lock:    semaphore.NewWeighted(1),
		display: d,
		light:   light,
		tone:    tone,
		timing:  timing,
		log:     log.With().Str("component", "render").Logger(),
		sleep:   time.Sleep,
	}
}

// Render updates the outputs for an entry or exit outcome.
// A rejected entry shows MsgFull and sounds the reject tone while the lock
// is held. A NOOP outcome renders nothing.
// Render blocks until the lock is free or ctx ends.
func (r *Renderer) Render(ctx context.Context, out logic.Outcome) error {
	if out.Kind == logic.OutcomeNoOp {
		return nil
	}
	if err := r.lock.Acquire(ctx, 1); err != nil {
		return err
	}
	defer r.lock.Release(1)

	r.setLight(out.Level())

	if out.Kind != logic.OutcomeRejected {
		return r.drawCounts(out.Count, out.Free())
	}

	r.display.Clear()
	r.display.DrawText(MsgFull, 35, 30)
	err := r.display.Flush()
	if err != nil {
		r.log.Warn().Err(err).Str("outcome", string(out.Kind)).Msg("display flush failed")
	}
	r.beep(1, r.timing.RejectTone, 0)
	return err
}

// Show renders count without an outcome, e.g. the startup screen.
func (r *Renderer) Show(ctx context.Context, count, capacity int) error {
	if err := r.lock.Acquire(ctx, 1); err != nil {
		return err
	}
	defer r.lock.Release(1)

	r.setLight(logic.LevelFor(count, capacity))
	return r.drawCounts(count, capacity-count)
}

// caller must hold the lock
func (r *Renderer) drawCounts(count, free int) error {
	r.display.Clear()
	r.display.DrawText(fmt.Sprintf("Vagas: %d", free), 5, 20)
	r.display.DrawText(fmt.Sprintf("Ocupado: %d", count), 5, 44)
	if err := r.display.Flush(); err != nil {
		r.log.Warn().Err(err).Int("count", count).Msg("display flush failed")
		return err
	}
	return nil
}

// RenderReset shows the reset confirmation with a double beep.
// If the lock cannot be taken within the reset lock wait, the light is still
// set to EMPTY but the text is skipped and RenderReset returns false.
func (r *Renderer) RenderReset(ctx context.Context) bool {
	wait, cancel := context.WithTimeout(ctx, r.timing.ResetLockWait)
	defer cancel()

	if err := r.lock.Acquire(wait, 1); err != nil {
		r.setLight(logic.LevelEmpty)
		r.log.Warn().Dur("waited", r.timing.ResetLockWait).Msg("render lock busy, reset text skipped")
		return false
	}
	defer r.lock.Release(1)

	r.display.Clear()
	r.display.DrawText(MsgReset, 5, 19)
	r.display.DrawText("Ocupado: 0", 5, 44)
	if err := r.display.Flush(); err != nil {
		r.log.Warn().Err(err).Str("outcome", string(logic.OutcomeReset)).Msg("display flush failed")
	}

	r.beep(2, r.timing.ResetPulse, r.timing.ResetPulse)
	r.setLight(logic.LevelEmpty)
	return true
}

// caller must hold the lock
func (r *Renderer) beep(pulses int, on, off time.Duration) {
	for i := 0; i < pulses; i++ {
		if err := r.tone.ToneOn(); err != nil {
			r.log.Warn().Err(err).Msg("tone on failed")
		}
		r.sleep(on)
		if err := r.tone.ToneOff(); err != nil {
			r.log.Warn().Err(err).Msg("tone off failed")
		}
		if off > 0 {
			r.sleep(off)
		}
	}
}

func (r *Renderer) setLight(level logic.Level) {
	if err := r.light.Set(level); err != nil {
		r.log.Warn().Err(err).Str("level", string(level)).Msg("light update failed")
	}
}
