package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/sweeney/occupancy-sensor/internal/config"
	"github.com/sweeney/occupancy-sensor/internal/display"
	"github.com/sweeney/occupancy-sensor/internal/gpio"
	"github.com/sweeney/occupancy-sensor/internal/logic"
	"github.com/sweeney/occupancy-sensor/internal/monitor"
	"github.com/sweeney/occupancy-sensor/internal/status"
)

type stubRunner struct {
	err error
}

func (s stubRunner) Run(ctx context.Context) error {
	<-ctx.Done()
	return s.err
}

func newTestLogger(buf *bytes.Buffer) zerolog.Logger {
	return zerolog.New(buf)
}

func TestRunLoopHeartbeat(t *testing.T) {
	var buf bytes.Buffer
	tracker := status.NewTracker(time.Now(), status.Config{Capacity: 10})
	tracker.Record(time.Now(), logic.Outcome{Kind: logic.OutcomeEntered, Count: 3, Capacity: 10}, logic.Counts{Entered: 3})

	ctx, cancel := context.WithCancel(context.Background())
	tick := make(chan time.Time)
	done := make(chan error, 1)
	go func() { done <- runLoop(ctx, stubRunner{}, tracker, tick, newTestLogger(&buf)) }()

	tick <- time.Now()
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `"message":"heartbeat"`) {
		t.Errorf("expected heartbeat log, got %s", out)
	}
	if !strings.Contains(out, `"count":3`) || !strings.Contains(out, `"entered":3`) {
		t.Errorf("heartbeat should carry the snapshot, got %s", out)
	}
	if !strings.Contains(out, `"message":"shutting down"`) {
		t.Errorf("expected shutdown log, got %s", out)
	}
}

func TestRunLoopNoHeartbeat(t *testing.T) {
	var buf bytes.Buffer
	tracker := status.NewTracker(time.Now(), status.Config{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := runLoop(ctx, stubRunner{}, tracker, nil, newTestLogger(&buf)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(buf.String(), "heartbeat") {
		t.Error("nil heartbeat channel should never fire")
	}
}

func TestRunLoopWorkerError(t *testing.T) {
	var buf bytes.Buffer
	tracker := status.NewTracker(time.Now(), status.Config{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := runLoop(ctx, stubRunner{err: errors.New("boom")}, tracker, nil, newTestLogger(&buf))
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("expected worker error, got %v", err)
	}
}

func TestRunLoopWithMonitor(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Default()
	cfg.Timing.RejectTone = time.Millisecond
	cfg.Timing.ResetPulse = time.Millisecond

	disp := display.NewFake()
	light := gpio.NewFakeLight()
	buzzer := gpio.NewFakeBuzzer()
	tracker := status.NewTracker(time.Now(), statusConfig(cfg))
	mon := monitor.New(monitor.Config{
		Capacity: cfg.Capacity,
		Debounce: cfg.Debounce,
		Timing:   cfg.Timing,
	}, monitor.Outputs{Display: disp, Light: light, Tone: buzzer}, tracker, zerolog.Nop())
	inputs := gpio.NewFakeInputs(mon.Dispatcher().Edge)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runLoop(ctx, mon, tracker, nil, newTestLogger(&buf)) }()

	waitFor := func(cond func(status.Snapshot) bool) {
		t.Helper()
		deadline := time.Now().Add(2 * time.Second)
		for !cond(tracker.Snapshot()) {
			if time.Now().After(deadline) {
				t.Fatal("timed out waiting for outcomes")
			}
			time.Sleep(time.Millisecond)
		}
	}

	inputs.Press(logic.InputEntry, 300)
	inputs.Press(logic.InputEntry, 600)
	waitFor(func(s status.Snapshot) bool { return s.Counts.Entered == 2 })
	inputs.Press(logic.InputExit, 900)
	waitFor(func(s status.Snapshot) bool { return s.Counts.Exited == 1 })
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if mon.Count() != 1 {
		t.Errorf("count: got %d, want 1", mon.Count())
	}
	if !strings.Contains(buf.String(), `"count":1`) {
		t.Errorf("shutdown log should carry the final count, got %s", buf.String())
	}
}

func TestStatusConfig(t *testing.T) {
	cfg := config.Default()
	sc := statusConfig(cfg)

	if sc.Capacity != 10 || sc.DebounceMs != 200 || sc.RejectToneMs != 500 ||
		sc.ResetPulseMs != 100 || sc.ResetWaitMs != 100 || sc.HeartbeatMs != 15*60*1000 {
		t.Errorf("unexpected status config: %+v", sc)
	}
}

type errCloser struct{}

func (errCloser) Close() error { return errors.New("busy") }

func TestCloseLogged(t *testing.T) {
	var buf bytes.Buffer
	closeLogged(newTestLogger(&buf), "display", errCloser{})

	if !strings.Contains(buf.String(), `"driver":"display"`) || !strings.Contains(buf.String(), "busy") {
		t.Errorf("expected close failure logged, got %s", buf.String())
	}
}
