// Command occupancy-sensor counts people through entry and exit buttons and
// shows the free places on an OLED display and a status light.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/sweeney/occupancy-sensor/internal/config"
	"github.com/sweeney/occupancy-sensor/internal/display"
	"github.com/sweeney/occupancy-sensor/internal/gpio"
	"github.com/sweeney/occupancy-sensor/internal/logger"
	"github.com/sweeney/occupancy-sensor/internal/monitor"
	"github.com/sweeney/occupancy-sensor/internal/status"
)

func main() {
	cfg, err := config.Parse(flag.CommandLine, os.Args[1:], os.Getenv)
	log := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("fatal")
	}
}

func newLogger(levelName string) zerolog.Logger {
	level, err := logger.ParseLevel(levelName)
	log := logger.New(os.Stderr, level, isatty.IsTerminal(os.Stderr.Fd()))
	if err != nil {
		log.Warn().Err(err).Msg("using info level")
	}
	return log
}

func run(cfg config.Config, log zerolog.Logger) error {
	light, err := gpio.NewRealLight(cfg.Chip, cfg.Light)
	if err != nil {
		return fmt.Errorf("init light: %w", err)
	}
	defer closeLogged(log, "light", light)

	buzzer, err := gpio.NewRealBuzzer(cfg.Chip, cfg.Buzzer)
	if err != nil {
		return fmt.Errorf("init buzzer: %w", err)
	}
	defer closeLogged(log, "buzzer", buzzer)

	disp, err := display.OpenSSD1306(cfg.I2CBus)
	if err != nil {
		return fmt.Errorf("init display: %w", err)
	}
	defer closeLogged(log, "display", disp)

	tracker := status.NewTracker(time.Now(), statusConfig(cfg))
	mon := monitor.New(monitor.Config{
		Capacity: cfg.Capacity,
		Debounce: cfg.Debounce,
		Timing:   cfg.Timing,
	}, monitor.Outputs{Display: disp, Light: light, Tone: buzzer}, tracker, log)

	// Edges may arrive as soon as the lines are requested; the signals hold
	// them until the workers start.
	inputs, err := gpio.NewRealInputs(cfg.Chip, cfg.Inputs, mon.Dispatcher().Edge)
	if err != nil {
		return fmt.Errorf("init inputs: %w", err)
	}
	defer closeLogged(log, "inputs", inputs)

	log.Info().
		Int("capacity", cfg.Capacity).
		Dur("debounce", cfg.Debounce).
		Dur("heartbeat", cfg.Heartbeat).
		Str("chip", cfg.Chip).
		Msg("started")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var heartbeat <-chan time.Time
	if cfg.Heartbeat > 0 {
		ticker := time.NewTicker(cfg.Heartbeat)
		defer ticker.Stop()
		heartbeat = ticker.C
	}

	return runLoop(ctx, mon, tracker, heartbeat, log)
}

// runner is the part of the monitor the loop drives.
type runner interface {
	Run(ctx context.Context) error
}

// runLoop runs the workers until ctx ends, logging a heartbeat on every tick.
// It returns once the workers have stopped.
func runLoop(ctx context.Context, r runner, tracker *status.Tracker, heartbeat <-chan time.Time, log zerolog.Logger) error {
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	for {
		select {
		case err := <-done:
			if err != nil {
				return fmt.Errorf("workers: %w", err)
			}
			logSnapshot(log, "shutting down", tracker.Snapshot())
			return nil

		case <-heartbeat:
			logSnapshot(log, "heartbeat", tracker.Snapshot())
		}
	}
}

func logSnapshot(log zerolog.Logger, msg string, snap status.Snapshot) {
	log.Info().
		Int("count", snap.Count).
		Str("level", string(snap.Level)).
		Int("entered", snap.Counts.Entered).
		Int("rejected", snap.Counts.Rejected).
		Int("exited", snap.Counts.Exited).
		Int("ignored", snap.Counts.Ignored).
		Int("resets", snap.Counts.Resets).
		Uint64("bounced", snap.Bounced).
		Int("render_skips", snap.RenderSkips).
		Dur("uptime", snap.Uptime()).
		Msg(msg)
}

func statusConfig(cfg config.Config) status.Config {
	return status.Config{
		Capacity:     cfg.Capacity,
		DebounceMs:   cfg.Debounce.Milliseconds(),
		RejectToneMs: cfg.Timing.RejectTone.Milliseconds(),
		ResetPulseMs: cfg.Timing.ResetPulse.Milliseconds(),
		ResetWaitMs:  cfg.Timing.ResetLockWait.Milliseconds(),
		HeartbeatMs:  cfg.Heartbeat.Milliseconds(),
	}
}

func closeLogged(log zerolog.Logger, name string, c io.Closer) {
	if err := c.Close(); err != nil {
		log.Warn().Err(err).Str("driver", name).Msg("close failed")
	}
}
