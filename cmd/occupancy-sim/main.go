// Command occupancy-sim runs the occupancy counter on a terminal, with keys in
// place of the buttons and text lines in place of the display, light and
// buzzer.
//
//	e  entry      x  exit      r  reset
//	s  status     q  quit (also Esc, Ctrl-C)
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eiannone/keyboard"
	"github.com/rs/zerolog"

	"github.com/sweeney/occupancy-sensor/internal/config"
	"github.com/sweeney/occupancy-sensor/internal/console"
	"github.com/sweeney/occupancy-sensor/internal/edge"
	"github.com/sweeney/occupancy-sensor/internal/logger"
	"github.com/sweeney/occupancy-sensor/internal/logic"
	"github.com/sweeney/occupancy-sensor/internal/monitor"
	"github.com/sweeney/occupancy-sensor/internal/status"
)

const help = "keys: e=entry x=exit r=reset s=status q=quit"

func main() {
	bell := flag.Bool("bell", false, "Ring the terminal bell for buzzer tones")
	cfg, err := config.Parse(flag.CommandLine, os.Args[1:], os.Getenv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, *bell); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, bell bool) error {
	keys, err := keyboard.GetKeys(16)
	if err != nil {
		return fmt.Errorf("open keyboard: %w", err)
	}
	defer keyboard.Close()

	term := console.NewTerminal(os.Stdout)
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := logger.New(term, level, true)

	buzzer := console.NewBuzzer(term)
	buzzer.Bell = bell
	tracker := status.NewTracker(time.Now(), status.Config{
		Capacity:     cfg.Capacity,
		DebounceMs:   cfg.Debounce.Milliseconds(),
		RejectToneMs: cfg.Timing.RejectTone.Milliseconds(),
		ResetPulseMs: cfg.Timing.ResetPulse.Milliseconds(),
		ResetWaitMs:  cfg.Timing.ResetLockWait.Milliseconds(),
	})
	mon := monitor.New(monitor.Config{
		Capacity: cfg.Capacity,
		Debounce: cfg.Debounce,
		Timing:   cfg.Timing,
	}, monitor.Outputs{
		Display: console.NewDisplay(term),
		Light:   console.NewLight(term),
		Tone:    buzzer,
	}, tracker, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- mon.Run(ctx) }()

	term.Printf("%s", help)
	err = keyLoop(ctx, keys, mon.Handler(), newClock(time.Now, cfg.Debounce), tracker, term)
	cancel()
	if runErr := <-done; runErr != nil && err == nil {
		err = runErr
	}
	log.Info().Int("count", mon.Count()).Msg("simulator stopped")
	return err
}

// newClock returns the tick source for key presses. Ticks start one debounce
// window past zero so the first press is not taken for a bounce of the
// filter's initial state.
func newClock(now func() time.Time, window time.Duration) func() logic.Tick {
	start := now()
	offset := logic.TickOf(window)
	return func() logic.Tick {
		return offset + logic.TickOf(now().Sub(start))
	}
}

// keyLoop turns key events into edges until quit, ctx ends or keys closes.
func keyLoop(ctx context.Context, keys <-chan keyboard.KeyEvent, handle edge.Handler, clock func() logic.Tick, tracker *status.Tracker, term *console.Terminal) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-keys:
			if !ok {
				return nil
			}
			if ev.Err != nil {
				return fmt.Errorf("read keyboard: %w", ev.Err)
			}
			if ev.Key == keyboard.KeyEsc || ev.Key == keyboard.KeyCtrlC {
				return nil
			}

			switch ev.Rune {
			case 'e', 'E':
				handle(logic.InputEntry, clock())
			case 'x', 'X':
				handle(logic.InputExit, clock())
			case 'r', 'R':
				handle(logic.InputReset, clock())
			case 's', 'S':
				term.Write(append(status.FormatJSON(tracker.Snapshot()), '\n'))
			case 'q', 'Q':
				return nil
			case 0:
			default:
				term.Printf("%s", help)
			}
		}
	}
}
