// Package config holds the daemon configuration and its sources: built-in
// defaults, an optional env file, OCCUPANCY_* environment variables and
// command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/sweeney/occupancy-sensor/internal/gpio"
	"github.com/sweeney/occupancy-sensor/internal/logic"
	"github.com/sweeney/occupancy-sensor/internal/render"
)

// DefaultEnvFile is read at startup if present.
const DefaultEnvFile = "/etc/occupancy-sensor.env"

// Environment variable names.
const (
	EnvCapacity      = "OCCUPANCY_CAPACITY"
	EnvDebounce      = "OCCUPANCY_DEBOUNCE"
	EnvRejectTone    = "OCCUPANCY_REJECT_TONE"
	EnvResetPulse    = "OCCUPANCY_RESET_PULSE"
	EnvResetLockWait = "OCCUPANCY_RESET_LOCK_WAIT"
	EnvHeartbeat     = "OCCUPANCY_HEARTBEAT"
	EnvChip          = "OCCUPANCY_GPIO_CHIP"
	EnvPinEntry      = "OCCUPANCY_PIN_ENTRY"
	EnvPinExit       = "OCCUPANCY_PIN_EXIT"
	EnvPinReset      = "OCCUPANCY_PIN_RESET"
	EnvPinRed        = "OCCUPANCY_PIN_RED"
	EnvPinGreen      = "OCCUPANCY_PIN_GREEN"
	EnvPinBlue       = "OCCUPANCY_PIN_BLUE"
	EnvPinBuzzer     = "OCCUPANCY_PIN_BUZZER"
	EnvI2CBus        = "OCCUPANCY_I2C_BUS"
	EnvLogLevel      = "OCCUPANCY_LOG_LEVEL"
)

// Config is the complete daemon configuration.
type Config struct {
	Capacity  int
	Debounce  time.Duration
	Timing    render.Timing
	Heartbeat time.Duration // 0 disables

	Chip   string
	Inputs gpio.InputPins
	Light  gpio.LightPins
	Buzzer int
	I2CBus string // "" selects the first bus

	LogLevel string
}

// Default returns the reference configuration.
func Default() Config {
	return Config{
		Capacity:  logic.DefaultCapacity,
		Debounce:  logic.DefaultDebounce,
		Timing:    render.DefaultTiming(),
		Heartbeat: 15 * time.Minute,
		Chip:      gpio.DefaultChip,
		Inputs: gpio.InputPins{
			Entry: gpio.DefaultPinEntry,
			Exit:  gpio.DefaultPinExit,
			Reset: gpio.DefaultPinReset,
		},
		Light: gpio.LightPins{
			Red:   gpio.DefaultPinRed,
			Green: gpio.DefaultPinGreen,
			Blue:  gpio.DefaultPinBlue,
		},
		Buzzer:   gpio.DefaultPinBuzzer,
		LogLevel: "info",
	}
}

// LoadEnvFile loads path into the process environment without overriding
// variables that are already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// Parse builds the configuration from args and getenv. The env file named by
// -env-file is loaded into the process environment first. Flags given in args
// override the environment, which overrides the defaults. The result is
// validated. On error the returned Config is still usable for logging.
func Parse(fs *flag.FlagSet, args []string, getenv func(string) string) (Config, error) {
	parsed := Default()
	envFile := fs.String("env-file", DefaultEnvFile, "Env file with OCCUPANCY_* settings (missing is fine)")
	parsed.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return Default(), err
	}
	if err := LoadEnvFile(*envFile); err != nil {
		return Default(), err
	}

	c := Default()
	if err := c.ApplyEnv(getenv); err != nil {
		return Default(), err
	}

	set := flag.NewFlagSet(fs.Name(), flag.ContinueOnError)
	c.RegisterFlags(set)
	var errs []error
	fs.Visit(func(f *flag.Flag) {
		if set.Lookup(f.Name) == nil {
			return
		}
		if err := set.Set(f.Name, f.Value.String()); err != nil {
			errs = append(errs, fmt.Errorf("-%s: %w", f.Name, err))
		}
	})
	if len(errs) > 0 {
		return Default(), fmt.Errorf("invalid flags: %v", errs)
	}
	return c, c.Validate()
}

// ApplyEnv overrides c with any OCCUPANCY_* values reported by getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	var errs []error
	intVar := func(name string, dst *int) {
		if v := getenv(name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				return
			}
			*dst = n
		}
	}
	durVar := func(name string, dst *time.Duration) {
		if v := getenv(name); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				return
			}
			*dst = d
		}
	}
	strVar := func(name string, dst *string) {
		if v := getenv(name); v != "" {
			*dst = v
		}
	}

	intVar(EnvCapacity, &c.Capacity)
	durVar(EnvDebounce, &c.Debounce)
	durVar(EnvRejectTone, &c.Timing.RejectTone)
	durVar(EnvResetPulse, &c.Timing.ResetPulse)
	durVar(EnvResetLockWait, &c.Timing.ResetLockWait)
	durVar(EnvHeartbeat, &c.Heartbeat)
	strVar(EnvChip, &c.Chip)
	intVar(EnvPinEntry, &c.Inputs.Entry)
	intVar(EnvPinExit, &c.Inputs.Exit)
	intVar(EnvPinReset, &c.Inputs.Reset)
	intVar(EnvPinRed, &c.Light.Red)
	intVar(EnvPinGreen, &c.Light.Green)
	intVar(EnvPinBlue, &c.Light.Blue)
	intVar(EnvPinBuzzer, &c.Buzzer)
	strVar(EnvI2CBus, &c.I2CBus)
	strVar(EnvLogLevel, &c.LogLevel)

	if len(errs) > 0 {
		return fmt.Errorf("invalid environment: %v", errs)
	}
	return nil
}

// RegisterFlags binds c's fields to flags on fs, using the current values as
// defaults. Call after ApplyEnv and before fs.Parse.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.Capacity, "capacity", c.Capacity, "Maximum simultaneous occupants")
	fs.DurationVar(&c.Debounce, "debounce", c.Debounce, "Debounce window per input")
	fs.DurationVar(&c.Timing.RejectTone, "reject-tone", c.Timing.RejectTone, "Tone duration on a rejected entry")
	fs.DurationVar(&c.Timing.ResetPulse, "reset-pulse", c.Timing.ResetPulse, "On/off time of each reset beep")
	fs.DurationVar(&c.Timing.ResetLockWait, "reset-lock-wait", c.Timing.ResetLockWait, "Longest reset waits for the display")
	fs.DurationVar(&c.Heartbeat, "heartbeat", c.Heartbeat, "Heartbeat log interval (0 to disable)")
	fs.StringVar(&c.Chip, "chip", c.Chip, "GPIO chip name")
	fs.IntVar(&c.Inputs.Entry, "pin-entry", c.Inputs.Entry, "BCM pin number for the entry button")
	fs.IntVar(&c.Inputs.Exit, "pin-exit", c.Inputs.Exit, "BCM pin number for the exit button")
	fs.IntVar(&c.Inputs.Reset, "pin-reset", c.Inputs.Reset, "BCM pin number for the reset button")
	fs.IntVar(&c.Light.Red, "pin-red", c.Light.Red, "BCM pin number for the red light")
	fs.IntVar(&c.Light.Green, "pin-green", c.Light.Green, "BCM pin number for the green light")
	fs.IntVar(&c.Light.Blue, "pin-blue", c.Light.Blue, "BCM pin number for the blue light")
	fs.IntVar(&c.Buzzer, "pin-buzzer", c.Buzzer, "BCM pin number for the buzzer")
	fs.StringVar(&c.I2CBus, "i2c-bus", c.I2CBus, `I2C bus for the display ("" for the first)`)
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Log level (debug, info, warn, error)")
}

// Validate reports the first configuration problem found.
func (c Config) Validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("capacity must be positive, got %d", c.Capacity)
	}
	durations := []struct {
		name string
		d    time.Duration
	}{
		{"debounce", c.Debounce},
		{"reject-tone", c.Timing.RejectTone},
		{"reset-pulse", c.Timing.ResetPulse},
		{"reset-lock-wait", c.Timing.ResetLockWait},
	}
	for _, d := range durations {
		if d.d <= 0 {
			return fmt.Errorf("%s must be positive, got %v", d.name, d.d)
		}
	}
	if c.Heartbeat < 0 {
		return fmt.Errorf("heartbeat must not be negative, got %v", c.Heartbeat)
	}

	pins := map[string]int{
		"pin-entry":  c.Inputs.Entry,
		"pin-exit":   c.Inputs.Exit,
		"pin-reset":  c.Inputs.Reset,
		"pin-red":    c.Light.Red,
		"pin-green":  c.Light.Green,
		"pin-blue":   c.Light.Blue,
		"pin-buzzer": c.Buzzer,
	}
	seen := make(map[int]string, len(pins))
	for _, name := range []string{"pin-entry", "pin-exit", "pin-reset", "pin-red", "pin-green", "pin-blue", "pin-buzzer"} {
		p := pins[name]
		if p < 0 {
			return fmt.Errorf("%s must not be negative, got %d", name, p)
		}
		if other, ok := seen[p]; ok {
			return fmt.Errorf("%s and %s both use pin %d", other, name, p)
		}
		seen[p] = name
	}
	return nil
}
