// Package logger builds the zerolog logger shared by the daemon's components.
package logger

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// TimeFormat is RFC3339 with milliseconds.
const TimeFormat = "2006-01-02T15:04:05.000Z07:00"

// New returns a logger writing to out at the given level.
// Console mode writes human-readable lines; otherwise one JSON object per line.
func New(out io.Writer, level zerolog.Level, console bool) zerolog.Logger {
	zerolog.TimeFieldFormat = TimeFormat

	w := out
	if console {
		w = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: TimeFormat,
		}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// ParseLevel parses a level name such as "debug" or "info".
func ParseLevel(s string) (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("parse log level %q: %w", s, err)
	}
	if level == zerolog.NoLevel {
		return zerolog.InfoLevel, nil
	}
	return level, nil
}
