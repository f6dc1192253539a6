// Package logging wraps zerolog behind the small surface the rest of the
// backend uses.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Logger is a named zerolog logger.
type Logger struct {
	zerolog.Logger
}

// New builds a logger for the given component. Level is one of debug, info,
// warn, error; format is "json" or "console".
func New(component, level, format string) *Logger {
	var out io.Writer = os.Stdout
	if strings.EqualFold(format, "console") {
		out = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	base := zerolog.New(out).Level(lvl).With().
		Timestamp().
		Str("component", component).
		Logger()

	return &Logger{base}
}

// NewDefault returns an info-level JSON logger, used when no configuration
// is available yet.
func NewDefault(component string) *Logger {
	return New(component, "info", "json")
}

// Nop returns a logger that discards everything. Handy in tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// WithError returns an event-scoped logger carrying err.
func (l *Logger) WithError(err error) *Logger {
	return &Logger{l.Logger.With().Err(err).Logger()}
}
