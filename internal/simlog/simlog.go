// Package simlog provides the three-level debug verbosity of the original
// jobsim tool (none/trace/full) on top of zerolog, so the kernel and pool
// can emit structured, purely observational trace output without ever
// affecting simulation determinism.
package simlog

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Level mirrors debug_config.py's DEBUG_LEVEL: none disables all output,
// trace enables coarse event/handler tracing, full additionally enables
// per-transition worker and job bookkeeping.
type Level string

const (
	LevelNone  Level = "none"
	LevelTrace Level = "trace"
	LevelFull  Level = "full"
)

// ParseLevel validates a CLI-supplied debug level string.
func ParseLevel(s string) (Level, bool) {
	switch Level(s) {
	case LevelNone, LevelTrace, LevelFull:
		return Level(s), true
	case "":
		return LevelNone, true
	default:
		return LevelNone, false
	}
}

// New builds a zerolog.Logger configured for the given level, writing to w.
// At LevelNone the returned logger is zerolog.Nop() so call sites pay no
// cost beyond a disabled-level check.
func New(level Level, w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	switch level {
	case LevelTrace:
		return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	case LevelFull:
		return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	default:
		return zerolog.Nop()
	}
}

// Trace logs a trace-level (coarse) event if the logger is enabled for it.
func Trace(l zerolog.Logger, msg string) {
	l.Info().Msg(msg)
}

// Full logs a full-level (fine-grained) event if the logger is enabled for it.
func Full(l zerolog.Logger, msg string) {
	l.Debug().Msg(msg)
}
