// Package logging builds the zerolog logger used by the evmauth CLI.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// Format selects the log encoding.
type Format string

const (
	// FormatAuto uses a console writer on a terminal and JSON otherwise.
	FormatAuto    Format = "auto"
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
)

// New creates a logger writing to stderr.
//
// Log levels are set as follows:
//   - verbose=true: Debug level
//   - quiet=true: Warn level
//   - default: Info level
func New(verbose, quiet bool, format Format) zerolog.Logger {
	return NewWithWriter(verbose, quiet, selectOutput(format, os.Stderr))
}

// NewWithWriter creates a logger writing to w as-is.
func NewWithWriter(verbose, quiet bool, w io.Writer) zerolog.Logger {
	return zerolog.New(w).Level(selectLevel(verbose, quiet)).With().Timestamp().Logger()
}

func selectLevel(verbose, quiet bool) zerolog.Level {
	switch {
	case verbose:
		return zerolog.DebugLevel
	case quiet:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

// selectOutput wraps out in a console writer when requested, or when out is a
// terminal and NO_COLOR is unset.
func selectOutput(format Format, out *os.File) io.Writer {
	switch format {
	case FormatJSON:
		return out
	case FormatConsole:
		return zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	if term.IsTerminal(int(out.Fd())) && os.Getenv("NO_COLOR") == "" {
		return zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}
	return out
}
