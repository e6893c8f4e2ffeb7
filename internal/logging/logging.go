// Package logging builds the diagnostics logger used across the CLI.
package logging

import (
	"io"

	"github.com/charmbracelet/log"
)

// Prefix is prepended to every diagnostic line.
const Prefix = "todo"

// Options holds configuration for the diagnostics logger.
type Options struct {
	Debug bool
}

// New returns a logger writing to w. Only warnings and errors are
// emitted unless Debug is set.
func New(w io.Writer, opts Options) *log.Logger {
	level := log.WarnLevel
	if opts.Debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:     level,
		Formatter: log.TextFormatter,
		Prefix:    Prefix,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
