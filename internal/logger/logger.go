// Package logger builds the structured diagnostics logger shared by the
// command layer and library components. User-facing output does not go
// through it.
package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Options selects the log level. Quiet wins over Debug, Debug over Verbose.
type Options struct {
	Verbose bool
	Debug   bool
	Quiet   bool
	// Output defaults to os.Stderr.
	Output io.Writer
}

// New returns a text-formatted logger writing to stderr.
func New(opts Options) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	log.SetOutput(out)

	switch {
	case opts.Quiet:
		log.SetLevel(logrus.ErrorLevel)
	case opts.Debug:
		log.SetLevel(logrus.DebugLevel)
	case opts.Verbose:
		log.SetLevel(logrus.InfoLevel)
	default:
		log.SetLevel(logrus.WarnLevel)
	}
	return log
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// OrDiscard returns log, or a discarding logger if log is nil.
func OrDiscard(log *logrus.Logger) *logrus.Logger {
	if log == nil {
		return Discard()
	}
	return log
}
