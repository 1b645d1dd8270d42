// Package logging adapts zerolog to the calculation engine's logger
// interface. The CLI wires this in; library callers default to a no-op.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// ZerologAdapter implements calculation.Logger on top of zerolog.
type ZerologAdapter struct {
	log zerolog.Logger
}

// New builds a console-writer adapter on stderr. Verbose enables debug-level
// output; otherwise debug lines are suppressed.
func New(verbose bool) *ZerologAdapter {
	return NewWithWriter(os.Stderr, verbose)
}

// NewWithWriter builds an adapter writing human-readable output to w.
func NewWithWriter(w io.Writer, verbose bool) *ZerologAdapter {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	console := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	return &ZerologAdapter{
		log: zerolog.New(console).Level(level).With().Timestamp().Logger(),
	}
}

func (z *ZerologAdapter) Debugf(format string, args ...any) {
	z.log.Debug().Msgf(format, args...)
}

func (z *ZerologAdapter) Infof(format string, args ...any) {
	z.log.Info().Msgf(format, args...)
}

func (z *ZerologAdapter) Warnf(format string, args ...any) {
	z.log.Warn().Msgf(format, args...)
}

func (z *ZerologAdapter) Errorf(format string, args ...any) {
	z.log.Error().Msgf(format, args...)
}
