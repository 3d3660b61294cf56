package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// zerologLogger adapts rs/zerolog to the core Logger interface. Every line
// carries the component that emitted it so interleaved fetch and training
// output stays attributable.
type zerologLogger struct {
	log zerolog.Logger
}

// NewZerologLogger creates a component-tagged logger. Output is pretty
// console text when CYCLECAST_ENV=dev and JSON lines otherwise.
func NewZerologLogger(component string) Logger {
	z := zerolog.New(output()).With().Timestamp().Str("component", component).Logger()
	return &zerologLogger{log: z}
}

func output() io.Writer {
	if strings.ToLower(os.Getenv("CYCLECAST_ENV")) == "dev" {
		return zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	return os.Stdout
}

// SetLevel applies the configured verbosity process-wide, so the level from
// the logging config section reaches every component logger.
func SetLevel(level string) error {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("parse log level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(lvl)
	return nil
}

func (l *zerologLogger) Debugf(format string, args ...any) {
	l.log.Debug().Msgf(format, args...)
}

func (l *zerologLogger) Debugw(msg string, fields map[string]any) {
	l.log.Debug().Fields(fields).Msg(msg)
}

func (l *zerologLogger) Infof(format string, args ...any) {
	l.log.Info().Msgf(format, args...)
}

func (l *zerologLogger) Warnf(format string, args ...any) {
	l.log.Warn().Msgf(format, args...)
}

func (l *zerologLogger) Errorf(format string, args ...any) {
	l.log.Error().Msgf(format, args...)
}
