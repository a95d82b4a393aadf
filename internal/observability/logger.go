// Package observability provides structured logging and Prometheus metrics
// for the key manager and CLI.
package observability

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog for structured logging. Keys are only ever logged as
// fingerprints.
type Logger struct {
	logger zerolog.Logger
}

// NewLogger creates a new structured logger writing JSON lines to output.
func NewLogger(service, version string, output io.Writer) *Logger {
	if output == nil {
		output = os.Stderr
	}

	zerolog.TimeFieldFormat = time.RFC3339

	logger := zerolog.New(output).With().
		Timestamp().
		Str("service", service).
		Str("version", version).
		Logger()

	return &Logger{logger: logger}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{logger: zerolog.Nop()}
}

// SetLevel parses level ("debug", "info", ...) and applies it.
func (l *Logger) SetLevel(level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return err
	}
	l.logger = l.logger.Level(lvl)
	return nil
}

// WithContact adds contact_id context to logger.
func (l *Logger) WithContact(contactID string) *Logger {
	return &Logger{logger: l.logger.With().Str("contact_id", contactID).Logger()}
}

// WithTransport adds transport_id context to logger.
func (l *Logger) WithTransport(transportID string) *Logger {
	return &Logger{logger: l.logger.With().Str("transport_id", transportID).Logger()}
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string) {
	l.logger.Debug().Msg(msg)
}

// Info logs an info message.
func (l *Logger) Info(msg string) {
	l.logger.Info().Msg(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.logger.Warn().Msg(msg)
}

// Error logs an error message.
func (l *Logger) Error(err error, msg string) {
	l.logger.Error().Err(err).Msg(msg)
}

// KeySetAdded logs creation of a key set.
func (l *Logger) KeySetAdded(keySetID string, static bool, timePeriod int64, outTagFingerprint string) {
	l.logger.Info().
		Str("key_set_id", keySetID).
		Bool("static", static).
		Int64("time_period", timePeriod).
		Str("out_tag_fp", outTagFingerprint).
		Msg("key set added")
}

// KeysRotated logs a key set moving from one period to another.
func (l *Logger) KeysRotated(keySetID string, static bool, from, to int64) {
	l.logger.Debug().
		Str("key_set_id", keySetID).
		Bool("static", static).
		Int64("from_period", from).
		Int64("to_period", to).
		Msg("keys rotated")
}

// StreamOpened logs allocation of an outgoing stream.
func (l *Logger) StreamOpened(keySetID string, timePeriod int64, streamNumber uint64) {
	l.logger.Debug().
		Str("key_set_id", keySetID).
		Int64("time_period", timePeriod).
		Uint64("stream_number", streamNumber).
		Msg("outgoing stream allocated")
}

// TagRecognised logs a recognised incoming tag.
func (l *Logger) TagRecognised(keySetID string, timePeriod int64, streamNumber uint64) {
	l.logger.Debug().
		Str("key_set_id", keySetID).
		Int64("time_period", timePeriod).
		Uint64("stream_number", streamNumber).
		Msg("incoming tag recognised")
}
