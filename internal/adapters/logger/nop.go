package logger

import (
	"github.com/baditaflorin/go_argument_similarity/internal/ports"
)

// NopLogger discards every message. It serves tests and callers that want
// logging switched off entirely.
type NopLogger struct{}

// NewNopLogger creates a new no-op logger.
func NewNopLogger() ports.Logger {
	return &NopLogger{}
}

// Debug discards the message.
func (n *NopLogger) Debug(msg string, keysAndValues ...interface{}) {}

// Info discards the message.
func (n *NopLogger) Info(msg string, keysAndValues ...interface{}) {}

// Warn discards the message.
func (n *NopLogger) Warn(msg string, keysAndValues ...interface{}) {}

// Error discards the message.
func (n *NopLogger) Error(msg string, keysAndValues ...interface{}) {}

// Close is a no-op.
func (n *NopLogger) Close() error { return nil }
