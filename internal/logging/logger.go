// Package logging provides the structured Logger used across redistrict,
// a log/slog adapter and a no-op implementation.
package logging

// Logger is a leveled, structured logger. keysAndValues alternate
// between string keys and arbitrary values.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}
