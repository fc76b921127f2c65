package logging

// NopLogger discards everything.
type NopLogger struct{}

// Compile-time assertion that NopLogger implements Logger.
var _ Logger = NopLogger{}

// NewNop returns a Logger that discards all messages.
func NewNop() NopLogger { return NopLogger{} }

func (NopLogger) Debug(string, ...any) {}
func (NopLogger) Info(string, ...any)  {}
func (NopLogger) Warn(string, ...any)  {}
func (NopLogger) Error(string, ...any) {}
