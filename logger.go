package arraycache

// Fields is a minimal structured field map for logs.
type Fields map[string]any

// Logger is a tiny leveled logger. Provide an adapter around logging stack
// (see log/zap, log/logrus, log/slog, log/zerolog).
// If Logger is nil in Options, logging is disabled.
type Logger interface {
	Debug(msg string, f Fields)
	Info(msg string, f Fields)
	Warn(msg string, f Fields)
	Error(msg string, f Fields)
}

type NopLogger struct{}

func (NopLogger) Debug(string, Fields) {}
func (NopLogger) Info(string, Fields)  {}
func (NopLogger) Warn(string, Fields)  {}
func (NopLogger) Error(string, Fields) {}

// diag writes per-call diagnostics: Info when the call is verbose, Debug otherwise.
type diag struct {
	l       Logger
	verbose bool
}

func (d diag) note(msg string, f Fields) {
	if d.verbose {
		d.l.Info(msg, f)
		return
	}
	d.l.Debug(msg, f)
}

func (d diag) warn(msg string, f Fields) { d.l.Warn(msg, f) }
