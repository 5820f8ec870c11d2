package loader

import "log/slog"

// Logger receives structured diagnostics from the loader, resolver and builder
// packages. Attributes alternate keys and values as in log/slog, so any slog
// backed logger fits behind it via NewSlogAdapter.
type Logger interface {
	Debug(msg string, attrs ...any)
	Info(msg string, attrs ...any)
	Warn(msg string, attrs ...any)
	Error(msg string, attrs ...any)
	With(attrs ...any) Logger
}

// NopLogger discards everything. It is the default when no logger is configured.
type NopLogger struct{}

func (NopLogger) Debug(string, ...any) {}
func (NopLogger) Info(string, ...any) {}
func (NopLogger) Warn(string, ...any) {}
func (NopLogger) Error(string, ...any) {}
func (n NopLogger) With(...any) Logger { return n }

// SlogAdapter forwards to a *slog.Logger.
type SlogAdapter struct {
	l *slog.Logger
}

// NewSlogAdapter wraps l, falling back to slog.Default when l is nil.
func NewSlogAdapter(l *slog.Logger) *SlogAdapter {
	if l == nil {
		l = slog.Default()
	}
	return &SlogAdapter{l: l}
}

func (s *SlogAdapter) Debug(msg string, attrs ...any) { s.l.Debug(msg, attrs...) }
func (s *SlogAdapter) Info(msg string, attrs ...any) { s.l.Info(msg, attrs...) }
func (s *SlogAdapter) Warn(msg string, attrs ...any) { s.l.Warn(msg, attrs...) }
func (s *SlogAdapter) Error(msg string, attrs ...any) { s.l.Error(msg, attrs...) }

func (s *SlogAdapter) With(attrs ...any) Logger {
	return &SlogAdapter{l: s.l.With(attrs...)}
}

var (
	_ Logger = NopLogger{}
	_ Logger = (*SlogAdapter)(nil)
)
