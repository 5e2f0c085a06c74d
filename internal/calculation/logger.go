package calculation

import "strings"

// Logger is the printf-style sink used by the withdrawal engine and the
// simulator. The default is a no-op.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger implements Logger with no output.
type NopLogger struct{}

func (NopLogger) Debugf(format string, args ...any) {}
func (NopLogger) Infof(format string, args ...any)  {}
func (NopLogger) Warnf(format string, args ...any)  {}
func (NopLogger) Errorf(format string, args ...any) {}

// scopedLogger tags every line with a scenario name so concurrent runs can be
// told apart.
type scopedLogger struct {
	next  Logger
	scope string
}

// WithScope returns a Logger that prefixes each message with "[scope] ".
func WithScope(l Logger, scope string) Logger {
	if l == nil {
		return NopLogger{}
	}
	if _, ok := l.(NopLogger); ok || scope == "" {
		return l
	}
	return scopedLogger{next: l, scope: scope}
}

func (s scopedLogger) Debugf(format string, args ...any) { s.next.Debugf(s.prefix(format), args...) }
func (s scopedLogger) Infof(format string, args ...any)  { s.next.Infof(s.prefix(format), args...) }
func (s scopedLogger) Warnf(format string, args ...any)  { s.next.Warnf(s.prefix(format), args...) }
func (s scopedLogger) Errorf(format string, args ...any) { s.next.Errorf(s.prefix(format), args...) }

// prefix escapes % in the scope so it is never read as a verb.
func (s scopedLogger) prefix(format string) string {
	return "[" + strings.ReplaceAll(s.scope, "%", "%%") + "] " + format
}
