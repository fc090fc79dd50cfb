package logger

// fieldLogger decorates a Logger, prepending a fixed set of key/value
// pairs to every call. A scheduler uses it to tag every log line from a
// single scheduled job's lifetime with that job's key and trigger,
// without threading those fields through every call site by hand.
type fieldLogger struct {
	base   Logger
	fields []any
}

var _ Logger = (*fieldLogger)(nil)

// WithFields returns a Logger that delegates to base with fields
// prepended to the arguments of every call. A nil base falls back to a
// no-op logger.
func WithFields(base Logger, fields ...any) Logger {
	if base == nil {
		base = NoOpLogger{}
	}
	return &fieldLogger{base: base, fields: fields}
}

func (l *fieldLogger) Trace(msg string, args ...any) { l.base.Trace(msg, l.merge(args)...) }
func (l *fieldLogger) Debug(msg string, args ...any) { l.base.Debug(msg, l.merge(args)...) }
func (l *fieldLogger) Info(msg string, args ...any)  { l.base.Info(msg, l.merge(args)...) }
func (l *fieldLogger) Warn(msg string, args ...any)  { l.base.Warn(msg, l.merge(args)...) }
func (l *fieldLogger) Error(msg string, args ...any) { l.base.Error(msg, l.merge(args)...) }

func (l *fieldLogger) merge(args []any) []any {
	merged := make([]any, 0, len(l.fields)+len(args))
	merged = append(merged, l.fields...)
	merged = append(merged, args...)
	return merged
}
