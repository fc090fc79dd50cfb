package logger

import (
	"log"
	"os"
	"sync"
)

type loggerValue struct {
	sync.RWMutex
	logger Logger
}

func (l *loggerValue) getLogger() Logger {
	l.RLock()
	defer l.RUnlock()
	return l.logger
}

func (l *loggerValue) setLogger(next Logger) {
	l.Lock()
	defer l.Unlock()
	l.logger = next
}

var defaultLogger = loggerValue{
	logger: NewSimpleLogger(
		log.New(os.Stdout, "", log.LstdFlags),
		LevelInfo,
	),
}

// Default returns the package-level default Logger.
func Default() Logger {
	return defaultLogger.getLogger()
}

// SetDefault makes l the package-level default Logger.
func SetDefault(l Logger) {
	defaultLogger.setLogger(l)
}

// Trace logs at LevelTrace on the default Logger.
func Trace(msg string, args ...any) { Default().Trace(msg, args...) }

// Debug logs at LevelDebug on the default Logger.
func Debug(msg string, args ...any) { Default().Debug(msg, args...) }

// Info logs at LevelInfo on the default Logger.
func Info(msg string, args ...any) { Default().Info(msg, args...) }

// Warn logs at LevelWarn on the default Logger.
func Warn(msg string, args ...any) { Default().Warn(msg, args...) }

// Error logs at LevelError on the default Logger.
func Error(msg string, args ...any) { Default().Error(msg, args...) }

// Enabled reports whether the default Logger, if it is a *SimpleLogger,
// handles records at the given level. Other Logger implementations are
// assumed to always be enabled.
func Enabled(level Level) bool {
	if l, ok := Default().(*SimpleLogger); ok {
		return l.enabled(level)
	}
	return true
}
