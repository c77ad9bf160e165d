package logger

import "sync"

var (
	defaultLogger *Logger
	defaultOnce   sync.Once
	defaultMu     sync.Mutex
)

// Default returns the process-wide singleton, built from the environment on
// first use (see FromEnv).
func Default() *Logger {
	defaultOnce.Do(func() {
		defaultMu.Lock()
		defer defaultMu.Unlock()
		if defaultLogger == nil {
			defaultLogger = FromEnv()
		}
	})
	return defaultLogger
}

// SetDefault replaces the singleton. Call it once during initialization,
// before any goroutine logs; it exists mainly so tests and embedding
// applications can install a logger with custom sinks.
func SetDefault(l *Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultOnce.Do(func() {})
	defaultLogger = l
}

// Package-level functions drive the singleton.

func Logf(level Level, format string, args ...any) { Default().Logf(level, format, args...) }
func LogModule(module string, level Level, format string, args ...any) {
	Default().LogModule(module, level, format, args...)
}
func LogKV(level Level, msg string, keyvals ...any) { Default().LogKV(level, msg, keyvals...) }
func Failf(format string, args ...any) error        { return Default().Failf(format, args...) }

func Tracef(format string, args ...any)    { Default().Tracef(format, args...) }
func Debugf(format string, args ...any)    { Default().Debugf(format, args...) }
func Infof(format string, args ...any)     { Default().Infof(format, args...) }
func Warnf(format string, args ...any)     { Default().Warnf(format, args...) }
func Errorf(format string, args ...any)    { Default().Errorf(format, args...) }
func Criticalf(format string, args ...any) { Default().Criticalf(format, args...) }

func TraceKV(msg string, keyvals ...any)    { Default().TraceKV(msg, keyvals...) }
func DebugKV(msg string, keyvals ...any)    { Default().DebugKV(msg, keyvals...) }
func InfoKV(msg string, keyvals ...any)     { Default().InfoKV(msg, keyvals...) }
func WarnKV(msg string, keyvals ...any)     { Default().WarnKV(msg, keyvals...) }
func ErrorKV(msg string, keyvals ...any)    { Default().ErrorKV(msg, keyvals...) }
func CriticalKV(msg string, keyvals ...any) { Default().CriticalKV(msg, keyvals...) }

// Flush flushes the singleton's pipeline.
func Flush() { Default().Flush() }

// Close closes the singleton if one was ever created.
func Close() error {
	defaultMu.Lock()
	l := defaultLogger
	defaultMu.Unlock()
	if l == nil {
		return nil
	}
	return l.Close()
}
