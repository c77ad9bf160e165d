package logger

import "strings"

// Level is the severity of a log record. Levels are ordered; a record is
// written when the configured level is not Off and the record's level is at
// least the configured one.
type Level int32

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelCritical
	// LevelOff disables all output. It is not a severity: the filter checks
	// it by identity, never by ordering against record levels.
	LevelOff Level = 99
)

var levelNames = map[Level]string{
	LevelTrace:    "trace",
	LevelDebug:    "debug",
	LevelInfo:     "info",
	LevelWarn:     "warn",
	LevelError:    "error",
	LevelCritical: "critical",
	LevelOff:      "off",
}

// String returns the lowercase name of the level, or "unknown".
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "unknown"
}

// ParseLevel maps a level string to a Level, case-insensitively.
// "fatal" is an alias for critical; "off", "never", "none", "silent" and "0"
// all disable output. Unrecognized strings fall back to LevelWarn so a typo in
// an environment variable degrades to quieter output rather than noise.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LevelTrace
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "critical", "fatal":
		return LevelCritical
	case "off", "never", "none", "silent", "0":
		return LevelOff
	default:
		return LevelWarn
	}
}

// passes reports whether a record at level rec should be written when the
// logger is configured at level cfg.
func passes(cfg, rec Level) bool {
	if cfg == LevelOff || rec == LevelOff {
		return false
	}
	return rec >= cfg
}
