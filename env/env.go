// Package env provides typed environment-variable accessors with defaults.
// Lookups never fail: a missing or malformed value yields the caller's
// default, which is the behavior startup code wants from configuration that
// is optional by nature.
package env

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// String returns the value of key, or def when unset. An empty value counts
// as set.
func String(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

// Bool interprets key as a boolean: 1, true, yes and on (case-insensitive)
// are true, everything else false. Unset returns def.
func Bool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// Int parses key as a base-10 integer; unset or unparsable returns def.
func Int(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return n
}

// Duration parses key with time.ParseDuration ("250ms", "2s", ...); unset or
// unparsable returns def.
func Duration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return d
}
