// Package ids provides the identifier and timestamp formatting helpers used
// across the foundation: random UUIDs, time-ordered request IDs, and compact
// time renderings for log correlation.
package ids

import (
	"time"

	"github.com/google/uuid"
)

// RequestIDGenerator produces new request IDs. Override it during
// initialization (before any handler runs) to customize the format; the
// default yields UUIDv7, which is time-ordered and therefore sortable in log
// storage.
var RequestIDGenerator = func() string {
	return uuid.Must(uuid.NewV7()).String()
}

// NewRequestID returns a fresh request identifier from the configured
// generator.
func NewRequestID() string {
	return RequestIDGenerator()
}

// UUID4 returns a random (version 4) UUID string.
func UUID4() string {
	return uuid.NewString()
}

// ISO8601Now formats the current UTC time as "2006-01-02T15:04:05Z".
func ISO8601Now() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05Z")
}

// NowMillis returns the current wall-clock time in milliseconds since the
// Unix epoch.
func NowMillis() uint64 {
	return uint64(time.Now().UnixMilli())
}
