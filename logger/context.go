package logger

import (
	"runtime"
	"sync"
)

// Context is the ambient per-goroutine metadata attached to every structured
// log call: a request id, the emitting module, and free-form string fields.
//
// Each goroutine owns exactly one Context. It is written only by its own
// goroutine and is never shared, so reads take no lock beyond the store's own
// mostly-lock-free lookup. Go has no thread-local storage; the store below is
// the map-keyed-by-goroutine-identity simulation with the same single-writer
// guarantee.
type Context struct {
	RequestID string
	Module    string
	Fields    map[string]string
}

// clone returns a deep copy so callers can keep mutating their maps without
// racing the logger.
func (c Context) clone() Context {
	out := Context{RequestID: c.RequestID, Module: c.Module}
	if len(c.Fields) > 0 {
		out.Fields = make(map[string]string, len(c.Fields))
		for k, v := range c.Fields {
			out.Fields[k] = v
		}
	}
	return out
}

func (c Context) empty() bool {
	return c.RequestID == "" && c.Module == "" && len(c.Fields) == 0
}

// contextStore maps goroutine id -> Context. Entries are created by
// SetContext and removed by ClearContext; a goroutine that never sets a
// context pays one failed lookup per log call.
var contextStore sync.Map

// SetContext replaces this goroutine's context wholesale. It is not merged
// with any previous value.
func SetContext(ctx Context) {
	contextStore.Store(goroutineID(), ctx.clone())
}

// ClearContext resets this goroutine's context to the empty default.
// Call it before a goroutine exits if SetContext was used; the runtime gives
// no exit hook, so abandoned entries would otherwise linger.
func ClearContext() {
	contextStore.Delete(goroutineID())
}

// GetContext returns a copy of this goroutine's context, or the empty default
// if none was set. Contexts set on other goroutines are never visible.
func GetContext() Context {
	if v, ok := contextStore.Load(goroutineID()); ok {
		return v.(Context).clone()
	}
	return Context{}
}

// snapshotContext is the read on the logging hot path; unlike GetContext it
// skips the defensive copy because the encoder only reads the value.
func snapshotContext() Context {
	if v, ok := contextStore.Load(goroutineID()); ok {
		return v.(Context)
	}
	return Context{}
}

// goroutineID extracts the current goroutine's id from the runtime stack
// header, which is formatted "goroutine N [running]: ...". The runtime does
// not expose the id directly.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	// Skip "goroutine " and accumulate digits.
	const prefix = len("goroutine ")
	var id uint64
	for i := prefix; i < n; i++ {
		c := buf[i]
		if c < '0' || c > '9' {
			break
		}
		id = id*10 + uint64(c-'0')
	}
	return id
}
