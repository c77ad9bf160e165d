// Package logger is a process-wide, goroutine-safe structured logging
// facility: ordered level filtering, pluggable output encodings (key-value
// text, compact JSON, colorized pretty JSON), per-goroutine request context
// propagation, and a runtime-switchable synchronous/asynchronous delivery
// mode backed by a bounded queue and a worker goroutine.
//
// Console writes coordinate with a one-shot startup banner (see the banner
// package) so the banner's multi-line block is never interleaved with log
// lines.
//
// The zero-configuration entry point is the package-level functions, which
// drive a singleton configured from the VIX_LOG_LEVEL, VIX_LOG_FORMAT and
// VIX_CONSOLE_SYNC environment variables:
//
//	logger.Infof("listening on %s", addr)
//	logger.InfoKV("login ok", "user", "ada", "latency_ms", 12)
//
// Ordinary logging calls never abort the host program: configuration,
// formatting and delivery failures are contained and reported on a fallback
// stream. The one deliberate exception is Failf, which logs at Error and
// returns the error for call sites that want abort-this-operation semantics.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
)

// Environment variables consulted by FromEnv and the Set*FromEnv methods.
const (
	EnvLevel       = "VIX_LOG_LEVEL"
	EnvFormat      = "VIX_LOG_FORMAT"
	EnvConsoleSync = "VIX_CONSOLE_SYNC"
	EnvFile        = "VIX_LOG_FILE"
)

const defaultQueueSize = 8192

// ColorMode is the tri-state color switch: follow the terminal, or force.
type ColorMode uint8

const (
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// Options configures a Logger. The zero value means: level Info, KV format,
// a console sink on stdout, synchronous delivery, blocking overflow policy,
// queue of 8192 when async is enabled, fallback diagnostics on stderr.
type Options struct {
	Level       Level
	Format      Format
	Sinks       []Sink    // replaces the default console sink when non-nil
	Fallback    io.Writer // destination for the logger's own diagnostics
	QueueSize   int
	Overflow    OverflowPolicy
	ConsoleSync bool
	Color       ColorMode
	Async       bool
}

// Logger is the facade: it gates on level, snapshots the caller's context,
// encodes, and hands the rendered line to the delivery pipeline. Scalar
// configuration is atomic, the sink set has its own mutex, and delivery
// swaps are fenced by a read-write lock; Context is per-goroutine and never
// locked.
type Logger struct {
	level       atomic.Int32
	format      atomic.Uint32
	overflow    atomic.Uint32
	color       atomic.Bool
	consoleSync atomic.Bool

	mu    sync.Mutex // guards sinks
	sinks []Sink

	// swapMu serializes delivery swaps against in-flight emissions: emit and
	// Flush hold it shared across the active-delivery load AND the call into
	// it, SetAsync and Close hold it exclusively around retire(). A delivery
	// therefore never sees a deliver or flush after its retire, which is what
	// keeps accepted records out of dead queues.
	swapMu  sync.RWMutex
	active  delivery
	retired []*asyncDelivery
	async   bool
	closed  bool

	diag  *diag
	queue int
}

// New builds a Logger from opts. It cannot fail: a nil sink list gets the
// default console sink, and everything else has a workable zero value.
func New(opts Options) *Logger {
	l := &Logger{
		diag:  &diag{w: os.Stderr},
		queue: opts.QueueSize,
	}
	if opts.Fallback != nil {
		l.diag.w = opts.Fallback
	}
	if l.queue <= 0 {
		l.queue = defaultQueueSize
	}
	l.level.Store(int32(opts.Level))
	l.format.Store(uint32(opts.Format))
	l.overflow.Store(uint32(opts.Overflow))
	l.consoleSync.Store(opts.ConsoleSync)

	l.sinks = opts.Sinks
	if l.sinks == nil {
		l.sinks = []Sink{NewConsoleSink(os.Stdout, l.consoleSync.Load)}
	}
	switch opts.Color {
	case ColorAlways:
		l.color.Store(true)
	case ColorNever:
		l.color.Store(false)
	default:
		l.color.Store(Caps.ColorEnabled(os.Stdout))
	}

	l.active = &syncDelivery{sinks: l.snapshotSinks, diag: l.diag}
	if opts.Async {
		l.SetAsync(true)
	}
	return l
}

// FromEnv builds a Logger configured from the process environment: level
// from VIX_LOG_LEVEL (unset means Info), format from VIX_LOG_FORMAT, console
// synchronization from VIX_CONSOLE_SYNC, and an additional rotating file sink
// when VIX_LOG_FILE names a path. A file sink that cannot be opened is
// reported on the fallback stream and skipped; startup never fails over a bad
// log destination.
func FromEnv() *Logger {
	opts := Options{
		Level:       levelFromEnv(),
		Format:      ParseFormat(os.Getenv(EnvFormat)),
		ConsoleSync: consoleSyncFromEnv(),
	}
	l := New(opts)
	if path := os.Getenv(EnvFile); path != "" {
		fs, err := NewFileSink(FileSinkConfig{Path: path})
		if err != nil {
			l.diag.reportf("init: %v", err)
		} else {
			l.AddSink(fs)
		}
	}
	return l
}

func levelFromEnv() Level {
	v, ok := os.LookupEnv(EnvLevel)
	if !ok || v == "" {
		return LevelInfo
	}
	return ParseLevel(v)
}

// consoleSyncFromEnv: any value except "0" and "false" enables.
func consoleSyncFromEnv() bool {
	v, ok := os.LookupEnv(EnvConsoleSync)
	if !ok || v == "" {
		return false
	}
	return v != "0" && v != "false"
}

// --- configuration ---

// SetLevel changes the minimum level at runtime.
func (l *Logger) SetLevel(level Level) { l.level.Store(int32(level)) }

// SetLevelFromEnv re-reads VIX_LOG_LEVEL and applies it.
func (l *Logger) SetLevelFromEnv() { l.SetLevel(levelFromEnv()) }

// Level returns the configured minimum level.
func (l *Logger) Level() Level { return Level(l.level.Load()) }

// Enabled reports whether a record at level would currently be written.
func (l *Logger) Enabled(level Level) bool { return passes(l.Level(), level) }

// SetFormat changes the encoding for records emitted from now on. Records
// already queued keep the encoding they were rendered with.
func (l *Logger) SetFormat(f Format) { l.format.Store(uint32(f)) }

// SetFormatFromEnv re-reads VIX_LOG_FORMAT and applies it.
func (l *Logger) SetFormatFromEnv() { l.SetFormat(ParseFormat(os.Getenv(EnvFormat))) }

// FormatNow returns the current encoding.
func (l *Logger) FormatNow() Format { return Format(l.format.Load()) }

// SetOverflow selects the async overflow policy. It applies to enqueues from
// now on, including into an already-running queue.
func (l *Logger) SetOverflow(p OverflowPolicy) { l.overflow.Store(uint32(p)) }

// Overflow returns the configured overflow policy.
func (l *Logger) Overflow() OverflowPolicy { return OverflowPolicy(l.overflow.Load()) }

// SetColor forces colorized pretty output on or off.
func (l *Logger) SetColor(on bool) { l.color.Store(on) }

// SetConsoleSync toggles banner coordination for console sinks.
func (l *Logger) SetConsoleSync(on bool) { l.consoleSync.Store(on) }

// SetContext replaces the calling goroutine's log context wholesale.
func (l *Logger) SetContext(ctx Context) { SetContext(ctx) }

// ClearContext resets the calling goroutine's log context.
func (l *Logger) ClearContext() { ClearContext() }

// GetContext returns a copy of the calling goroutine's log context.
func (l *Logger) GetContext() Context { return GetContext() }

// AddSink attaches an additional sink. Queued records rendered earlier are
// delivered to whatever sinks exist when the worker reaches them.
func (l *Logger) AddSink(s Sink) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sinks = append(l.sinks, s)
}

// SetSinks replaces the sink set wholesale.
func (l *Logger) SetSinks(sinks ...Sink) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sinks = sinks
}

func (l *Logger) snapshotSinks() []Sink {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sinks
}

// SetAsync switches the delivery mode. Turning async on lazily creates the
// bounded queue and worker; turning it off swaps in a synchronous delivery
// while the outgoing queue drains independently on its own goroutine, without
// blocking the caller. No accepted record is lost in either switch: the swap
// lock excludes in-flight emissions, so nothing can land on the old queue
// after its worker is told to drain.
func (l *Logger) SetAsync(enable bool) {
	l.swapMu.Lock()
	defer l.swapMu.Unlock()
	if l.closed || enable == l.async {
		return
	}
	if enable {
		l.active = newAsyncDelivery(l.queue, l.snapshotSinks, l.Overflow, l.diag)
		l.async = true
		return
	}
	if a, ok := l.active.(*asyncDelivery); ok {
		a.retire()
		// Drop retired entries whose worker already drained and exited;
		// only ones still draining need to be waited on by a later Flush.
		kept := l.retired[:0]
		for _, old := range l.retired {
			if !old.exited() {
				kept = append(kept, old)
			}
		}
		l.retired = append(kept, a)
	}
	l.active = &syncDelivery{sinks: l.snapshotSinks, diag: l.diag}
	l.async = false
}

// Flush blocks until every record accepted so far is written: the active
// queue is run down to a barrier and retired queues are waited out. Callers
// needing durability-before-continue use this; mode switches alone never
// guarantee it.
func (l *Logger) Flush() {
	// The shared lock spans the flush call itself so the active delivery
	// cannot be retired while the barrier is in flight.
	l.swapMu.RLock()
	l.active.flush()
	l.swapMu.RUnlock()

	l.swapMu.Lock()
	retired := l.retired
	l.retired = nil
	l.swapMu.Unlock()
	for _, a := range retired {
		a.wait()
	}
}

// Close flushes, stops the worker if any, and closes the sinks. The logger
// must not be used afterwards. Shed-record and write-failure totals are
// reported to the fallback stream on the way out.
func (l *Logger) Close() error {
	l.swapMu.Lock()
	if l.closed {
		l.swapMu.Unlock()
		return nil
	}
	l.closed = true
	active := l.active
	if a, ok := active.(*asyncDelivery); ok {
		a.retire()
	}
	// Late emissions after Close degrade to synchronous writes instead of
	// landing on the retired queue.
	l.active = &syncDelivery{sinks: l.snapshotSinks, diag: l.diag}
	retired := l.retired
	l.retired = nil
	l.swapMu.Unlock()

	if a, ok := active.(*asyncDelivery); ok {
		a.wait()
	}
	for _, a := range retired {
		a.wait()
	}

	var firstErr error
	for _, s := range l.snapshotSinks() {
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if n := l.diag.Dropped(); n > 0 {
		l.diag.reportf("%d records dropped by overflow policy", n)
	}
	if n := l.diag.Failed(); n > 0 {
		l.diag.reportf("%d sink writes failed", n)
	}
	return firstErr
}

// --- emission ---

// Logf formats and logs a message at the given level. The level gate runs
// before any formatting work.
func (l *Logger) Logf(level Level, format string, args ...any) {
	if !l.Enabled(level) {
		return
	}
	l.emit(level, sprintf(format, args...), nil)
}

// LogModule logs with an explicit module tag prefixed to the message,
// independent of the goroutine context's module field.
func (l *Logger) LogModule(module string, level Level, format string, args ...any) {
	if !l.Enabled(level) {
		return
	}
	l.emit(level, "["+module+"] "+sprintf(format, args...), nil)
}

// LogKV logs a message with ordered key/value pairs. The goroutine context
// (request id, module, fields) is attached automatically. In the JSON
// encodings keys stay unique: a pair named after a context field replaces
// that field, and a pair named level, msg, rid or mod is emitted under a
// field_ prefix rather than duplicating the record envelope.
func (l *Logger) LogKV(level Level, msg string, keyvals ...any) {
	if !l.Enabled(level) {
		return
	}
	l.emit(level, msg, pairsFromKeyvals(keyvals))
}

// Failf logs at Error and returns the formatted message as an error. It is
// the one logging call designed to propagate: use it where the operation
// should abort with the same message it logged.
func (l *Logger) Failf(format string, args ...any) error {
	err := fmt.Errorf(format, args...)
	if l.Enabled(LevelError) {
		l.emit(LevelError, err.Error(), nil)
	}
	return err
}

func (l *Logger) emit(level Level, msg string, pairs []Pair) {
	rec := Record{
		Time:    now(),
		Level:   level,
		Message: msg,
		Pairs:   pairs,
		Ctx:     snapshotContext(),
	}
	f := l.FormatNow()
	enc := encoderFor(f, f == FormatJSONPretty && l.color.Load())
	line := encodeSafe(enc, rec, l.diag)

	// Held shared across the deliver call: a mode switch cannot retire this
	// delivery while the record is on its way in.
	l.swapMu.RLock()
	l.active.deliver(level, line)
	l.swapMu.RUnlock()
}

// encodeSafe contains encoder failures: a panicking value's record degrades
// to a best-effort plain line instead of unwinding through the caller.
func encodeSafe(enc encoder, rec Record, d *diag) (line string) {
	defer func() {
		if r := recover(); r != nil {
			d.reportf("encode: %v", r)
			line = rec.Message + " (encoding error)"
		}
	}()
	return enc.Encode(rec)
}

// sprintf skips fmt entirely for the no-argument case.
func sprintf(format string, args ...any) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

// Convenience methods, one per level.

func (l *Logger) Tracef(format string, args ...any)    { l.Logf(LevelTrace, format, args...) }
func (l *Logger) Debugf(format string, args ...any)    { l.Logf(LevelDebug, format, args...) }
func (l *Logger) Infof(format string, args ...any)     { l.Logf(LevelInfo, format, args...) }
func (l *Logger) Warnf(format string, args ...any)     { l.Logf(LevelWarn, format, args...) }
func (l *Logger) Errorf(format string, args ...any)    { l.Logf(LevelError, format, args...) }
func (l *Logger) Criticalf(format string, args ...any) { l.Logf(LevelCritical, format, args...) }

func (l *Logger) TraceKV(msg string, keyvals ...any)    { l.LogKV(LevelTrace, msg, keyvals...) }
func (l *Logger) DebugKV(msg string, keyvals ...any)    { l.LogKV(LevelDebug, msg, keyvals...) }
func (l *Logger) InfoKV(msg string, keyvals ...any)     { l.LogKV(LevelInfo, msg, keyvals...) }
func (l *Logger) WarnKV(msg string, keyvals ...any)     { l.LogKV(LevelWarn, msg, keyvals...) }
func (l *Logger) ErrorKV(msg string, keyvals ...any)    { l.LogKV(LevelError, msg, keyvals...) }
func (l *Logger) CriticalKV(msg string, keyvals ...any) { l.LogKV(LevelCritical, msg, keyvals...) }
