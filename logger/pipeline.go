package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
)

// OverflowPolicy governs an async enqueue against a full queue: apply
// backpressure to the producer, or shed the oldest buffered record to keep
// latency bounded. The two policies produce materially different
// application-visible behavior, so the choice is a documented runtime option
// rather than a fixed default.
type OverflowPolicy uint8

const (
	// OverflowBlock blocks the producer until the worker frees a slot.
	OverflowBlock OverflowPolicy = iota
	// OverflowDropOldest discards the oldest buffered record and admits the
	// new one. Drops are counted and reported to the fallback stream.
	OverflowDropOldest
)

func (p OverflowPolicy) String() string {
	if p == OverflowDropOldest {
		return "drop_oldest"
	}
	return "block"
}

// ParseOverflow maps a policy string to an OverflowPolicy. Anything but the
// drop-oldest spellings means block.
func ParseOverflow(s string) OverflowPolicy {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "drop_oldest", "drop-oldest", "dropoldest", "drop":
		return OverflowDropOldest
	default:
		return OverflowBlock
	}
}

// diag is the fallback channel for the pipeline's own failures: sink write
// errors, worker panics, shed records. It must never escalate into the host
// program, so everything funnels into counted writes on a plain writer.
type diag struct {
	mu      sync.Mutex
	w       io.Writer
	dropped atomic.Int64
	failed  atomic.Int64
}

func (d *diag) reportf(format string, args ...any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintf(d.w, "logger: "+format+"\n", args...)
}

// Dropped returns how many records were shed under the drop-oldest policy.
func (d *diag) Dropped() int64 { return d.dropped.Load() }

// Failed returns how many sink writes errored or panicked.
func (d *diag) Failed() int64 { return d.failed.Load() }

// delivery writes rendered records to the sinks, inline or via a queue.
type delivery interface {
	deliver(level Level, line string)
	// flush returns once every record accepted before the call is written.
	flush()
	// retire tells an async delivery to drain what it holds and exit. The
	// caller is not blocked on the drain.
	retire()
}

// writeAll pushes one rendered record into every sink, catching per-record
// failures so one bad sink or line cannot starve the rest.
func writeAll(sinks []Sink, d *diag, level Level, line string) {
	defer func() {
		if r := recover(); r != nil {
			d.failed.Add(1)
			d.reportf("sink panic: %v", r)
		}
	}()
	for _, s := range sinks {
		if err := s.Write(level, line); err != nil {
			d.failed.Add(1)
			d.reportf("sink write: %v", err)
		}
	}
}

// syncDelivery writes inline on the caller's goroutine.
type syncDelivery struct {
	sinks func() []Sink
	diag  *diag
}

func (s *syncDelivery) deliver(level Level, line string) {
	writeAll(s.sinks(), s.diag, level, line)
}

func (s *syncDelivery) flush()  {}
func (s *syncDelivery) retire() {}

// queueItem is one queue entry: a rendered record, or a control marker.
// Records are encoded before enqueue, so a later format switch never touches
// what is already buffered.
type queueItem struct {
	level Level
	line  string
	flush chan struct{} // non-nil marks a flush barrier
}

// asyncDelivery hands records to a single background worker over a bounded
// queue. FIFO order is preserved per producer; cross-producer order is
// whatever the queue admits.
type asyncDelivery struct {
	queue  chan queueItem
	stop   chan struct{}
	exit   chan struct{} // closed when the worker has fully drained and left
	wg     sync.WaitGroup
	sinks  func() []Sink
	policy func() OverflowPolicy
	diag   *diag
	once   sync.Once
}

func newAsyncDelivery(capacity int, sinks func() []Sink, policy func() OverflowPolicy, d *diag) *asyncDelivery {
	if capacity <= 0 {
		capacity = defaultQueueSize
	}
	a := &asyncDelivery{
		queue:  make(chan queueItem, capacity),
		stop:   make(chan struct{}),
		exit:   make(chan struct{}),
		sinks:  sinks,
		policy: policy,
		diag:   d,
	}
	a.wg.Add(1)
	go a.worker()
	return a
}

func (a *asyncDelivery) worker() {
	defer a.wg.Done()
	defer close(a.exit)
	for {
		select {
		case it := <-a.queue:
			a.handle(it)
		case <-a.stop:
			// Drain whatever is buffered, then exit. New records stopped
			// arriving when the facade swapped deliveries.
			for {
				select {
				case it := <-a.queue:
					a.handle(it)
				default:
					return
				}
			}
		}
	}
}

func (a *asyncDelivery) handle(it queueItem) {
	if it.flush != nil {
		close(it.flush)
		return
	}
	writeAll(a.sinks(), a.diag, it.level, it.line)
}

func (a *asyncDelivery) deliver(level Level, line string) {
	it := queueItem{level: level, line: line}
	if a.policy() == OverflowBlock {
		a.queue <- it
		return
	}
	for {
		select {
		case a.queue <- it:
			return
		default:
		}
		// Full: shed the oldest buffered record and retry. A flush barrier
		// popped here is released, not lost.
		select {
		case old := <-a.queue:
			if old.flush != nil {
				close(old.flush)
			} else {
				a.diag.dropped.Add(1)
				a.diag.reportf("queue full, dropped oldest record")
			}
		default:
		}
	}
}

// flush enqueues a barrier and waits for the worker to reach it. Everything
// accepted before the call is on a sink once flush returns.
func (a *asyncDelivery) flush() {
	done := make(chan struct{})
	select {
	case a.queue <- queueItem{flush: done}:
	case <-a.exit:
		// Worker already drained and left; there is nothing to wait for.
		return
	}
	select {
	case <-done:
	case <-a.exit:
		// Worker exited before reaching the barrier. Whatever it left behind,
		// the barrier included, is handled here.
		for {
			select {
			case it := <-a.queue:
				a.handle(it)
			default:
				return
			}
		}
	}
}

// retire signals the worker to drain and exit without blocking the caller.
// The old queue empties on its own goroutine.
func (a *asyncDelivery) retire() {
	a.once.Do(func() { close(a.stop) })
}

// wait blocks until the worker has fully drained and exited. Used by tests
// and by Close.
func (a *asyncDelivery) wait() {
	a.wg.Wait()
}

// exited reports, without blocking, whether the worker is already gone.
func (a *asyncDelivery) exited() bool {
	select {
	case <-a.exit:
		return true
	default:
		return false
	}
}
