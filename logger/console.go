package logger

import "sync"

// consoleGate serializes physical console writes process-wide and gates them
// behind a one-shot external banner print. Log lines must never tear the
// banner's multi-line block, so while a banner is printing every console
// write waits on the condition variable.
//
// bannerDone starts true: a process that never prints a banner must never see
// a log call block here.
type consoleGate struct {
	writeMu  sync.Mutex // held for the duration of one physical write
	bannerMu sync.Mutex // guards bannerDone
	cond     *sync.Cond
	done     bool
}

func newConsoleGate() *consoleGate {
	g := &consoleGate{done: true}
	g.cond = sync.NewCond(&g.bannerMu)
	return g
}

// sharedConsole is the process-wide coordinator. The banner and every console
// sink go through it; that shared state is the whole point.
var sharedConsole = newConsoleGate()

func (g *consoleGate) acquire() { g.writeMu.Lock() }
func (g *consoleGate) release() { g.writeMu.Unlock() }

// waitBanner blocks until no banner print is in flight.
func (g *consoleGate) waitBanner() {
	g.bannerMu.Lock()
	for !g.done {
		g.cond.Wait()
	}
	g.bannerMu.Unlock()
}

// resetBanner marks a banner print as about to start. Call exactly once
// before emitting the banner.
func (g *consoleGate) resetBanner() {
	g.bannerMu.Lock()
	g.done = false
	g.bannerMu.Unlock()
}

// markBannerDone marks the banner as finished and wakes every waiter. Call
// exactly once after the banner is fully written.
func (g *consoleGate) markBannerDone() {
	g.bannerMu.Lock()
	g.done = true
	g.bannerMu.Unlock()
	g.cond.Broadcast()
}

// AcquireConsole locks the process-wide console for an external multi-line
// write. Pair with ReleaseConsole.
func AcquireConsole() { sharedConsole.acquire() }

// ReleaseConsole releases the console lock taken by AcquireConsole.
func ReleaseConsole() { sharedConsole.release() }

// ResetBanner announces that a one-shot startup banner is about to print.
// Console-synchronized log writes block until MarkBannerDone.
func ResetBanner() { sharedConsole.resetBanner() }

// MarkBannerDone announces that the startup banner finished printing and
// wakes all blocked log writes.
func MarkBannerDone() { sharedConsole.markBannerDone() }

// WaitForBanner blocks the caller until no banner print is in flight.
func WaitForBanner() { sharedConsole.waitBanner() }
