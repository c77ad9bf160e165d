// Package guard provides a dismissible scope guard: a deferred action that
// runs at scope exit unless released, in the shape Go's defer makes natural:
//
//	g := guard.New(func() { tx.Rollback() })
//	defer g.Run()
//	// ... work ...
//	tx.Commit()
//	g.Dismiss()
//
// The action runs at most once, and a panic inside it is swallowed — cleanup
// failures must never replace the error that triggered the cleanup.
package guard

// Guard holds a pending cleanup action.
type Guard struct {
	fn     func()
	fired  bool
	active bool
}

// New returns a Guard armed with fn. A nil fn yields an inert guard.
func New(fn func()) *Guard {
	return &Guard{fn: fn, active: fn != nil}
}

// Run executes the action if the guard is still armed. Safe to call more
// than once; only the first call fires.
func (g *Guard) Run() {
	if g == nil || !g.active || g.fired {
		return
	}
	g.fired = true
	defer func() {
		// The guard's own failure stays inside the guard.
		_ = recover()
	}()
	g.fn()
}

// Dismiss disarms the guard; a later Run does nothing.
func (g *Guard) Dismiss() {
	if g != nil {
		g.active = false
	}
}
