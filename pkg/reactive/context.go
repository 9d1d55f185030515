package reactive

import "context"

// Ctx is the runtime context available during effects and event handlers.
// It connects asynchronous work back to the single-threaded session loop.
type Ctx interface {
	// Dispatch queues fn to run on the session's event loop. Safe to call
	// from any goroutine; the correct way to update signals from timers,
	// fetches, and subscriptions.
	Dispatch(fn func())

	// StdContext returns the standard library context for the session.
	// Cancelled when the session closes.
	StdContext() context.Context
}

// UseCtx returns the current runtime context, or nil when called outside a
// session scope. Hooks capture it at creation time so later timer and
// goroutine callbacks re-enter the loop via Dispatch.
func UseCtx() Ctx {
	return getTrackingContext().currentCtx
}

// WithCtx runs fn with c as the ambient runtime context. The session loop
// establishes this around every dispatched function.
func WithCtx(c Ctx, fn func()) {
	tc := getTrackingContext()
	old := tc.currentCtx
	tc.currentCtx = c
	defer func() { tc.currentCtx = old }()
	fn()
}
