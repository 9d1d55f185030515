// Package hooks provides small UI state-management utilities built on the
// reactive core: debounced value propagation, async data fetching, persisted
// values, event subscriptions, media queries, scroll position, hover
// detection, and animation frames.
//
// Every hook follows the same lifecycle: it acquires its timer or
// subscription when created, exposes its latest state through signals, and
// releases everything on teardown. Created under an Owner (reactive.WithOwner),
// teardown is automatic when the owner is disposed; otherwise the hook's
// Stop or Close method tears it down explicitly. Created under a session
// Ctx, asynchronous callbacks are delivered through Ctx.Dispatch so all
// state mutation stays on the session loop.
package hooks
