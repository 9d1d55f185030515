package reactive

// Listener is anything that can be notified when a dependency changes.
// Memos and effects implement it; tests provide fakes.
type Listener interface {
	// MarkDirty notifies the listener that one of its dependencies changed.
	// For memos this invalidates the cached value; for effects it schedules
	// a re-run.
	MarkDirty()

	// ID returns a unique identifier, used to deduplicate notifications.
	ID() uint64
}

// Cleanup releases whatever an effect or hook acquired. It is called before
// an effect re-runs and when the owning scope is disposed.
type Cleanup func()
