package reactive

// Batch groups multiple signal updates into a single notification phase.
// Notifications raised inside fn are queued, deduplicated by listener ID,
// and delivered once when the outermost batch completes.
//
//	reactive.Batch(func() {
//	    first.Set("John")
//	    last.Set("Doe")
//	})
func Batch(fn func()) {
	incrementBatchDepth()
	defer func() {
		if decrementBatchDepth() {
			processPendingUpdates()
		}
	}()
	fn()
}

func processPendingUpdates() {
	updates := drainPendingUpdates()
	if len(updates) == 0 {
		return
	}

	seen := make(map[uint64]bool, len(updates))
	for _, listener := range updates {
		id := listener.ID()
		if seen[id] {
			continue
		}
		seen[id] = true
		listener.MarkDirty()
	}
}

// Untracked runs fn without recording signal reads as dependencies.
// For a single read, Signal.Peek is clearer.
func Untracked(fn func()) {
	old := setCurrentListener(nil)
	defer setCurrentListener(old)
	fn()
}
