package reactive

import (
	"sync"
	"sync/atomic"
)

// Effect is a reactive side effect. It runs immediately when created and
// re-runs whenever any signal or memo it read during execution changes.
// The effect function may return a Cleanup that is called before the next
// run and when the effect is disposed.
type Effect struct {
	id uint64

	fn      func() Cleanup
	cleanup Cleanup

	sources   []*signalBase
	sourcesMu sync.Mutex

	owner *Owner

	// pending is set while a re-run is scheduled.
	pending  atomic.Bool
	disposed atomic.Bool
}

// MarkDirty schedules the effect to re-run. Implements Listener.
func (e *Effect) MarkDirty() {
	if e.disposed.Load() {
		return
	}

	// CAS so a dirty effect is scheduled at most once.
	if e.pending.CompareAndSwap(false, true) {
		if e.owner != nil {
			e.owner.scheduleEffect(e)
		} else {
			// No owner to defer to; run synchronously.
			e.run()
		}
	}
}

// ID implements Listener.
func (e *Effect) ID() uint64 {
	return e.id
}

// run executes the effect function, re-establishing dependencies.
func (e *Effect) run() {
	if e.disposed.Load() {
		return
	}

	e.pending.Store(false)

	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}

	e.sourcesMu.Lock()
	for _, source := range e.sources {
		source.unsubscribe(e)
	}
	e.sources = e.sources[:0]
	e.sourcesMu.Unlock()

	old := setCurrentListener(e)
	e.cleanup = e.fn()
	setCurrentListener(old)
}

// addSource implements sourceTracker.
func (e *Effect) addSource(source *signalBase) {
	e.sourcesMu.Lock()
	defer e.sourcesMu.Unlock()

	for _, s := range e.sources {
		if s == source {
			return
		}
	}
	e.sources = append(e.sources, source)
}

// dispose runs the cleanup and unsubscribes from all sources.
func (e *Effect) dispose() {
	if e.disposed.Swap(true) {
		return
	}

	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}

	e.sourcesMu.Lock()
	for _, source := range e.sources {
		source.unsubscribe(e)
	}
	e.sources = nil
	e.sourcesMu.Unlock()
}

var _ sourceTracker = (*Effect)(nil)

// CreateEffect creates an effect under the current owner and runs it once
// immediately. The effect re-runs when any signal or memo it reads changes.
//
//	reactive.CreateEffect(func() reactive.Cleanup {
//	    fmt.Println("count is", count.Get())
//	    return nil
//	})
func CreateEffect(fn func() Cleanup) *Effect {
	owner := getCurrentOwner()

	e := &Effect{
		id:    nextID(),
		fn:    fn,
		owner: owner,
	}

	if owner != nil {
		owner.registerEffect(e)
	}

	e.run()
	return e
}

// OnMount runs fn once when the effect is created and never re-runs it,
// regardless of what fn reads.
func OnMount(fn func()) {
	CreateEffect(func() Cleanup {
		Untracked(fn)
		return nil
	})
}

// OnUnmount registers fn to run when the current owner is disposed.
func OnUnmount(fn func()) {
	if owner := getCurrentOwner(); owner != nil {
		owner.OnCleanup(fn)
	}
}

// OnUpdate creates an effect whose callback is skipped on the first run.
// deps establishes the tracked dependencies; callback runs only when they
// change afterwards.
func OnUpdate(deps func(), callback func()) {
	first := true
	CreateEffect(func() Cleanup {
		deps()
		if first {
			first = false
			return nil
		}
		callback()
		return nil
	})
}
