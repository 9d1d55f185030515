package reactive

import (
	"sync"
	"sync/atomic"
)

// Owner is a disposal scope for reactive primitives. Disposing an Owner
// disposes the effects and child owners it contains and runs registered
// cleanups, preventing stale callbacks from mutating state after teardown.
//
// Owners form a hierarchy mirroring the component or session structure:
// each scope creates an Owner whose parent is the enclosing scope's Owner.
type Owner struct {
	id uint64

	// parent is nil for a root Owner (typically a session).
	parent *Owner

	children   []*Owner
	childrenMu sync.Mutex

	effects   []*Effect
	effectsMu sync.Mutex

	cleanups   []func()
	cleanupsMu sync.Mutex

	// pendingEffects are dirty effects waiting for the next flush.
	pendingEffects   []*Effect
	pendingEffectsMu sync.Mutex

	disposed atomic.Bool
}

// NewOwner creates an Owner registered as a child of parent.
// A nil parent creates a root Owner.
func NewOwner(parent *Owner) *Owner {
	o := &Owner{
		id:     nextID(),
		parent: parent,
	}
	if parent != nil {
		parent.addChild(o)
	}
	return o
}

// ID returns the unique identifier for this Owner.
func (o *Owner) ID() uint64 {
	return o.id
}

// Parent returns the parent Owner, or nil for a root.
func (o *Owner) Parent() *Owner {
	return o.parent
}

// IsDisposed reports whether Dispose has been called.
func (o *Owner) IsDisposed() bool {
	return o.disposed.Load()
}

func (o *Owner) addChild(child *Owner) {
	o.childrenMu.Lock()
	defer o.childrenMu.Unlock()
	o.children = append(o.children, child)
}

func (o *Owner) removeChild(child *Owner) {
	o.childrenMu.Lock()
	defer o.childrenMu.Unlock()

	for i, c := range o.children {
		if c == child {
			o.children = append(o.children[:i], o.children[i+1:]...)
			return
		}
	}
}

func (o *Owner) registerEffect(e *Effect) {
	if o.disposed.Load() {
		return
	}
	o.effectsMu.Lock()
	defer o.effectsMu.Unlock()
	o.effects = append(o.effects, e)
}

// OnCleanup registers fn to run when this Owner is disposed. If the Owner
// is already disposed, fn runs immediately.
func (o *Owner) OnCleanup(fn func()) {
	if o.disposed.Load() {
		fn()
		return
	}
	o.cleanupsMu.Lock()
	defer o.cleanupsMu.Unlock()
	o.cleanups = append(o.cleanups, fn)
}

func (o *Owner) scheduleEffect(e *Effect) {
	if o.disposed.Load() {
		return
	}
	o.pendingEffectsMu.Lock()
	defer o.pendingEffectsMu.Unlock()
	o.pendingEffects = append(o.pendingEffects, e)
}

// RunPendingEffects flushes scheduled effects on this owner and its
// children. The session loop calls this after every dispatched function.
func (o *Owner) RunPendingEffects() {
	if o.disposed.Load() {
		return
	}

	o.pendingEffectsMu.Lock()
	effects := o.pendingEffects
	o.pendingEffects = nil
	o.pendingEffectsMu.Unlock()

	for _, e := range effects {
		if e.pending.Load() {
			e.run()
		}
	}

	o.childrenMu.Lock()
	children := make([]*Owner, len(o.children))
	copy(children, o.children)
	o.childrenMu.Unlock()

	for _, child := range children {
		child.RunPendingEffects()
	}
}

// HasPendingEffects reports whether this owner or any child has scheduled
// effects waiting for a flush.
func (o *Owner) HasPendingEffects() bool {
	if o.disposed.Load() {
		return false
	}

	o.pendingEffectsMu.Lock()
	pending := len(o.pendingEffects) > 0
	o.pendingEffectsMu.Unlock()
	if pending {
		return true
	}

	o.childrenMu.Lock()
	children := make([]*Owner, len(o.children))
	copy(children, o.children)
	o.childrenMu.Unlock()

	for _, child := range children {
		if child.HasPendingEffects() {
			return true
		}
	}
	return false
}

// Dispose tears down this Owner: children first (in reverse creation
// order), then effects, then cleanups in reverse registration order.
// Dispose is idempotent.
func (o *Owner) Dispose() {
	if o.disposed.Swap(true) {
		return
	}

	if o.parent != nil {
		o.parent.removeChild(o)
	}

	o.childrenMu.Lock()
	children := make([]*Owner, len(o.children))
	copy(children, o.children)
	o.children = nil
	o.childrenMu.Unlock()

	for i := len(children) - 1; i >= 0; i-- {
		children[i].Dispose()
	}

	o.effectsMu.Lock()
	effects := o.effects
	o.effects = nil
	o.effectsMu.Unlock()

	for _, e := range effects {
		e.dispose()
	}

	o.cleanupsMu.Lock()
	cleanups := o.cleanups
	o.cleanups = nil
	o.cleanupsMu.Unlock()

	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}

	o.pendingEffectsMu.Lock()
	o.pendingEffects = nil
	o.pendingEffectsMu.Unlock()
}
