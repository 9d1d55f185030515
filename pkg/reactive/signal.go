package reactive

import (
	"reflect"
	"sync"
)

// signalBase provides type-erased subscriber management. It is embedded in
// Signal[T] and Memo[T] so both can be subscribed to uniformly.
type signalBase struct {
	id uint64

	subs  []Listener
	subMu sync.RWMutex
}

// subscribe adds a listener, deduplicating by listener ID.
func (s *signalBase) subscribe(l Listener) {
	if l == nil {
		return
	}

	s.subMu.Lock()
	defer s.subMu.Unlock()

	lid := l.ID()
	for _, existing := range s.subs {
		if existing.ID() == lid {
			return
		}
	}
	s.subs = append(s.subs, l)
}

func (s *signalBase) unsubscribe(l Listener) {
	if l == nil {
		return
	}

	s.subMu.Lock()
	defer s.subMu.Unlock()

	lid := l.ID()
	for i, existing := range s.subs {
		if existing.ID() == lid {
			// Order is irrelevant, swap-remove.
			s.subs[i] = s.subs[len(s.subs)-1]
			s.subs = s.subs[:len(s.subs)-1]
			return
		}
	}
}

// notifySubscribers marks every subscriber dirty. Subscribers are copied
// before notification so no lock is held while listener code runs. Inside a
// batch, notifications are queued and deduplicated instead.
func (s *signalBase) notifySubscribers() {
	s.subMu.RLock()
	subs := make([]Listener, len(s.subs))
	copy(subs, s.subs)
	s.subMu.RUnlock()

	if getBatchDepth() > 0 {
		for _, sub := range subs {
			queuePendingUpdate(sub)
		}
		return
	}

	for _, sub := range subs {
		sub.MarkDirty()
	}
}

// Signal is a reactive value container. Reading a Signal during a tracked
// context (memo computation or effect execution) subscribes the current
// listener to changes.
type Signal[T any] struct {
	base signalBase

	value T
	mu    sync.RWMutex

	// equal decides whether Set actually changed the value.
	// nil means defaultEquals.
	equal func(T, T) bool
}

// NewSignal creates a signal holding the given initial value.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{
		base:  signalBase{id: nextID()},
		value: initial,
	}
}

// Get returns the current value and subscribes the current listener, if any.
func (s *Signal[T]) Get() T {
	s.mu.RLock()
	value := s.value
	s.mu.RUnlock()

	// Dependency tracking happens after the value lock is released.
	if listener := getCurrentListener(); listener != nil {
		s.base.subscribe(listener)
		if src, ok := listener.(sourceTracker); ok {
			src.addSource(&s.base)
		}
	}

	return value
}

// Peek returns the current value without creating a dependency.
func (s *Signal[T]) Peek() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set updates the value and notifies subscribers if it changed.
func (s *Signal[T]) Set(value T) {
	s.mu.Lock()
	changed := !s.equals(s.value, value)
	if changed {
		s.value = value
	}
	s.mu.Unlock()

	if changed {
		s.base.notifySubscribers()
	}
}

// Update atomically transforms the value with fn.
func (s *Signal[T]) Update(fn func(T) T) {
	s.mu.Lock()
	next := fn(s.value)
	changed := !s.equals(s.value, next)
	if changed {
		s.value = next
	}
	s.mu.Unlock()

	if changed {
		s.base.notifySubscribers()
	}
}

// WithEquals configures a custom equality function and returns the signal.
// Useful when reflect.DeepEqual is too expensive or semantically wrong.
func (s *Signal[T]) WithEquals(fn func(T, T) bool) *Signal[T] {
	s.equal = fn
	return s
}

// ID returns the unique identifier for this signal.
func (s *Signal[T]) ID() uint64 {
	return s.base.id
}

func (s *Signal[T]) equals(a, b T) bool {
	if s.equal != nil {
		return s.equal(a, b)
	}
	return defaultEquals(a, b)
}

// defaultEquals uses == when the dynamic type is comparable and falls back
// to reflect.DeepEqual for slices, maps, and structs containing them.
func defaultEquals[T any](a, b T) bool {
	av, bv := any(a), any(b)
	if av == nil || bv == nil {
		return av == bv
	}
	if t := reflect.TypeOf(av); t.Comparable() && t == reflect.TypeOf(bv) {
		return av == bv
	}
	return reflect.DeepEqual(a, b)
}

// sourceTracker is implemented by listeners (memos, effects) that record
// their sources so they can unsubscribe before re-running.
type sourceTracker interface {
	Listener
	addSource(source *signalBase)
}
