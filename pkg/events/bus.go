package events

import (
	"sync"
	"time"
)

// Event is a single occurrence on a target. Data holds the typed payload
// (ScrollEvent, PointerEvent, ...) or nil for payload-free events.
type Event struct {
	// Target identifies the element or surface the event occurred on.
	Target string

	// Name is the event kind: "click", "scroll", "resize", ...
	Name string

	// Time is when the event was observed.
	Time time.Time

	// Data is the typed payload, if any.
	Data any
}

type subKey struct {
	target string
	name   string
}

// Bus routes events to subscribers. Subscription and publication are safe
// for concurrent use; handlers run on the publishing goroutine.
type Bus struct {
	mu     sync.RWMutex
	subs   map[subKey]map[uint64]func(Event)
	nextID uint64
}

// NewBus creates an empty Bus.
func NewBus() *Bus {
	return &Bus{
		subs: make(map[subKey]map[uint64]func(Event)),
	}
}

// Subscribe registers fn for events named name on target. An empty target
// matches the name on every target. The returned function unsubscribes and
// is idempotent.
func (b *Bus) Subscribe(target, name string, fn func(Event)) (unsubscribe func()) {
	key := subKey{target: target, name: name}

	b.mu.Lock()
	b.nextID++
	id := b.nextID
	handlers := b.subs[key]
	if handlers == nil {
		handlers = make(map[uint64]func(Event))
		b.subs[key] = handlers
	}
	handlers[id] = fn
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			if handlers, ok := b.subs[key]; ok {
				delete(handlers, id)
				if len(handlers) == 0 {
					delete(b.subs, key)
				}
			}
			b.mu.Unlock()
		})
	}
}

// Publish delivers ev to subscribers of (target, name) and of ("", name).
// Handlers are copied out before invocation so a handler may unsubscribe
// or subscribe without deadlocking.
func (b *Bus) Publish(ev Event) {
	if ev.Time.IsZero() {
		ev.Time = time.Now()
	}

	b.mu.RLock()
	var handlers []func(Event)
	if m, ok := b.subs[subKey{target: ev.Target, name: ev.Name}]; ok {
		for _, fn := range m {
			handlers = append(handlers, fn)
		}
	}
	if ev.Target != "" {
		if m, ok := b.subs[subKey{target: "", name: ev.Name}]; ok {
			for _, fn := range m {
				handlers = append(handlers, fn)
			}
		}
	}
	b.mu.RUnlock()

	for _, fn := range handlers {
		fn(ev)
	}
}

// SubscriberCount reports how many handlers are registered for
// (target, name). Intended for tests and introspection.
func (b *Bus) SubscriberCount(target, name string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[subKey{target: target, name: name}])
}
