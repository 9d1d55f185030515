package hooks

import (
	"sync"

	"github.com/ShubSpyder/custom-hooks/pkg/events"
	"github.com/ShubSpyder/custom-hooks/pkg/reactive"
)

// Listener subscribes a callback to one (target, name) pair on a bus and
// owns the subscription: teardown or an identity change of the inputs
// unsubscribes, so no callback runs against a dead scope.
type Listener struct {
	bus      *events.Bus
	fn       func(events.Event)
	dispatch func(func())

	mu     sync.Mutex
	target string
	name   string
	unsub  func()
	closed bool
}

// NewListener subscribes fn to events named name on target. Under an
// Owner, Close is registered as a cleanup; under a session Ctx, callbacks
// are delivered on the loop.
func NewListener(bus *events.Bus, target, name string, fn func(events.Event)) *Listener {
	l := &Listener{
		bus:    bus,
		fn:     fn,
		target: target,
		name:   name,
	}
	if ctx := reactive.UseCtx(); ctx != nil {
		l.dispatch = ctx.Dispatch
	}
	l.unsub = bus.Subscribe(target, name, l.deliver)
	reactive.OnUnmount(l.Close)
	return l
}

// deliver routes one event to the callback, dropping it if the listener
// closed in the meantime.
func (l *Listener) deliver(ev events.Event) {
	run := func() {
		l.mu.Lock()
		closed := l.closed
		l.mu.Unlock()
		if closed {
			return
		}
		l.fn(ev)
	}
	if l.dispatch != nil {
		l.dispatch(run)
		return
	}
	run()
}

// Rebind switches the subscription to a new (target, name) pair. When the
// identity of both inputs is unchanged this is a no-op; otherwise the old
// subscription is released before the new one is registered.
func (l *Listener) Rebind(target, name string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed || (l.target == target && l.name == name) {
		return
	}

	l.unsub()
	l.target = target
	l.name = name
	l.unsub = l.bus.Subscribe(target, name, l.deliver)
}

// Target returns the currently bound target.
func (l *Listener) Target() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.target
}

// EventName returns the currently bound event name.
func (l *Listener) EventName() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.name
}

// Close unsubscribes. Idempotent; no callback runs after Close returns
// on the delivering goroutine.
func (l *Listener) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}
	l.closed = true
	l.unsub()
}
