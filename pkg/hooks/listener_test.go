package hooks

import (
	"sync/atomic"
	"testing"

	"github.com/ShubSpyder/custom-hooks/pkg/events"
	"github.com/ShubSpyder/custom-hooks/pkg/reactive"
)

func TestListenerDelivery(t *testing.T) {
	bus := events.NewBus()

	var got atomic.Int32
	l := NewListener(bus, "btn", events.Click, func(events.Event) {
		got.Add(1)
	})
	defer l.Close()

	bus.Publish(events.Event{Target: "btn", Name: events.Click})
	bus.Publish(events.Event{Target: "btn", Name: events.Click})
	bus.Publish(events.Event{Target: "other", Name: events.Click})

	if n := got.Load(); n != 2 {
		t.Errorf("expected 2 deliveries, got %d", n)
	}
}

func TestListenerRebindSameIdentityIsNoop(t *testing.T) {
	bus := events.NewBus()
	l := NewListener(bus, "btn", events.Click, func(events.Event) {})
	defer l.Close()

	if n := bus.SubscriberCount("btn", events.Click); n != 1 {
		t.Fatalf("expected 1 subscriber, got %d", n)
	}

	l.Rebind("btn", events.Click)

	if n := bus.SubscriberCount("btn", events.Click); n != 1 {
		t.Errorf("identical rebind should keep the subscription, got %d subscribers", n)
	}
}

func TestListenerRebindSwitchesSubscription(t *testing.T) {
	bus := events.NewBus()

	var got atomic.Int32
	l := NewListener(bus, "btn", events.Click, func(events.Event) {
		got.Add(1)
	})
	defer l.Close()

	l.Rebind("panel", events.Scroll)

	bus.Publish(events.Event{Target: "btn", Name: events.Click})
	if n := got.Load(); n != 0 {
		t.Errorf("old binding still firing, got %d", n)
	}

	bus.Publish(events.Event{Target: "panel", Name: events.Scroll, Data: events.ScrollEvent{Top: 10}})
	if n := got.Load(); n != 1 {
		t.Errorf("new binding not firing, got %d", n)
	}
	if n := bus.SubscriberCount("btn", events.Click); n != 0 {
		t.Errorf("old subscription leaked, %d subscribers remain", n)
	}
}

func TestListenerCloseSuppressesCallbacks(t *testing.T) {
	bus := events.NewBus()

	var got atomic.Int32
	l := NewListener(bus, "btn", events.Click, func(events.Event) {
		got.Add(1)
	})

	l.Close()
	l.Close() // idempotent

	bus.Publish(events.Event{Target: "btn", Name: events.Click})
	if n := got.Load(); n != 0 {
		t.Errorf("callback ran after close, got %d", n)
	}
	if n := bus.SubscriberCount("btn", events.Click); n != 0 {
		t.Errorf("subscription leaked after close, %d remain", n)
	}
}

func TestListenerOwnerDisposeUnsubscribes(t *testing.T) {
	bus := events.NewBus()

	var got atomic.Int32
	owner := reactive.NewOwner(nil)
	reactive.WithOwner(owner, func() {
		NewListener(bus, "btn", events.Click, func(events.Event) {
			got.Add(1)
		})
	})

	owner.Dispose()

	bus.Publish(events.Event{Target: "btn", Name: events.Click})
	if n := got.Load(); n != 0 {
		t.Errorf("callback ran after owner dispose, got %d", n)
	}
}
