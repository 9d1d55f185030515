package reactive

import "testing"

func TestBatchCoalescesNotifications(t *testing.T) {
	first := NewSignal("a")
	last := NewSignal("b")
	listener := newTestListener()

	WithListener(listener, func() {
		_ = first.Get()
		_ = last.Get()
	})

	Batch(func() {
		first.Set("x")
		last.Set("y")
		if listener.dirtyCount() != 0 {
			t.Errorf("notifications inside batch should be queued, got %d", listener.dirtyCount())
		}
	})

	if listener.dirtyCount() != 1 {
		t.Errorf("expected 1 coalesced notification, got %d", listener.dirtyCount())
	}
}

func TestBatchNested(t *testing.T) {
	sig := NewSignal(0)
	listener := newTestListener()

	WithListener(listener, func() {
		_ = sig.Get()
	})

	Batch(func() {
		sig.Set(1)
		Batch(func() {
			sig.Set(2)
		})
		if listener.dirtyCount() != 0 {
			t.Error("inner batch completion must not flush the outer batch")
		}
	})

	if listener.dirtyCount() != 1 {
		t.Errorf("expected 1 notification after outermost batch, got %d", listener.dirtyCount())
	}
}

func TestUntracked(t *testing.T) {
	sig := NewSignal(0)
	listener := newTestListener()

	WithListener(listener, func() {
		Untracked(func() {
			_ = sig.Get()
		})
	})

	sig.Set(1)
	if listener.dirtyCount() != 0 {
		t.Errorf("untracked read must not subscribe, got %d", listener.dirtyCount())
	}
}
