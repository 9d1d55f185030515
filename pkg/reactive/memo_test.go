package reactive

import "testing"

func TestMemoLazy(t *testing.T) {
	computes := 0
	m := NewMemo(func() int {
		computes++
		return 42
	})

	if computes != 0 {
		t.Errorf("memo should not compute before first read, computed %d times", computes)
	}

	if m.Get() != 42 {
		t.Errorf("expected 42, got %d", m.Get())
	}
	_ = m.Get()
	if computes != 1 {
		t.Errorf("expected 1 computation, got %d", computes)
	}
}

func TestMemoInvalidation(t *testing.T) {
	count := NewSignal(1)
	computes := 0
	doubled := NewMemo(func() int {
		computes++
		return count.Get() * 2
	})

	if doubled.Get() != 2 {
		t.Errorf("expected 2, got %d", doubled.Get())
	}

	count.Set(5)
	if doubled.Get() != 10 {
		t.Errorf("expected 10, got %d", doubled.Get())
	}

	// Multiple writes between reads cost a single recomputation.
	count.Set(6)
	count.Set(7)
	before := computes
	if doubled.Get() != 14 {
		t.Errorf("expected 14, got %d", doubled.Get())
	}
	if computes != before+1 {
		t.Errorf("expected 1 recomputation, got %d", computes-before)
	}
}

func TestMemoChaining(t *testing.T) {
	base := NewSignal(2)
	doubled := NewMemo(func() int { return base.Get() * 2 })
	quadrupled := NewMemo(func() int { return doubled.Get() * 2 })

	if quadrupled.Get() != 8 {
		t.Errorf("expected 8, got %d", quadrupled.Get())
	}

	base.Set(3)
	if quadrupled.Get() != 12 {
		t.Errorf("expected 12, got %d", quadrupled.Get())
	}
}

func TestMemoNotifiesSubscribers(t *testing.T) {
	count := NewSignal(0)
	m := NewMemo(func() int { return count.Get() })
	listener := newTestListener()

	WithListener(listener, func() {
		_ = m.Get()
	})

	count.Set(1)
	if listener.dirtyCount() != 1 {
		t.Errorf("expected 1 notification through memo, got %d", listener.dirtyCount())
	}
}
