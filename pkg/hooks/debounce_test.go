package hooks

import (
	"testing"
	"time"

	"github.com/ShubSpyder/custom-hooks/pkg/reactive"
)

// waitFor polls until cond holds or the deadline passes.
func waitFor(t *testing.T, d time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(2 * time.Millisecond)
	}
	return cond()
}

func TestDebouncedBurstEmitsOnceWithLastValue(t *testing.T) {
	d := NewDebounced(0)
	defer d.Stop()

	var emissions []int
	reactive.CreateEffect(func() reactive.Cleanup {
		emissions = append(emissions, d.Value())
		return nil
	})
	// Effect records the initial value immediately.
	if len(emissions) != 1 || emissions[0] != 0 {
		t.Fatalf("expected initial emission [0], got %v", emissions)
	}

	// Burst: calls spaced well under the delay.
	d.Observe(1, 80*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	d.Observe(2, 80*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	d.Observe(3, 80*time.Millisecond)

	if !waitFor(t, time.Second, func() bool { return d.Peek() == 3 }) {
		t.Fatalf("expected published value 3, got %v", d.Peek())
	}
	// Exactly one emission for the whole burst.
	if len(emissions) != 2 || emissions[1] != 3 {
		t.Errorf("expected emissions [0 3], got %v", emissions)
	}
}

func TestDebouncedSpacedCallsEachEmit(t *testing.T) {
	d := NewDebounced("")
	defer d.Stop()

	d.Observe("a", 10*time.Millisecond)
	if !waitFor(t, time.Second, func() bool { return d.Peek() == "a" }) {
		t.Fatalf("first emission missing, got %q", d.Peek())
	}

	d.Observe("b", 10*time.Millisecond)
	if !waitFor(t, time.Second, func() bool { return d.Peek() == "b" }) {
		t.Fatalf("second emission missing, got %q", d.Peek())
	}
}

func TestDebouncedTimingScenario(t *testing.T) {
	// Observe(1, 300ms) at t=0, Observe(2, 300ms) at t=100ms:
	// exactly one emission of 2 at roughly t=400ms.
	d := NewDebounced(0)
	defer d.Stop()

	start := time.Now()
	d.Observe(1, 300*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	d.Observe(2, 300*time.Millisecond)

	// At t≈250ms the first timer would have fired had it not been
	// cancelled.
	time.Sleep(150 * time.Millisecond)
	if got := d.Peek(); got != 0 {
		t.Fatalf("premature emission %v at %v", got, time.Since(start))
	}

	if !waitFor(t, time.Second, func() bool { return d.Peek() == 2 }) {
		t.Fatalf("expected 2, got %v", d.Peek())
	}
	if elapsed := time.Since(start); elapsed < 380*time.Millisecond {
		t.Errorf("emission arrived too early: %v", elapsed)
	}
}

func TestDebouncedDelayChangeReschedules(t *testing.T) {
	d := NewDebounced(0)
	defer d.Stop()

	d.Observe(1, 500*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	// Shrinking the delay mid-burst reschedules from now.
	start := time.Now()
	d.Observe(2, 30*time.Millisecond)

	if !waitFor(t, time.Second, func() bool { return d.Peek() == 2 }) {
		t.Fatalf("expected 2, got %v", d.Peek())
	}
	if elapsed := time.Since(start); elapsed > 300*time.Millisecond {
		t.Errorf("reschedule used stale delay: emission after %v", elapsed)
	}
}

func TestDebouncedZeroDelayIsAsynchronous(t *testing.T) {
	d := NewDebounced(0)
	defer d.Stop()

	d.Observe(1, 0)
	// Not synchronous: the published value is still the initial one
	// immediately after Observe returns... but the timer may fire at any
	// moment, so only assert convergence.
	if !waitFor(t, time.Second, func() bool { return d.Peek() == 1 }) {
		t.Fatalf("zero-delay observe never emitted, got %v", d.Peek())
	}
}

func TestDebouncedStopSuppressesEmission(t *testing.T) {
	// Observe("a", 200ms) at t=0, Stop at t=50ms: zero emissions ever.
	d := NewDebounced("init")

	d.Observe("a", 200*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	d.Stop()

	time.Sleep(300 * time.Millisecond)
	if got := d.Peek(); got != "init" {
		t.Errorf("emission after teardown: %q", got)
	}
}

func TestDebouncedObserveAfterStopIsNoop(t *testing.T) {
	d := NewDebounced(0)
	d.Stop()

	d.Observe(9, time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	if got := d.Peek(); got != 0 {
		t.Errorf("observe after stop emitted %v", got)
	}
	if d.Pending() {
		t.Error("stopped propagator reports a pending timer")
	}
}

func TestDebouncedOwnerTeardownCancels(t *testing.T) {
	owner := reactive.NewOwner(nil)
	var d *Debounced[int]

	reactive.WithOwner(owner, func() {
		d = NewDebounced(0)
	})

	d.Observe(5, 50*time.Millisecond)
	owner.Dispose()

	time.Sleep(150 * time.Millisecond)
	if got := d.Peek(); got != 0 {
		t.Errorf("emission after owner dispose: %v", got)
	}
}

func TestDebouncedIdenticalValuesStillReset(t *testing.T) {
	d := NewDebounced(0)
	defer d.Stop()

	start := time.Now()
	d.Observe(7, 100*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	// Same value again: timer must reset, pushing the emission out.
	d.Observe(7, 100*time.Millisecond)

	time.Sleep(60 * time.Millisecond)
	// t≈120ms: the first schedule would have fired by now; the reset one
	// has ~40ms to go.
	if d.Peek() == 7 && time.Since(start) < 150*time.Millisecond {
		t.Error("identical value did not reset the timer")
	}

	if !waitFor(t, time.Second, func() bool { return d.Peek() == 7 }) {
		t.Fatalf("expected eventual emission of 7, got %v", d.Peek())
	}
}

func TestDebouncedSingleLiveTimer(t *testing.T) {
	d := NewDebounced(0)
	defer d.Stop()

	for i := 0; i < 50; i++ {
		d.Observe(i, 40*time.Millisecond)
	}
	if !d.Pending() {
		t.Error("expected a pending timer during a burst")
	}

	if !waitFor(t, time.Second, func() bool { return d.Peek() == 49 }) {
		t.Fatalf("expected 49, got %v", d.Peek())
	}
	if d.Pending() {
		t.Error("timer still pending after emission")
	}
}

func TestDebouncedStopRacingZeroDelayFire(t *testing.T) {
	// Stop issued right behind a zero-delay Observe: the timer callback
	// may already be past its staleness check. Either outcome is fine,
	// but the published value must never move again after Stop returns.
	for i := 0; i < 100; i++ {
		d := NewDebounced(0)
		d.Observe(1, 0)
		d.Stop()

		time.Sleep(time.Millisecond)
		settled := d.Peek()
		if settled != 0 && settled != 1 {
			t.Fatalf("unexpected value %d", settled)
		}

		d.Observe(2, 0)
		time.Sleep(time.Millisecond)
		if got := d.Peek(); got != settled {
			t.Fatalf("value moved after stop: %d -> %d", settled, got)
		}
	}
}
