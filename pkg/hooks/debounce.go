package hooks

import (
	"sync"
	"time"

	"github.com/ShubSpyder/custom-hooks/pkg/reactive"
)

// Debounced republishes a rapidly-changing input value only after it has
// stopped changing for the delay passed to Observe. Bursts of updates
// coalesce into a single trailing emission of the last value.
//
// The published value is a signal: Value() subscribes the current listener
// and lags the input by at least the delay during a burst, converging to
// the latest input once it quiesces.
type Debounced[T any] struct {
	out      *reactive.Signal[T]
	dispatch func(func())

	mu      sync.Mutex
	timer   *time.Timer
	seq     uint64
	stopped bool
}

// NewDebounced creates a propagator whose published value starts at
// initial. Under an Owner, Stop is registered as a cleanup; under a session
// Ctx, emissions are dispatched onto the loop.
func NewDebounced[T any](initial T) *Debounced[T] {
	d := &Debounced[T]{
		out: reactive.NewSignal(initial),
	}
	if ctx := reactive.UseCtx(); ctx != nil {
		d.dispatch = ctx.Dispatch
	}
	reactive.OnUnmount(d.Stop)
	return d
}

// Observe records a new input value. Any pending emission is cancelled and
// a fresh timer is scheduled for delay from now, so the delay is re-read on
// every call: changing it mid-burst reschedules with the new delay.
//
// A zero delay emits on the next scheduling opportunity, never
// synchronously. Identical repeated values still reset the timer.
func (d *Debounced[T]) Observe(value T, delay time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}

	d.seq++
	seq := d.seq
	d.timer = time.AfterFunc(delay, func() {
		d.fire(seq, value)
	})
}

// fire publishes value unless a newer Observe or Stop superseded seq.
// Stopping a *time.Timer does not guarantee the callback has not started,
// so the sequence check is the authoritative guard.
func (d *Debounced[T]) fire(seq uint64, value T) {
	d.mu.Lock()
	if d.stopped || seq != d.seq {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	dispatch := d.dispatch
	d.mu.Unlock()

	if dispatch == nil {
		// Direct path (no session loop): the staleness check above is
		// the commit point. A Stop landing between it and the Set
		// cannot retract this emission, only prevent later ones.
		d.out.Set(value)
		return
	}
	dispatch(func() {
		// Re-check on the loop: Stop may have run between the timer
		// firing and the dispatched function executing.
		d.mu.Lock()
		stale := d.stopped || seq != d.seq
		d.mu.Unlock()
		if stale {
			return
		}
		d.out.Set(value)
	})
}

// Value returns the published value, subscribing the current listener.
func (d *Debounced[T]) Value() T {
	return d.out.Get()
}

// Peek returns the published value without subscribing.
func (d *Debounced[T]) Peek() T {
	return d.out.Peek()
}

// Pending reports whether an emission is currently scheduled.
func (d *Debounced[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Stop tears the propagator down: the pending timer, if any, is cancelled
// and no emission ever occurs afterwards. Idempotent.
func (d *Debounced[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
