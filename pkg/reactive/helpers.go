package reactive

import (
	"sync/atomic"
	"time"
)

// dispatcher returns the function used to deliver asynchronous callbacks.
// Under a session Ctx callbacks go through Dispatch so they run on the
// loop; without one they run on the calling goroutine.
func dispatcher() func(func()) {
	if ctx := UseCtx(); ctx != nil {
		return ctx.Dispatch
	}
	return func(fn func()) { fn() }
}

// Timeout schedules fn to run once after d. The returned Cleanup cancels
// the timer; after cancellation fn never runs.
//
//	reactive.CreateEffect(func() reactive.Cleanup {
//	    return reactive.Timeout(5*time.Second, func() {
//	        showTooltip.Set(true)
//	    })
//	})
func Timeout(d time.Duration, fn func()) Cleanup {
	dispatch := dispatcher()

	// fired guards against the timer racing a concurrent cancel.
	var fired atomic.Bool
	timer := time.AfterFunc(d, func() {
		if fired.CompareAndSwap(false, true) {
			dispatch(fn)
		}
	})

	return func() {
		fired.Store(true)
		timer.Stop()
	}
}

// Interval schedules periodic ticks that run fn every d. The returned
// Cleanup stops future ticks. By default the first tick occurs after d;
// IntervalImmediate triggers one right away.
func Interval(d time.Duration, fn func(), opts ...IntervalOption) Cleanup {
	var cfg intervalConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	dispatch := dispatcher()
	done := make(chan struct{})

	go func() {
		if cfg.immediate {
			select {
			case <-done:
				return
			default:
				dispatch(fn)
			}
		}

		ticker := time.NewTicker(d)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				dispatch(fn)
			case <-done:
				return
			}
		}
	}()

	var stopped atomic.Bool
	return func() {
		if stopped.CompareAndSwap(false, true) {
			close(done)
		}
	}
}

type intervalConfig struct {
	immediate bool
}

// IntervalOption configures Interval.
type IntervalOption func(*intervalConfig)

// IntervalImmediate causes the first tick to fire immediately instead of
// after the interval duration.
func IntervalImmediate() IntervalOption {
	return func(cfg *intervalConfig) {
		cfg.immediate = true
	}
}

// Stream is an event source that supports subscription. The Subscribe
// method returns an unsubscribe function.
type Stream[T any] interface {
	Subscribe(handler func(T)) (unsubscribe func())
}

// Subscribe connects to a stream and invokes fn for each message on the
// session loop. The returned Cleanup unsubscribes.
//
//	reactive.CreateEffect(func() reactive.Cleanup {
//	    return reactive.Subscribe(scrolls, func(e events.ScrollEvent) {
//	        top.Set(e.Top)
//	    })
//	})
func Subscribe[T any](stream Stream[T], fn func(T)) Cleanup {
	dispatch := dispatcher()

	unsubscribe := stream.Subscribe(func(msg T) {
		dispatch(func() { fn(msg) })
	})
	return Cleanup(unsubscribe)
}
