package server

import (
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"

	"github.com/ShubSpyder/custom-hooks/pkg/events"
	"github.com/ShubSpyder/custom-hooks/pkg/hooks"
	"github.com/ShubSpyder/custom-hooks/pkg/reactive"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s := NewSession("test", slog.Default(), NewMetrics(prometheus.NewRegistry()), otel.Tracer("test"))
	t.Cleanup(s.Close)
	return s
}

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

func TestSessionRunMountsOnLoop(t *testing.T) {
	s := newTestSession(t)

	var sawCtx reactive.Ctx
	s.Run(func() {
		sawCtx = reactive.UseCtx()
	})

	if sawCtx != s {
		t.Error("expected the session to be the ambient Ctx during Run")
	}
}

func TestSessionEventReachesListener(t *testing.T) {
	s := newTestSession(t)

	var clicks atomic.Int32
	s.Run(func() {
		hooks.NewListener(s.Bus(), "btn", events.Click, func(events.Event) {
			clicks.Add(1)
		})
	})

	s.HandleEvent(events.Event{Target: "btn", Name: events.Click})

	if !waitFor(t, time.Second, func() bool { return clicks.Load() == 1 }) {
		t.Errorf("expected 1 click, got %d", clicks.Load())
	}
}

func TestSessionFlushesEffectsAfterDispatch(t *testing.T) {
	s := newTestSession(t)

	var sig *reactive.Signal[int]
	var runs atomic.Int32
	s.Run(func() {
		sig = reactive.NewSignal(0)
		reactive.CreateEffect(func() reactive.Cleanup {
			sig.Get()
			runs.Add(1)
			return nil
		})
	})

	if got := runs.Load(); got != 1 {
		t.Fatalf("expected initial effect run, got %d", got)
	}

	s.Dispatch(func() { sig.Set(5) })

	if !waitFor(t, time.Second, func() bool { return runs.Load() == 2 }) {
		t.Errorf("expected effect re-run after dispatch, got %d", runs.Load())
	}
}

func TestSessionEmitDeliversPatch(t *testing.T) {
	s := newTestSession(t)

	s.Emit("count", 42)

	select {
	case patch := <-s.Patches():
		if patch.Target != "count" || patch.Value != 42 {
			t.Errorf("unexpected patch %+v", patch)
		}
	case <-time.After(time.Second):
		t.Fatal("no patch delivered")
	}
}

func TestSessionCloseRunsCleanups(t *testing.T) {
	s := NewSession("test", slog.Default(), NewMetrics(prometheus.NewRegistry()), otel.Tracer("test"))

	var cleaned atomic.Bool
	s.Run(func() {
		reactive.OnUnmount(func() { cleaned.Store(true) })
	})

	s.Close()
	if !cleaned.Load() {
		t.Error("expected cleanup to run on close")
	}
	if !s.Owner().IsDisposed() {
		t.Error("expected root owner disposed")
	}
}

func TestSessionDebouncedEmissionOnLoop(t *testing.T) {
	s := newTestSession(t)

	var emissions atomic.Int32
	var d *hooks.Debounced[string]
	s.Run(func() {
		d = hooks.NewDebounced("")
		reactive.OnUpdate(func() { d.Value() }, func() {
			emissions.Add(1)
		})
	})

	s.Dispatch(func() {
		d.Observe("a", 10*time.Millisecond)
		d.Observe("ab", 10*time.Millisecond)
		d.Observe("abc", 10*time.Millisecond)
	})

	if !waitFor(t, time.Second, func() bool { return emissions.Load() == 1 }) {
		t.Fatalf("expected exactly one emission, got %d", emissions.Load())
	}
	time.Sleep(30 * time.Millisecond)
	if got := emissions.Load(); got != 1 {
		t.Errorf("expected no further emissions, got %d", got)
	}
	if got := d.Peek(); got != "abc" {
		t.Errorf("expected final value abc, got %q", got)
	}
}

func TestSessionEmitAfterCloseIsDropped(t *testing.T) {
	s := NewSession("test", slog.Default(), NewMetrics(prometheus.NewRegistry()), otel.Tracer("test"))
	s.Close()

	// Must not panic on the closed patch channel.
	s.Emit("count", 1)

	if _, ok := <-s.Patches(); ok {
		t.Error("expected no patch after close")
	}
}

func TestSessionEmitRacingClose(t *testing.T) {
	s := NewSession("test", slog.Default(), NewMetrics(prometheus.NewRegistry()), otel.Tracer("test"))

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			s.Emit("tick", i)
		}
	}()

	s.Close()
	<-done

	for range s.Patches() {
		// Drain whatever landed before the close.
	}
}

func TestSessionDispatchAfterCloseIsDropped(t *testing.T) {
	s := NewSession("test", slog.Default(), NewMetrics(prometheus.NewRegistry()), otel.Tracer("test"))
	s.Close()

	var ran atomic.Bool
	s.Dispatch(func() { ran.Store(true) })

	time.Sleep(20 * time.Millisecond)
	if ran.Load() {
		t.Error("dispatched function ran after close")
	}
}
