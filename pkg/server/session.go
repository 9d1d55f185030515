package server

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ShubSpyder/custom-hooks/pkg/events"
	"github.com/ShubSpyder/custom-hooks/pkg/reactive"
)

// patchBuffer bounds the outbound patch queue per session. A slow client
// drops patches rather than stalling the loop.
const patchBuffer = 64

// Patch is one state update pushed to the client.
type Patch struct {
	Target string `json:"target"`
	Value  any    `json:"value"`
}

// Session is the single-goroutine dispatch loop behind one connection. It
// implements reactive.Ctx: all signal mutation for the connection happens
// on the loop, and pending effects are flushed after every dispatched
// function.
type Session struct {
	id      string
	log     *slog.Logger
	bus     *events.Bus
	owner   *reactive.Owner
	metrics *Metrics
	tracer  trace.Tracer

	ctx    context.Context
	cancel context.CancelFunc

	dispatch chan func()
	patches  chan Patch

	// patchMu orders Emit against the loop closing the patch channel.
	patchMu       sync.RWMutex
	patchesClosed bool

	closeOnce sync.Once
	done      chan struct{}
}

// NewSession creates a session and starts its loop.
func NewSession(id string, log *slog.Logger, metrics *Metrics, tracer trace.Tracer) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		id:       id,
		log:      log.With("session", id),
		bus:      events.NewBus(),
		owner:    reactive.NewOwner(nil),
		metrics:  metrics,
		tracer:   tracer,
		ctx:      ctx,
		cancel:   cancel,
		dispatch: make(chan func(), 256),
		patches:  make(chan Patch, patchBuffer),
		done:     make(chan struct{}),
	}

	s.metrics.SessionsTotal.Inc()
	s.metrics.ActiveSessions.Inc()

	go s.loop()
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Bus returns the session's event bus. Hooks subscribe here; the
// WebSocket transport publishes decoded client events into it.
func (s *Session) Bus() *events.Bus { return s.bus }

// Owner returns the root disposal scope for the session.
func (s *Session) Owner() *reactive.Owner { return s.owner }

// Dispatch queues fn onto the loop. Safe from any goroutine; fn is
// dropped if the session has closed.
func (s *Session) Dispatch(fn func()) {
	select {
	case s.dispatch <- fn:
	case <-s.ctx.Done():
	}
}

// StdContext returns the session's context, cancelled on Close.
func (s *Session) StdContext() context.Context { return s.ctx }

// Run executes setup on the loop and waits for it to finish. Use it to
// mount an app: hooks created inside capture the session as their Ctx
// and the session owner as their scope.
func (s *Session) Run(setup func()) {
	doneCh := make(chan struct{})
	s.Dispatch(func() {
		defer close(doneCh)
		setup()
	})
	select {
	case <-doneCh:
	case <-s.ctx.Done():
	}
}

// HandleEvent routes one client event through the loop, traced and
// counted. Subscribed hooks see it synchronously on the loop.
func (s *Session) HandleEvent(ev events.Event) {
	s.metrics.EventsTotal.WithLabelValues(ev.Name).Inc()

	s.Dispatch(func() {
		_, span := s.tracer.Start(s.ctx, "hooks.event",
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("hooks.session_id", s.id),
				attribute.String("hooks.event_name", ev.Name),
				attribute.String("hooks.event_target", ev.Target),
			),
		)
		defer span.End()

		start := time.Now()
		s.bus.Publish(ev)
		s.metrics.EventDuration.Observe(time.Since(start).Seconds())
	})
}

// Emit queues a state patch for the client and records the emission.
// Patches are dropped, with a log line, when the outbound buffer is
// full, and silently once the session has closed. Safe from any
// goroutine.
func (s *Session) Emit(target string, value any) {
	s.metrics.EmissionsTotal.Inc()

	s.patchMu.RLock()
	defer s.patchMu.RUnlock()
	if s.patchesClosed {
		return
	}

	select {
	case s.patches <- Patch{Target: target, Value: value}:
		s.metrics.PatchesSent.Inc()
	default:
		s.log.Warn("patch dropped, client too slow", "target", target)
	}
}

// Patches is the outbound patch stream, closed when the session closes.
func (s *Session) Patches() <-chan Patch { return s.patches }

// Close stops the loop, disposes the reactive scope, and closes the
// patch stream. Idempotent; returns after teardown completes.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.cancel()
		<-s.done
		s.metrics.ActiveSessions.Dec()
		s.log.Debug("session closed")
	})
	<-s.done
}

func (s *Session) loop() {
	defer close(s.done)
	defer s.closePatches()

	for {
		select {
		case fn := <-s.dispatch:
			s.runOnLoop(fn)
		case <-s.ctx.Done():
			// Teardown runs inside the session scope so cleanups that
			// dispatch see a live Ctx until the very end.
			reactive.WithCtx(s, func() {
				s.owner.Dispose()
			})
			return
		}
	}
}

// closePatches flips the closed flag under the write lock so no Emit
// holds the channel when it closes.
func (s *Session) closePatches() {
	s.patchMu.Lock()
	s.patchesClosed = true
	s.patchMu.Unlock()
	close(s.patches)
}

// runOnLoop establishes the session scope around fn, then flushes any
// effects it made dirty.
func (s *Session) runOnLoop(fn func()) {
	reactive.WithCtx(s, func() {
		reactive.WithOwner(s.owner, fn)
		s.owner.RunPendingEffects()
	})
}
