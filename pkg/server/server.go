package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "custom-hooks"

// Options configures a Server.
type Options struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// App is mounted on every new session, on the session loop. Hooks
	// created inside capture the session as their reactive.Ctx.
	App func(*Session)

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// Registry defaults to prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// Server is the HTTP and WebSocket front of the demo runtime.
type Server struct {
	addr    string
	app     func(*Session)
	log     *slog.Logger
	metrics *Metrics
	tracer  trace.Tracer

	mu       sync.Mutex
	sessions map[string]*Session

	apiCount atomic.Int64

	http *http.Server
}

// New builds a Server with its routes mounted.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.DefaultRegisterer
	}

	srv := &Server{
		addr:     opts.Addr,
		app:      opts.App,
		log:      opts.Logger,
		metrics:  NewMetrics(opts.Registry),
		tracer:   otel.Tracer(tracerName),
		sessions: make(map[string]*Session),
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", srv.handleHealth)
	r.Get("/api/count", srv.handleCount)
	r.Get("/ws", srv.handleWS)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	srv.http = &http.Server{
		Addr:         opts.Addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // WebSocket connections stay open
	}
	return srv
}

// Handler exposes the router, mainly for httptest.
func (srv *Server) Handler() http.Handler { return srv.http.Handler }

// ListenAndServe blocks serving HTTP until Shutdown.
func (srv *Server) ListenAndServe() error {
	srv.log.Info("listening", "addr", srv.addr)
	if err := srv.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

// Shutdown stops accepting connections and closes every live session.
func (srv *Server) Shutdown(ctx context.Context) error {
	err := srv.http.Shutdown(ctx)

	srv.mu.Lock()
	sessions := make([]*Session, 0, len(srv.sessions))
	for _, s := range srv.sessions {
		sessions = append(sessions, s)
	}
	srv.sessions = make(map[string]*Session)
	srv.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
	return err
}

// SessionCount reports the number of live sessions.
func (srv *Server) SessionCount() int {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	return len(srv.sessions)
}

func (srv *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleCount serves a monotonically increasing counter; the fetch hook
// in the counter example polls it.
func (srv *Server) handleCount(w http.ResponseWriter, r *http.Request) {
	n := srv.apiCount.Add(1)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int64{"count": n})
}

func (srv *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		srv.metrics.WSErrors.WithLabelValues("upgrade").Inc()
		srv.log.Warn("websocket upgrade failed", "err", err)
		return
	}

	session := NewSession(newSessionID(), srv.log, srv.metrics, srv.tracer)
	srv.mu.Lock()
	srv.sessions[session.ID()] = session
	srv.mu.Unlock()

	srv.log.Info("session opened", "session", session.ID(), "remote", r.RemoteAddr)

	if srv.app != nil {
		session.Run(func() { srv.app(session) })
	}

	go srv.writePump(conn, session)
	srv.readPump(conn, session)

	conn.Close()
	session.Close()

	srv.mu.Lock()
	delete(srv.sessions, session.ID())
	srv.mu.Unlock()

	srv.log.Info("session closed", "session", session.ID())
}

func newSessionID() string {
	var b [16]byte
	rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
