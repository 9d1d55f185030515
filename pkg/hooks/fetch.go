package hooks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/ShubSpyder/custom-hooks/pkg/reactive"
)

// FetchState is the lifecycle state of a Fetch hook.
type FetchState int

const (
	FetchPending FetchState = iota // before the first request starts
	FetchLoading                   // request in flight
	FetchReady                     // body decoded successfully
	FetchFailed                    // transport, status, or decode failure
)

// String returns a human-readable state name.
func (s FetchState) String() string {
	switch s {
	case FetchPending:
		return "pending"
	case FetchLoading:
		return "loading"
	case FetchReady:
		return "ready"
	case FetchFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Fetch loads a JSON resource from a URL and exposes the result through
// signals. Responses superseded by a newer request — or by teardown — are
// discarded, so stale callbacks never mutate state.
type Fetch[T any] struct {
	client   *http.Client
	method   string
	header   http.Header
	body     []byte
	dispatch func(func())

	// base is cancelled on Close; every request derives from it.
	base   context.Context
	cancel context.CancelFunc

	state *reactive.Signal[FetchState]
	data  *reactive.Signal[T]
	err   *reactive.Signal[error]

	mu       sync.Mutex
	url      string
	seq      uint64
	inflight context.CancelFunc
}

// FetchOption configures a Fetch hook.
type FetchOption func(*fetchConfig)

type fetchConfig struct {
	client *http.Client
	method string
	header http.Header
	body   []byte
	ctx    context.Context
}

// FetchClient sets the http.Client used for requests.
func FetchClient(c *http.Client) FetchOption {
	return func(cfg *fetchConfig) { cfg.client = c }
}

// FetchMethod sets the request method. Default is GET.
func FetchMethod(method string) FetchOption {
	return func(cfg *fetchConfig) { cfg.method = method }
}

// FetchHeader adds a request header.
func FetchHeader(key, value string) FetchOption {
	return func(cfg *fetchConfig) {
		if cfg.header == nil {
			cfg.header = make(http.Header)
		}
		cfg.header.Add(key, value)
	}
}

// FetchBody sets the request body.
func FetchBody(body []byte) FetchOption {
	return func(cfg *fetchConfig) { cfg.body = body }
}

// FetchContext sets the base context requests derive from. Default is the
// session context when present, context.Background otherwise.
func FetchContext(ctx context.Context) FetchOption {
	return func(cfg *fetchConfig) { cfg.ctx = ctx }
}

// NewFetch creates the hook and starts the first request immediately.
// Under an Owner, Close is registered as a cleanup.
func NewFetch[T any](url string, opts ...FetchOption) *Fetch[T] {
	cfg := fetchConfig{
		client: http.DefaultClient,
		method: http.MethodGet,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	base := cfg.ctx
	if base == nil {
		if ctx := reactive.UseCtx(); ctx != nil {
			base = ctx.StdContext()
		} else {
			base = context.Background()
		}
	}
	base, cancel := context.WithCancel(base)

	f := &Fetch[T]{
		client: cfg.client,
		method: cfg.method,
		header: cfg.header,
		body:   cfg.body,
		base:   base,
		cancel: cancel,
		url:    url,
		state:  reactive.NewSignal(FetchPending),
		data:   reactive.NewSignal(*new(T)),
		err:    reactive.NewSignal[error](nil),
	}
	if ctx := reactive.UseCtx(); ctx != nil {
		f.dispatch = ctx.Dispatch
	}
	reactive.OnUnmount(f.Close)

	f.Refetch()
	return f
}

// State returns the current lifecycle state (tracked read).
func (f *Fetch[T]) State() FetchState { return f.state.Get() }

// IsLoading reports whether no result has arrived yet.
func (f *Fetch[T]) IsLoading() bool {
	s := f.state.Get()
	return s == FetchPending || s == FetchLoading
}

// Data returns the decoded response body (tracked read). Zero value until
// the first successful fetch.
func (f *Fetch[T]) Data() T { return f.data.Get() }

// DataOr returns the decoded body, or fallback while not Ready.
func (f *Fetch[T]) DataOr(fallback T) T {
	if f.state.Get() == FetchReady {
		return f.data.Get()
	}
	return fallback
}

// Err returns the captured failure, nil when none (tracked read).
func (f *Fetch[T]) Err() error { return f.err.Get() }

// URL returns the current request URL.
func (f *Fetch[T]) URL() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.url
}

// SetURL changes the request URL and refetches. A URL identical to the
// current one is a no-op: identity is checked explicitly rather than
// re-subscribing on every call.
func (f *Fetch[T]) SetURL(url string) {
	f.mu.Lock()
	if f.url == url {
		f.mu.Unlock()
		return
	}
	f.url = url
	f.mu.Unlock()

	f.Refetch()
}

// Refetch forces a new request. Any in-flight request is cancelled and its
// late result discarded.
func (f *Fetch[T]) Refetch() {
	f.mu.Lock()
	if f.base.Err() != nil {
		f.mu.Unlock()
		return
	}
	if f.inflight != nil {
		f.inflight()
	}
	f.seq++
	seq := f.seq
	url := f.url
	reqCtx, cancel := context.WithCancel(f.base)
	f.inflight = cancel
	f.mu.Unlock()

	f.apply(seq, func() {
		f.state.Set(FetchLoading)
	})

	go func() {
		data, err := f.do(reqCtx, url)
		if reqCtx.Err() != nil {
			return
		}
		f.apply(seq, func() {
			reactive.Batch(func() {
				if err != nil {
					f.err.Set(err)
					f.state.Set(FetchFailed)
					return
				}
				f.err.Set(nil)
				f.data.Set(data)
				f.state.Set(FetchReady)
			})
		})
	}()
}

// do performs one HTTP round trip and decodes the body.
func (f *Fetch[T]) do(ctx context.Context, url string) (T, error) {
	var zero T

	var body io.Reader
	if f.body != nil {
		body = bytes.NewReader(f.body)
	}
	req, err := http.NewRequestWithContext(ctx, f.method, url, body)
	if err != nil {
		return zero, fmt.Errorf("fetch: build request: %w", err)
	}
	for k, vs := range f.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return zero, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return zero, fmt.Errorf("fetch: unexpected status %s", resp.Status)
	}

	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return zero, fmt.Errorf("fetch: decode body: %w", err)
	}
	return out, nil
}

// apply runs fn (on the session loop when present) unless a newer fetch
// has started since seq.
func (f *Fetch[T]) apply(seq uint64, fn func()) {
	run := func() {
		f.mu.Lock()
		stale := seq != f.seq
		f.mu.Unlock()
		if stale {
			return
		}
		fn()
	}
	if f.dispatch != nil {
		f.dispatch(run)
		return
	}
	run()
}

// Close tears the hook down, cancelling any in-flight request. No signal
// is mutated afterwards.
func (f *Fetch[T]) Close() {
	f.mu.Lock()
	f.seq++ // invalidate anything in flight
	if f.inflight != nil {
		f.inflight()
		f.inflight = nil
	}
	f.mu.Unlock()
	f.cancel()
}
