package hooks

import (
	"sync"
	"time"

	"github.com/ShubSpyder/custom-hooks/pkg/reactive"
)

// defaultFrameInterval approximates a 60 FPS display.
const defaultFrameInterval = time.Second / 60

// Frames drives a per-frame callback until stopped. The callback receives
// the elapsed time since the previous frame (since start, for the first
// one). Under a session Ctx frames are delivered on the loop.
type Frames struct {
	mu      sync.Mutex
	stop    reactive.Cleanup
	stopped bool
}

// FrameOption configures a Frames loop.
type FrameOption func(*frameConfig)

type frameConfig struct {
	interval time.Duration
}

// FrameInterval overrides the default ~16.7ms frame interval.
func FrameInterval(d time.Duration) FrameOption {
	return func(cfg *frameConfig) { cfg.interval = d }
}

// NewFrames starts the loop immediately. Under an Owner, Stop is
// registered as a cleanup.
func NewFrames(fn func(elapsed time.Duration), opts ...FrameOption) *Frames {
	cfg := frameConfig{interval: defaultFrameInterval}
	for _, opt := range opts {
		opt(&cfg)
	}

	f := &Frames{}

	last := time.Now()
	f.stop = reactive.Interval(cfg.interval, func() {
		now := time.Now()
		elapsed := now.Sub(last)
		last = now
		fn(elapsed)
	})

	reactive.OnUnmount(f.Stop)
	return f
}

// Stop ends the loop; no frame callback runs afterwards. Idempotent.
func (f *Frames) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stopped {
		return
	}
	f.stopped = true
	f.stop()
}

// Running reports whether the loop is still active.
func (f *Frames) Running() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.stopped
}
