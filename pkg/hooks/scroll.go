package hooks

import (
	"github.com/ShubSpyder/custom-hooks/pkg/events"
	"github.com/ShubSpyder/custom-hooks/pkg/reactive"
)

// ScrollPosition tracks the latest scroll offsets of a target as signals.
type ScrollPosition struct {
	x, y     *reactive.Signal[int]
	listener *Listener
}

// NewScrollPosition subscribes to scroll events on target. An empty target
// follows scrolling on every target, which matches the common
// whole-window case.
func NewScrollPosition(bus *events.Bus, target string) *ScrollPosition {
	sp := &ScrollPosition{
		x: reactive.NewSignal(0),
		y: reactive.NewSignal(0),
	}
	sp.listener = NewListener(bus, target, events.Scroll, func(ev events.Event) {
		pos, ok := ev.Data.(events.ScrollEvent)
		if !ok {
			return
		}
		reactive.Batch(func() {
			sp.x.Set(pos.Left)
			sp.y.Set(pos.Top)
		})
	})
	return sp
}

// X returns the horizontal offset in pixels (tracked read).
func (sp *ScrollPosition) X() int { return sp.x.Get() }

// Y returns the vertical offset in pixels (tracked read).
func (sp *ScrollPosition) Y() int { return sp.y.Get() }

// Close unsubscribes from scroll events.
func (sp *ScrollPosition) Close() { sp.listener.Close() }
