package hooks

import (
	"github.com/ShubSpyder/custom-hooks/pkg/events"
	"github.com/ShubSpyder/custom-hooks/pkg/reactive"
)

// Hover tracks whether the pointer is currently over a target.
type Hover struct {
	over  *reactive.Signal[bool]
	enter *Listener
	leave *Listener
}

// NewHover subscribes to pointerenter/pointerleave on target.
func NewHover(bus *events.Bus, target string) *Hover {
	h := &Hover{
		over: reactive.NewSignal(false),
	}
	h.enter = NewListener(bus, target, events.PointerEnter, func(events.Event) {
		h.over.Set(true)
	})
	h.leave = NewListener(bus, target, events.PointerLeave, func(events.Event) {
		h.over.Set(false)
	})
	return h
}

// IsHovered returns the current hover state (tracked read).
func (h *Hover) IsHovered() bool { return h.over.Get() }

// Close unsubscribes from both pointer events.
func (h *Hover) Close() {
	h.enter.Close()
	h.leave.Close()
}
