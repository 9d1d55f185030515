package events

// Topic adapts one (target, name) pair on a Bus to a typed stream. It
// satisfies the reactive package's Stream interface, so it can be bridged
// onto a session loop with reactive.Subscribe.
//
// Events whose payload is not a T are dropped silently.
type Topic[T any] struct {
	bus    *Bus
	target string
	name   string
}

// NewTopic creates a typed view of (target, name) on bus.
func NewTopic[T any](bus *Bus, target, name string) Topic[T] {
	return Topic[T]{bus: bus, target: target, name: name}
}

// Subscribe registers handler for the topic's payload type and returns an
// unsubscribe function.
func (t Topic[T]) Subscribe(handler func(T)) (unsubscribe func()) {
	return t.bus.Subscribe(t.target, t.name, func(ev Event) {
		if v, ok := ev.Data.(T); ok {
			handler(v)
		}
	})
}
