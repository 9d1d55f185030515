package reactive

// IntSignal wraps Signal[int] with convenience methods for counters.
type IntSignal struct {
	*Signal[int]
}

// NewIntSignal creates a new IntSignal with the given initial value.
func NewIntSignal(initial int) *IntSignal {
	return &IntSignal{NewSignal(initial)}
}

// Inc increments the value by 1.
func (s *IntSignal) Inc() {
	s.Update(func(n int) int { return n + 1 })
}

// Dec decrements the value by 1.
func (s *IntSignal) Dec() {
	s.Update(func(n int) int { return n - 1 })
}

// Add adds n to the value.
func (s *IntSignal) Add(n int) {
	s.Update(func(v int) int { return v + n })
}

// BoolSignal wraps Signal[bool] with toggle helpers.
type BoolSignal struct {
	*Signal[bool]
}

// NewBoolSignal creates a new BoolSignal with the given initial value.
func NewBoolSignal(initial bool) *BoolSignal {
	return &BoolSignal{NewSignal(initial)}
}

// Toggle flips the value.
func (s *BoolSignal) Toggle() {
	s.Update(func(v bool) bool { return !v })
}
