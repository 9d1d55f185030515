package reactive

import "sync/atomic"

// testListener counts MarkDirty notifications.
type testListener struct {
	id    uint64
	dirty atomic.Int64
}

func newTestListener() *testListener {
	return &testListener{id: nextID()}
}

func (l *testListener) MarkDirty() {
	l.dirty.Add(1)
}

func (l *testListener) ID() uint64 {
	return l.id
}

func (l *testListener) dirtyCount() int {
	return int(l.dirty.Load())
}
