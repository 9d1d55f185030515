package reactive

import "sync/atomic"

// globalIDCounter issues unique IDs for all reactive primitives.
var globalIDCounter uint64

func nextID() uint64 {
	return atomic.AddUint64(&globalIDCounter, 1)
}
