package reactive

import (
	"runtime"
	"sync"
)

// trackingContext holds the reactive state for one goroutine: the ambient
// owner, the listener currently collecting dependencies, batch depth, and
// the runtime Ctx.
type trackingContext struct {
	currentOwner *Owner

	// currentListener receives subscriptions for every signal read.
	// nil means reads do not create dependencies.
	currentListener Listener

	// batchDepth > 0 queues notifications instead of firing them.
	batchDepth     int
	pendingUpdates []Listener

	// currentCtx is the session loop handle, if any.
	currentCtx Ctx
}

// trackingContexts maps goroutine ID to its tracking context.
var trackingContexts sync.Map

// goroutineID extracts the current goroutine's ID from the runtime stack
// header ("goroutine <id> ..."). An implementation detail; not exported.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	var id uint64
	for i := len("goroutine "); i < n; i++ {
		if buf[i] == ' ' {
			break
		}
		id = id*10 + uint64(buf[i]-'0')
	}
	return id
}

func getTrackingContext() *trackingContext {
	gid := goroutineID()
	if ctx, ok := trackingContexts.Load(gid); ok {
		return ctx.(*trackingContext)
	}
	ctx := &trackingContext{}
	trackingContexts.Store(gid, ctx)
	return ctx
}

func getCurrentListener() Listener {
	return getTrackingContext().currentListener
}

// setCurrentListener swaps the tracked listener, returning the previous one
// so it can be restored.
func setCurrentListener(l Listener) Listener {
	ctx := getTrackingContext()
	old := ctx.currentListener
	ctx.currentListener = l
	return old
}

func getCurrentOwner() *Owner {
	return getTrackingContext().currentOwner
}

func setCurrentOwner(o *Owner) *Owner {
	ctx := getTrackingContext()
	old := ctx.currentOwner
	ctx.currentOwner = o
	return old
}

func getBatchDepth() int {
	return getTrackingContext().batchDepth
}

func incrementBatchDepth() {
	getTrackingContext().batchDepth++
}

// decrementBatchDepth reports whether the outermost batch just completed.
func decrementBatchDepth() bool {
	ctx := getTrackingContext()
	ctx.batchDepth--
	return ctx.batchDepth == 0
}

func queuePendingUpdate(l Listener) {
	ctx := getTrackingContext()
	ctx.pendingUpdates = append(ctx.pendingUpdates, l)
}

func drainPendingUpdates() []Listener {
	ctx := getTrackingContext()
	updates := ctx.pendingUpdates
	ctx.pendingUpdates = nil
	return updates
}

// WithOwner runs fn with owner as the ambient owner for the current
// goroutine. Effects and cleanups created inside belong to owner.
func WithOwner(owner *Owner, fn func()) {
	old := setCurrentOwner(owner)
	defer setCurrentOwner(old)
	fn()
}

// WithListener runs fn with l collecting dependencies for every signal
// read inside.
func WithListener(l Listener, fn func()) {
	old := setCurrentListener(l)
	defer setCurrentListener(old)
	fn()
}
