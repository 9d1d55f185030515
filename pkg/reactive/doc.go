// Package reactive implements the fine-grained reactivity substrate that
// every hook in this module publishes through.
//
// The primitives are:
//
//   - Signal[T]: a mutable reactive value. Reading it inside a tracked
//     context (an effect or memo computation) subscribes the reader.
//   - Memo[T]: a lazily cached derivation of other signals.
//   - Effect: a side effect that re-runs when its read dependencies change
//     and may return a Cleanup.
//   - Owner: a disposal scope. Disposing an owner disposes its child owners,
//     effects, and registered cleanups, in reverse order.
//
// Tracking state is goroutine-local: WithOwner and WithListener establish
// the ambient owner and listener for the current goroutine. Asynchronous
// work (timers, subscriptions, fetches) re-enters the single-threaded world
// through Ctx.Dispatch, never by mutating signals from arbitrary goroutines
// while a session loop is active.
package reactive
