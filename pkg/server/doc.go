// Package server hosts the demo runtime: a per-connection session loop
// that owns the reactive scope, a WebSocket transport feeding browser
// events into the session bus, and an HTTP surface with health, data,
// and Prometheus endpoints.
//
// All reactive state for a connection lives on its Session goroutine.
// Hooks and effects created inside the session capture it as their
// reactive.Ctx, so timer and fetch callbacks re-enter the loop through
// Dispatch instead of touching signals concurrently.
package server
