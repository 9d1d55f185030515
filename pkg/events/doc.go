// Package events provides the in-process event bus that hooks subscribe to.
//
// A Bus routes published events to subscribers keyed by (target, name),
// where target identifies the element or surface the event occurred on and
// name is the event kind ("click", "scroll", "resize", ...). Subscribing
// with an empty target receives the event kind from every target.
//
// The server transport decodes client frames into Events and publishes them
// here; hooks never see the transport.
package events
