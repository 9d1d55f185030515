package events

// Standard event names published by the client transport.
const (
	Click        = "click"
	Scroll       = "scroll"
	Resize       = "resize"
	PointerEnter = "pointerenter"
	PointerLeave = "pointerleave"
	Input        = "input"
)

// ScrollEvent reports a scroll position sample.
type ScrollEvent struct {
	// Offset from the top of the scrolled surface, in pixels.
	Top int `json:"top"`

	// Offset from the left, in pixels.
	Left int `json:"left"`
}

// PointerEvent reports a pointer position relative to the viewport.
type PointerEvent struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ResizeEvent reports the new viewport dimensions in pixels.
type ResizeEvent struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// InputEvent reports an input field change.
type InputEvent struct {
	Value string `json:"value"`
}
