// Package input defines the ordered event stream produced by the window and consumed by the render loop.
package input

import "fmt"

// Key identifies a keyboard key by its GLFW key code. See common/key_codes.go.
type Key int

// Event is a single item in the window's event stream.
type Event interface {
	fmt.Stringer
	event()
}

// PressEvent reports a key transitioning to the pressed state. Key repeats are not reported.
type PressEvent struct {
	Key Key
}

// ReleaseEvent reports a key transitioning to the released state.
type ReleaseEvent struct {
	Key Key
}

// MouseRelativeEvent reports cursor motion since the previous mouse event, in screen pixels.
type MouseRelativeEvent struct {
	DX, DY float64
}

// UpdateEvent is a fixed-rate simulation tick of Dt seconds.
type UpdateEvent struct {
	Dt float64
}

// RenderEvent requests one frame. ExtDt is the time in seconds since the last update tick and is used
// to extrapolate the camera between ticks.
type RenderEvent struct {
	ExtDt         float64
	Width, Height int
}

// ResizeEvent reports a new drawable (framebuffer) size in pixels.
type ResizeEvent struct {
	Width, Height int
}

// CloseEvent reports that the window was asked to close.
type CloseEvent struct{}

func (PressEvent) event()         {}
func (ReleaseEvent) event()       {}
func (MouseRelativeEvent) event() {}
func (UpdateEvent) event()        {}
func (RenderEvent) event()        {}
func (ResizeEvent) event()        {}
func (CloseEvent) event()         {}

func (e PressEvent) String() string   { return fmt.Sprintf("press(%d)", e.Key) }
func (e ReleaseEvent) String() string { return fmt.Sprintf("release(%d)", e.Key) }
func (e MouseRelativeEvent) String() string {
	return fmt.Sprintf("mouse-relative(%g, %g)", e.DX, e.DY)
}
func (e UpdateEvent) String() string { return fmt.Sprintf("update(%gs)", e.Dt) }
func (e RenderEvent) String() string {
	return fmt.Sprintf("render(%gs, %dx%d)", e.ExtDt, e.Width, e.Height)
}
func (e ResizeEvent) String() string { return fmt.Sprintf("resize(%dx%d)", e.Width, e.Height) }
func (CloseEvent) String() string    { return "close" }
