package window

import (
	"fmt"
	"time"

	"github.com/Carmen-Shannon/little-cube/engine/input"
	"github.com/cogentcore/webgpu/wgpu"
)

// Window provides platform windowing and an ordered input event stream.
// Wraps platform-specific window implementations with a common interface.
type Window interface {
	// Next blocks until the next event is available and returns it.
	// Input events are returned in arrival order, interleaved with update and render ticks.
	// After a CloseEvent has been returned, Next returns false.
	//
	// Returns:
	//   - input.Event: the next event
	//   - bool: false once the stream has ended
	Next() (input.Event, bool)

	// DrawSize returns the current framebuffer size in pixels.
	// On high-DPI displays this differs from the window size.
	//
	// Returns:
	//   - int: width in pixels
	//   - int: height in pixels
	DrawSize() (int, int)

	// SetCaptureCursor hides and locks the cursor to the window when enabled.
	// Relative mouse motion is only reported while the cursor is captured.
	//
	// Parameters:
	//   - capture: true to capture the cursor
	SetCaptureCursor(capture bool)

	// CaptureCursor reports whether the cursor is currently captured.
	//
	// Returns:
	//   - bool: true if the cursor is captured
	CaptureCursor() bool

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and the pending event queue.
type engineWindow struct {
	// title is the window title displayed in the title bar.
	title string

	// width and height are the current framebuffer size in pixels.
	width, height int

	// exitOnEsc closes the window when Escape is pressed.
	exitOnEsc bool

	// captureCursor is the current cursor capture state.
	captureCursor bool

	updatesPerSecond int
	maxFPS           int
	scheduler        *Scheduler

	// queue holds input events collected by platform callbacks and not yet returned by Next.
	queue []input.Event

	// closed is set once CloseEvent has been delivered.
	closed bool

	// now is the clock used for scheduling.
	now func() time.Time

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any
}

var _ Window = &engineWindow{}

// NewWindow creates and spawns a new Window with the specified options.
// Applies default values first, then each option in order.
// Must be called from the main thread.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the spawned window
//   - error: an error if the platform window could not be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := newEngineWindow(options...)
	if err := newPlatformWindow(w); err != nil {
		return nil, fmt.Errorf("failed to create platform window: %w", err)
	}
	if w.captureCursor {
		platformSetCaptureCursor(w, true)
	}
	return w, nil
}

func newEngineWindow(options ...WindowBuilderOption) *engineWindow {
	w := &engineWindow{
		title:            "Little Cube",
		width:            640,
		height:           480,
		exitOnEsc:        true,
		captureCursor:    true,
		updatesPerSecond: 120,
		maxFPS:           60,
		now:              time.Now,
	}
	for _, opt := range options {
		opt(w)
	}
	w.scheduler = NewScheduler(w.updatesPerSecond, w.maxFPS)
	return w
}

func (w *engineWindow) Next() (input.Event, bool) {
	for {
		if len(w.queue) > 0 {
			ev := w.queue[0]
			w.queue = w.queue[1:]
			if _, isClose := ev.(input.CloseEvent); isClose {
				w.closed = true
				w.queue = nil
			}
			return ev, true
		}
		if w.closed {
			return nil, false
		}
		if platformShouldClose(w) {
			w.push(input.CloseEvent{})
			continue
		}

		now := w.now()
		if ev, ok := w.scheduler.Tick(now, w.width, w.height); ok {
			return ev, true
		}
		platformWaitEvents(w, w.scheduler.Until(now))
	}
}

// push appends an event collected by a platform callback.
func (w *engineWindow) push(ev input.Event) {
	if w.closed {
		return
	}
	w.queue = append(w.queue, ev)
}

func (w *engineWindow) DrawSize() (int, int) {
	return w.width, w.height
}

func (w *engineWindow) SetCaptureCursor(capture bool) {
	w.captureCursor = capture
	platformSetCaptureCursor(w, capture)
}

func (w *engineWindow) CaptureCursor() bool {
	return w.captureCursor
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}
