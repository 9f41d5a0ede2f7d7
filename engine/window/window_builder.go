package window

// WindowBuilderOption is a functional option for configuring an engineWindow.
// Use the With* functions to create options.
type WindowBuilderOption func(w *engineWindow)

// WithTitle sets the window title displayed in the title bar.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.title = title
	}
}

// WithWidth sets the initial window width.
//
// Parameters:
//   - width: initial width in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithWidth(width int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.width = width
	}
}

// WithHeight sets the initial window height.
//
// Parameters:
//   - height: initial height in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithHeight(height int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.height = height
	}
}

// WithExitOnEsc controls whether pressing Escape closes the window. Enabled by default.
//
// Parameters:
//   - exit: true to close on Escape
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithExitOnEsc(exit bool) WindowBuilderOption {
	return func(w *engineWindow) {
		w.exitOnEsc = exit
	}
}

// WithCaptureCursor sets whether the cursor starts captured. Enabled by default.
//
// Parameters:
//   - capture: true to capture the cursor on spawn
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithCaptureCursor(capture bool) WindowBuilderOption {
	return func(w *engineWindow) {
		w.captureCursor = capture
	}
}

// WithUpdatesPerSecond sets the fixed update tick rate. Defaults to 120.
//
// Parameters:
//   - ups: update ticks per second
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithUpdatesPerSecond(ups int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.updatesPerSecond = ups
	}
}

// WithMaxFPS caps the render tick rate. Zero leaves it uncapped. Defaults to 60.
//
// Parameters:
//   - fps: maximum render ticks per second
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithMaxFPS(fps int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.maxFPS = fps
	}
}
