package engine

import (
	"log/slog"

	"github.com/Carmen-Shannon/little-cube/engine/camera"
	"github.com/Carmen-Shannon/little-cube/engine/input"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables the once-per-second FPS and memory log line.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithLogger sets the logger used by the engine and its profiler.
//
// Parameters:
//   - logger: the logger; nil keeps slog.Default()
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) EngineBuilderOption {
	return func(e *engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithCamera sets the camera's start position, key bindings and controller options.
//
// Parameters:
//   - position: the world-space start position
//   - settings: key bindings, speeds and mouse sensitivity
//   - options: additional controller options such as the initial yaw and pitch
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithCamera(position [3]float32, settings camera.FirstPersonSettings, options ...camera.FirstPersonBuilderOption) EngineBuilderOption {
	return func(e *engine) {
		e.cameraPosition = position
		e.cameraSettings = settings
		e.cameraOptions = options
	}
}

// WithPerspective sets the projection options (field of view and clip planes).
//
// Parameters:
//   - options: perspective options
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithPerspective(options ...camera.PerspectiveBuilderOption) EngineBuilderOption {
	return func(e *engine) {
		e.perspectiveOptions = options
	}
}

// WithClearColor sets the colour every frame is cleared to.
//
// Parameters:
//   - color: RGBA components in [0, 1]
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithClearColor(color [4]float64) EngineBuilderOption {
	return func(e *engine) {
		e.clearColor = color
	}
}

// WithToggleCaptureKey sets the key that switches cursor capture on and off. Defaults to C.
//
// Parameters:
//   - key: the toggle key
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithToggleCaptureKey(key input.Key) EngineBuilderOption {
	return func(e *engine) {
		e.toggleCaptureKey = key
	}
}
