package camera

import (
	"github.com/Carmen-Shannon/little-cube/common"
)

// Default projection parameters.
const (
	DefaultFov  float32 = 90
	DefaultNear float32 = 0.1
	DefaultFar  float32 = 1000
)

// Perspective holds the parameters of a perspective projection. Fov is the vertical field of view in degrees.
// Only Aspect changes at runtime, on resize.
type Perspective struct {
	Fov    float32
	Near   float32
	Far    float32
	Aspect float32
}

type PerspectiveBuilderOption func(*Perspective)

// WithFov sets the vertical field of view in degrees.
//
// Parameters:
//   - fov: field of view in degrees
//
// Returns:
//   - PerspectiveBuilderOption: a function that sets the field of view
func WithFov(fov float32) PerspectiveBuilderOption {
	return func(p *Perspective) {
		p.Fov = fov
	}
}

// WithNear sets the near clipping plane distance.
//
// Parameters:
//   - near: near plane distance
//
// Returns:
//   - PerspectiveBuilderOption: a function that sets the near plane
func WithNear(near float32) PerspectiveBuilderOption {
	return func(p *Perspective) {
		p.Near = near
	}
}

// WithFar sets the far clipping plane distance.
//
// Parameters:
//   - far: far plane distance
//
// Returns:
//   - PerspectiveBuilderOption: a function that sets the far plane
func WithFar(far float32) PerspectiveBuilderOption {
	return func(p *Perspective) {
		p.Far = far
	}
}

// NewPerspective creates projection parameters for a drawable of width x height pixels.
// A zero height leaves the aspect at 1.
//
// Parameters:
//   - width, height: drawable size in pixels
//   - options: functional options applied after the defaults
//
// Returns:
//   - Perspective: the projection parameters
func NewPerspective(width, height int, options ...PerspectiveBuilderOption) Perspective {
	p := Perspective{
		Fov:    DefaultFov,
		Near:   DefaultNear,
		Far:    DefaultFar,
		Aspect: 1,
	}
	for _, opt := range options {
		opt(&p)
	}
	p.Resize(width, height)
	return p
}

// Resize updates the aspect ratio from a new drawable size. FOV and clip planes are unchanged.
//
// Parameters:
//   - width, height: drawable size in pixels
//
// Returns:
//   - bool: false if the size has no usable aspect ratio and the projection was left as it was
func (p *Perspective) Resize(width, height int) bool {
	aspect, ok := AspectRatio(width, height)
	if !ok {
		return false
	}
	p.Aspect = aspect
	return true
}

// Projection returns the projection matrix in column-major order with WebGPU [0, 1] clip depth.
//
// Returns:
//   - [16]float32: the projection matrix
func (p Perspective) Projection() [16]float32 {
	var out [16]float32
	common.Perspective(out[:], common.DegToRad(p.Fov), p.Aspect, p.Near, p.Far)
	return out
}

// AspectRatio returns width / height for a drawable size.
//
// Parameters:
//   - width, height: drawable size in pixels
//
// Returns:
//   - float32: the aspect ratio
//   - bool: false when either dimension is not positive, as for a minimized window
func AspectRatio(width, height int) (float32, bool) {
	if width <= 0 || height <= 0 {
		return 0, false
	}
	return float32(width) / float32(height), true
}

// ModelViewProjection combines the three transforms into projection * view * model.
//
// Parameters:
//   - model: object-to-world matrix
//   - view: world-to-view matrix
//   - projection: view-to-clip matrix
//
// Returns:
//   - [16]float32: the combined matrix in column-major order
func ModelViewProjection(model, view, projection [16]float32) [16]float32 {
	var out [16]float32
	common.Mul4(out[:], view[:], model[:])
	common.Mul4(out[:], projection[:], out[:])
	return out
}
