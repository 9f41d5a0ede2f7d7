package camera

type FirstPersonBuilderOption func(*firstPersonImpl)

// WithYawPitch sets the initial view angles in radians.
//
// Parameters:
//   - yaw: rotation about the world up axis
//   - pitch: rotation about the camera right axis, clamped to [-π/2, π/2]
//
// Returns:
//   - FirstPersonBuilderOption: a function that sets the controller's view angles
func WithYawPitch(yaw, pitch float32) FirstPersonBuilderOption {
	return func(fp *firstPersonImpl) {
		fp.SetYawPitch(yaw, pitch)
	}
}

// WithSpeed overrides the horizontal and vertical speeds of the settings.
//
// Parameters:
//   - horizontal: world units per second along the ground
//   - vertical: world units per second when flying up or down
//
// Returns:
//   - FirstPersonBuilderOption: a function that sets the controller's speeds
func WithSpeed(horizontal, vertical float32) FirstPersonBuilderOption {
	return func(fp *firstPersonImpl) {
		fp.settings.SpeedHorizontal = horizontal
		fp.settings.SpeedVertical = vertical
	}
}

// WithMouseSensitivity overrides the mouse sensitivity of the settings.
//
// Returns:
//   - FirstPersonBuilderOption: a function that sets the controller's mouse sensitivity
func WithMouseSensitivity(horizontal, vertical float32) FirstPersonBuilderOption {
	return func(fp *firstPersonImpl) {
		fp.settings.MouseSensitivityHorizontal = horizontal
		fp.settings.MouseSensitivityVertical = vertical
	}
}
