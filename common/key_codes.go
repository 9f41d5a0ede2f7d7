package common

// Virtual key codes used by the input layer.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyW     = 87 // W key (ASCII)
	KeyA     = 65 // A key (ASCII)
	KeyS     = 83 // S key (ASCII)
	KeyD     = 68 // D key (ASCII)
	KeyZ     = 90 // Z key (ASCII)
	KeyQ     = 81 // Q key (ASCII)
	KeyC     = 67 // C key (ASCII)
	KeySpace = 32 // Spacebar (ASCII)

	KeyEsc         = 256 // Escape key (GLFW)
	KeyLeftShift   = 340 // Left Shift (GLFW)
	KeyLeftControl = 341 // Left Control (GLFW)
)
