package camera

import (
	"github.com/Carmen-Shannon/little-cube/engine/input"
	"github.com/chewxy/math32"
)

// movement key flags tracked by the controller.
type keyState uint8

const (
	keyMoveForward keyState = 1 << iota
	keyMoveBackward
	keyStrafeLeft
	keyStrafeRight
	keyFlyUp
	keyFlyDown
	keyMoveFaster
)

var sqrt2 = math32.Sqrt(2)

type firstPersonImpl struct {
	settings FirstPersonSettings

	yaw   float32
	pitch float32

	// direction holds the sign of the pending motion on each axis in controller space:
	// x is -1 forward / +1 backward, y is +1 up / -1 down, z is +1 left / -1 right.
	direction [3]float32
	position  [3]float32
	velocity  float32
	keys      keyState
}

// FirstPerson is a fly-through camera controller driven by key presses and relative mouse motion.
// It is not safe for concurrent use; the render loop owns it.
type FirstPerson interface {
	// Event feeds one input event to the controller.
	// Press and release events change the movement direction, mouse-relative events turn the view
	// and update events advance the position by their Dt. Other events are ignored.
	//
	// Parameters:
	//   - e: the event to consume
	Event(e input.Event)

	// Camera returns the camera extrapolated dt seconds ahead of the current position,
	// oriented by the current yaw and pitch. The controller itself is not moved.
	//
	// Parameters:
	//   - dt: seconds to extrapolate
	//
	// Returns:
	//   - Camera: the camera snapshot
	Camera(dt float32) Camera

	// Position returns the controller's world-space position.
	Position() [3]float32

	// SetPosition moves the controller.
	SetPosition(position [3]float32)

	// YawPitch returns the view angles in radians.
	YawPitch() (yaw, pitch float32)

	// SetYawPitch sets the view angles in radians. Pitch is clamped to [-π/2, π/2].
	SetYawPitch(yaw, pitch float32)

	// Direction returns the current movement direction in controller space, normalized horizontally.
	Direction() [3]float32

	// Velocity returns the current speed multiplier: 2 while the move-faster key is held, 1 otherwise.
	Velocity() float32

	// Settings returns the controller's key bindings and speeds.
	Settings() FirstPersonSettings
}

var _ FirstPerson = &firstPersonImpl{}

// NewFirstPerson creates a FirstPerson controller at position, facing -Z.
//
// Parameters:
//   - position: the starting world-space position
//   - settings: key bindings and speeds, see KeyboardWASD
//   - options: functional options applied after the defaults
//
// Returns:
//   - FirstPerson: the controller
func NewFirstPerson(position [3]float32, settings FirstPersonSettings, options ...FirstPersonBuilderOption) FirstPerson {
	fp := &firstPersonImpl{
		settings: settings,
		position: position,
		velocity: 1,
	}
	for _, opt := range options {
		opt(fp)
	}
	return fp
}

func (fp *firstPersonImpl) Event(e input.Event) {
	switch ev := e.(type) {
	case input.PressEvent:
		fp.press(ev.Key)
	case input.ReleaseEvent:
		fp.release(ev.Key)
	case input.MouseRelativeEvent:
		fp.mouseRelative(float32(ev.DX), float32(ev.DY))
	case input.UpdateEvent:
		fp.position = fp.Camera(float32(ev.Dt)).Position
	}
}

func (fp *firstPersonImpl) Camera(dt float32) Camera {
	d := fp.Direction()
	dh := dt * fp.velocity * fp.settings.SpeedHorizontal
	s, c := math32.Sincos(fp.yaw)

	cam := NewCamera([3]float32{
		fp.position[0] + (s*d[0]-c*d[2])*dh,
		fp.position[1] + d[1]*dt*fp.settings.SpeedVertical,
		fp.position[2] + (s*d[2]+c*d[0])*dh,
	})
	cam.SetYawPitch(fp.yaw, fp.pitch)
	return cam
}

func (fp *firstPersonImpl) Position() [3]float32 {
	return fp.position
}

func (fp *firstPersonImpl) SetPosition(position [3]float32) {
	fp.position = position
}

func (fp *firstPersonImpl) YawPitch() (float32, float32) {
	return fp.yaw, fp.pitch
}

func (fp *firstPersonImpl) SetYawPitch(yaw, pitch float32) {
	fp.yaw = math32.Mod(yaw, 2*math32.Pi)
	fp.pitch = clampPitch(pitch)
}

func (fp *firstPersonImpl) Direction() [3]float32 {
	d := fp.direction
	if d[0] != 0 && d[2] != 0 {
		d[0] /= sqrt2
		d[2] /= sqrt2
	}
	return d
}

func (fp *firstPersonImpl) Velocity() float32 {
	return fp.velocity
}

func (fp *firstPersonImpl) Settings() FirstPersonSettings {
	return fp.settings
}

// press records a held key and points the matching axis at it. The most recent press on an axis wins.
func (fp *firstPersonImpl) press(key input.Key) {
	s := fp.settings
	switch key {
	case s.MoveForwardKey:
		fp.keys |= keyMoveForward
		fp.direction[0] = -1
	case s.MoveBackwardKey:
		fp.keys |= keyMoveBackward
		fp.direction[0] = 1
	case s.StrafeLeftKey:
		fp.keys |= keyStrafeLeft
		fp.direction[2] = 1
	case s.StrafeRightKey:
		fp.keys |= keyStrafeRight
		fp.direction[2] = -1
	case s.FlyUpKey:
		fp.keys |= keyFlyUp
		fp.direction[1] = 1
	case s.FlyDownKey:
		fp.keys |= keyFlyDown
		fp.direction[1] = -1
	case s.MoveFasterKey:
		fp.keys |= keyMoveFaster
		fp.velocity = 2
	}
}

// release clears a held key. If the opposite key on the same axis is still held the axis falls back to it.
func (fp *firstPersonImpl) release(key input.Key) {
	s := fp.settings
	switch key {
	case s.MoveForwardKey:
		fp.direction[0] = fp.releaseAxis(keyMoveForward, keyMoveBackward, 1)
	case s.MoveBackwardKey:
		fp.direction[0] = fp.releaseAxis(keyMoveBackward, keyMoveForward, -1)
	case s.StrafeLeftKey:
		fp.direction[2] = fp.releaseAxis(keyStrafeLeft, keyStrafeRight, -1)
	case s.StrafeRightKey:
		fp.direction[2] = fp.releaseAxis(keyStrafeRight, keyStrafeLeft, 1)
	case s.FlyUpKey:
		fp.direction[1] = fp.releaseAxis(keyFlyUp, keyFlyDown, -1)
	case s.FlyDownKey:
		fp.direction[1] = fp.releaseAxis(keyFlyDown, keyFlyUp, 1)
	case s.MoveFasterKey:
		fp.keys &^= keyMoveFaster
		fp.velocity = 1
	}
}

func (fp *firstPersonImpl) releaseAxis(released, opposite keyState, oppositeValue float32) float32 {
	fp.keys &^= released
	if fp.keys&opposite != 0 {
		return oppositeValue
	}
	return 0
}

// mouseRelative turns the view by pixel deltas: 360 pixels of motion is an eighth of a turn at sensitivity 1.
func (fp *firstPersonImpl) mouseRelative(dx, dy float32) {
	dx *= fp.settings.MouseSensitivityHorizontal
	dy *= fp.settings.MouseSensitivityVertical

	fp.yaw = math32.Mod(fp.yaw-dx/360*math32.Pi/4, 2*math32.Pi)
	fp.pitch = clampPitch(fp.pitch + dy/360*math32.Pi/4)
}

func clampPitch(pitch float32) float32 {
	return math32.Max(-math32.Pi/2, math32.Min(math32.Pi/2, pitch))
}
