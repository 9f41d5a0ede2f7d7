package camera

import (
	"github.com/Carmen-Shannon/little-cube/common"
	"github.com/chewxy/math32"
)

// Camera is a snapshot of a view: a world-space position plus an orthonormal basis.
// Forward is the viewing direction, Up and Right complete a right-handed frame.
// A Camera is a plain value; the FirstPerson controller produces a new one every frame.
type Camera struct {
	Position [3]float32
	Forward  [3]float32
	Up       [3]float32
	Right    [3]float32
}

// NewCamera creates a Camera at position looking down -Z with +Y up.
//
// Parameters:
//   - position: world-space camera position
//
// Returns:
//   - Camera: the new camera
func NewCamera(position [3]float32) Camera {
	return Camera{
		Position: position,
		Forward:  [3]float32{0, 0, -1},
		Up:       [3]float32{0, 1, 0},
		Right:    [3]float32{1, 0, 0},
	}
}

// SetYawPitch orients the camera. Yaw rotates about world +Y, pitch tilts the view, both in radians.
// Positive yaw turns left and positive pitch looks down.
//
// Parameters:
//   - yaw: rotation about the world up axis
//   - pitch: rotation about the camera right axis
func (c *Camera) SetYawPitch(yaw, pitch float32) {
	sy, cy := math32.Sincos(yaw)
	sp, cp := math32.Sincos(pitch)

	c.Forward = [3]float32{-sy * cp, -sp, -cy * cp}
	c.Up = [3]float32{-sy * sp, cp, -cy * sp}
	c.Right = common.Cross3(c.Forward, c.Up)
}

// Orthogonal re-orthonormalizes the basis and returns the world-to-view matrix in column-major order.
// The basis is rebuilt from Forward and Up on every call.
//
// Returns:
//   - [16]float32: the view matrix
func (c Camera) Orthogonal() [16]float32 {
	f := common.Normalize3(c.Forward)
	r := common.Normalize3(common.Cross3(f, c.Up))
	u := common.Cross3(r, f)
	p := c.Position

	var out [16]float32
	out[0], out[4], out[8], out[12] = r[0], r[1], r[2], -common.Dot3(r, p)
	out[1], out[5], out[9], out[13] = u[0], u[1], u[2], -common.Dot3(u, p)
	out[2], out[6], out[10], out[14] = -f[0], -f[1], -f[2], common.Dot3(f, p)
	out[3], out[7], out[11], out[15] = 0, 0, 0, 1
	return out
}
