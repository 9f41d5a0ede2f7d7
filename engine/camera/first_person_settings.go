package camera

import (
	"github.com/Carmen-Shannon/little-cube/common"
	"github.com/Carmen-Shannon/little-cube/engine/input"
)

// FirstPersonSettings maps keys to movement and holds the speed and mouse sensitivity of a FirstPerson controller.
type FirstPersonSettings struct {
	MoveForwardKey  input.Key
	MoveBackwardKey input.Key
	StrafeLeftKey   input.Key
	StrafeRightKey  input.Key
	FlyUpKey        input.Key
	FlyDownKey      input.Key
	MoveFasterKey   input.Key

	// SpeedHorizontal and SpeedVertical are in world units per second.
	SpeedHorizontal float32
	SpeedVertical   float32

	// MouseSensitivityHorizontal and MouseSensitivityVertical scale relative mouse motion before it turns the view.
	MouseSensitivityHorizontal float32
	MouseSensitivityVertical   float32
}

// KeyboardWASD returns settings for a QWERTY layout: W/A/S/D to move, Space and Left Shift to fly, Left Control to go faster.
func KeyboardWASD() FirstPersonSettings {
	return FirstPersonSettings{
		MoveForwardKey:             common.KeyW,
		MoveBackwardKey:            common.KeyS,
		StrafeLeftKey:              common.KeyA,
		StrafeRightKey:             common.KeyD,
		FlyUpKey:                   common.KeySpace,
		FlyDownKey:                 common.KeyLeftShift,
		MoveFasterKey:              common.KeyLeftControl,
		SpeedHorizontal:            1,
		SpeedVertical:              1,
		MouseSensitivityHorizontal: 1,
		MouseSensitivityVertical:   1,
	}
}

// KeyboardZQSD returns the AZERTY equivalent of KeyboardWASD.
func KeyboardZQSD() FirstPersonSettings {
	s := KeyboardWASD()
	s.MoveForwardKey = common.KeyZ
	s.StrafeLeftKey = common.KeyQ
	return s
}
