package core

import "errors"

// ErrNoAccelerometer is returned by Acceleration on devices without one.
var ErrNoAccelerometer = errors.New("no accelerometer fitted")

// InputState is one snapshot of the physical controls.
type InputState struct {
	ButtonA     bool   // momentary, true while pressed
	ButtonB     bool   // momentary, true while pressed
	SlideSwitch bool   // true allows the sync radio on the air
	LightLevel  uint16 // ambient light, raw 16-bit reading
}

// InputDriver reads the device controls and motion sensor.
type InputDriver interface {
	// ReadInputs returns the current control state.
	ReadInputs() InputState

	// Acceleration returns the current acceleration in micro-g per
	// axis, or ErrNoAccelerometer when the device has none.
	Acceleration() (x, y, z int32, err error)
}
