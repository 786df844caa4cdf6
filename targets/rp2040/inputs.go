//go:build rp2040

package main

import (
	"machine"

	"illo/core"
)

// Button pins for the desk build, active low behind internal pullups.
const (
	buttonAPin = machine.GP2
	buttonBPin = machine.GP3
)

// Inputs covers the desk ring's two buttons. There is no slide switch,
// no light sensor and no accelerometer on this build; the light level
// reads as steady indoor daylight so brightness adaptation settles and
// stays put.
type Inputs struct{}

const steadyLight = 20480 // ~100 lux

func NewInputs() *Inputs {
	buttonAPin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	buttonBPin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	return &Inputs{}
}

func (*Inputs) ReadInputs() core.InputState {
	return core.InputState{
		ButtonA:    !buttonAPin.Get(),
		ButtonB:    !buttonBPin.Get(),
		LightLevel: steadyLight,
	}
}

func (*Inputs) Acceleration() (x, y, z int32, err error) {
	return 0, 0, 0, core.ErrNoAccelerometer
}
