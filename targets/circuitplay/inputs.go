//go:build circuitplay_bluefruit

package main

import (
	"machine"

	"tinygo.org/x/drivers/lis3dh"

	"illo/core"
)

// Inputs reads the board controls: the two push buttons (active high
// behind pulldowns), the slide switch (left position allows the
// radio), the analog light sensor and the LIS3DH accelerometer on the
// internal I2C bus.
type Inputs struct {
	light   machine.ADC
	accel   lis3dh.Device
	accelOK bool
}

func NewInputs() *Inputs {
	machine.BUTTONA.Configure(machine.PinConfig{Mode: machine.PinInputPulldown})
	machine.BUTTONB.Configure(machine.PinConfig{Mode: machine.PinInputPulldown})
	machine.SLIDER.Configure(machine.PinConfig{Mode: machine.PinInputPullup})

	machine.InitADC()
	light := machine.ADC{Pin: machine.LIGHTSENSOR}
	light.Configure(machine.ADCConfig{})

	in := &Inputs{light: light}

	i2c := machine.I2C1
	if err := i2c.Configure(machine.I2CConfig{SCL: machine.SCL1_PIN, SDA: machine.SDA1_PIN}); err == nil {
		in.accel = lis3dh.New(i2c)
		in.accel.Address = lis3dh.Address1
		in.accel.Configure()
		in.accelOK = in.accel.Connected()
	}
	if !in.accelOK {
		core.Logln("[BOOT] accelerometer not responding")
	}
	return in
}

func (in *Inputs) ReadInputs() core.InputState {
	return core.InputState{
		ButtonA:     machine.BUTTONA.Get(),
		ButtonB:     machine.BUTTONB.Get(),
		SlideSwitch: machine.SLIDER.Get(),
		LightLevel:  in.light.Get(),
	}
}

func (in *Inputs) Acceleration() (x, y, z int32, err error) {
	if !in.accelOK {
		return 0, 0, 0, core.ErrNoAccelerometer
	}
	return in.accel.ReadAcceleration()
}
