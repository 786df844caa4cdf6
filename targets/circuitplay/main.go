//go:build circuitplay_bluefruit

package main

import (
	"illo/core"
	"illo/device"
	"illo/radio/ble"
)

// Firmware entry for the Circuit Playground Bluefruit toy: ten
// NeoPixels, PDM microphone, LIS3DH, two buttons, slide switch, light
// sensor, BLE sync radio, config in flash. Everything after wiring is
// the shared controller loop.
func main() {
	core.SetLogWriter(func(s string) { println(s) })
	// Boot lines always print; the controller resets this from the
	// stored debug flag once the config is up.
	core.SetLogEnabled(true)

	ring := NewRing()
	inputs := NewInputs()
	if x, y, z, err := inputs.Acceleration(); err != nil {
		core.Logln("[BOOT] accelerometer unavailable: " + err.Error())
	} else {
		core.Logln("[BOOT] accel " + core.Itoa(int(x)) + " " +
			core.Itoa(int(y)) + " " + core.Itoa(int(z)))
	}

	var mic core.AudioSource
	if m, err := NewMicrophone(); err != nil {
		core.Logln("[BOOT] microphone unavailable: " + err.Error())
	} else {
		mic = m
	}

	device.NewController(ring, inputs, ble.New(0), mic, NewFlashStore(), nil).Run()
}
