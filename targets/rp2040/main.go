//go:build rp2040

package main

import (
	"machine"
	"time"

	"illo/core"
	"illo/device"
)

// Data line for the ring.
const ringPin = machine.GP16

// Firmware entry for the radio-less RP2040 desk ring: same controller,
// same routines, but no radio and no microphone, so the dance routine
// runs its animation local-only forever.
func main() {
	core.SetLogWriter(func(s string) { println(s) })
	// Boot lines always print; the controller resets this from the
	// stored debug flag once the config is up.
	core.SetLogEnabled(true)

	ring, err := NewRing(ringPin)
	if err != nil {
		core.Logln("[BOOT] ring init failed: " + err.Error())
		distress()
	}

	device.NewController(ring, NewInputs(), nil, nil, NewFlashStore(), nil).Run()
}

// distress blinks the onboard LED forever. With no working ring there
// is nothing better to do.
func distress() {
	machine.LED.Configure(machine.PinConfig{Mode: machine.PinOutput})
	for {
		machine.LED.High()
		time.Sleep(200 * time.Millisecond)
		machine.LED.Low()
		time.Sleep(200 * time.Millisecond)
	}
}
