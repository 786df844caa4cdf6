//go:build circuitplay_bluefruit

package main

import "machine"

// The PDM microphone hangs off plain port pins, the board file has no
// names for them.
const (
	micClock machine.Pin = machine.P0_17
	micData  machine.Pin = machine.P0_16
)

// Microphone adapts the PDM peripheral to the audio source contract.
// Read blocks until the requested buffer is full; a 256-sample batch
// at 16 kHz is 16 ms, one animation pass.
type Microphone struct {
	pdm machine.PDM
}

func NewMicrophone() (*Microphone, error) {
	m := &Microphone{}
	if err := m.pdm.Configure(machine.PDMConfig{CLK: micClock, DIN: micData}); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Microphone) ReadSamples(buf []int16) (int, error) {
	return m.pdm.Read(buf)
}
