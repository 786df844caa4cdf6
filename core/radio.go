package core

import (
	"errors"
	"time"
)

// Radio failure classes. Sync code keys its recovery policy off these
// with errors.Is: an unavailable radio downgrades the device to
// local-only animation, an exhausted radio gets an emergency reclaim
// pass, any other error is transient and retried on the next tick.
var (
	ErrRadioUnavailable = errors.New("radio unavailable")
	ErrRadioExhausted   = errors.New("radio out of resources")
)

// ScanHit is one advertisement sighted during a scan burst.
type ScanHit struct {
	Name string
	RSSI int16 // dBm
}

// RadioDriver is the abstract one-way broadcast radio that sync runs
// on. Platform implementations: BLE advertisements on hardware, the
// lossy loopback medium in the simulator.
type RadioDriver interface {
	// Init powers the radio up. ErrRadioUnavailable means the device
	// has no usable radio and the caller should run local-only.
	Init() error

	// Advertise replaces the currently broadcast name token. There is
	// no queue and no acknowledgment; the latest call wins.
	Advertise(name string) error

	// StopAdvertise retires the current advertisement. Stopping when
	// nothing is being advertised is not an error.
	StopAdvertise() error

	// ScanBurst listens for at most d, invoking fn for every sighting
	// with signal strength at or above minRSSI. fn returns false to
	// end the burst early. ScanBurst blocks until the burst ends; it
	// is the one designed suspension point of the sync loop.
	ScanBurst(d time.Duration, minRSSI int16, fn func(ScanHit) bool) error

	// Deinit quiesces the radio so a different role can Init it again.
	Deinit()
}

// NoRadio is the RadioDriver for devices that must stay off the air,
// by policy or because the board has no radio at all. Init reports
// the radio as unavailable so sync code takes its local-only path.
type NoRadio struct{}

func (NoRadio) Init() error            { return ErrRadioUnavailable }
func (NoRadio) Advertise(string) error { return ErrRadioUnavailable }
func (NoRadio) StopAdvertise() error   { return nil }
func (NoRadio) Deinit()                {}
func (NoRadio) ScanBurst(time.Duration, int16, func(ScanHit) bool) error {
	return ErrRadioUnavailable
}
