// Package ble carries sync frames as BLE advertisement local names,
// on the same tinygo.org/x/bluetooth driver for nRF52840 boards and
// for Linux hosts running the follow tools. Broadcast only: no GATT,
// no connections, the advertised name is the entire channel.
package ble

import (
	"time"

	"tinygo.org/x/bluetooth"

	"illo/core"
)

// defaultInterval is the on-air repeat rate for one advertised name.
// It must stay at or below the sync advertise period or some names
// never make it onto the air before the next swap retires them.
const defaultInterval = 20 * time.Millisecond

// Driver runs the one-way sync radio on the platform's default BLE
// adapter. Only one goroutine may use it at a time; the controller
// loop and the host follow tools both satisfy that by construction.
type Driver struct {
	adapter  *bluetooth.Adapter
	adv      *bluetooth.Advertisement
	interval bluetooth.Duration

	powered     bool
	advertising bool
}

var _ core.RadioDriver = (*Driver)(nil)

// New returns a driver on the default adapter. interval is the on-air
// repeat rate for the current name; zero or negative picks the stack
// minimum.
func New(interval time.Duration) *Driver {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Driver{
		adapter:  bluetooth.DefaultAdapter,
		interval: bluetooth.NewDuration(interval),
	}
}

// Init powers the stack up. Enabling cannot be undone on any of the
// supported stacks, so a second Init after Deinit is a no-op rather
// than a second enable.
func (d *Driver) Init() error {
	if d.powered {
		return nil
	}
	if err := d.adapter.Enable(); err != nil {
		core.Logln("[BLE] enable failed: " + err.Error())
		return core.ErrRadioUnavailable
	}
	d.adv = d.adapter.DefaultAdvertisement()
	d.powered = true
	return nil
}

// Advertise swaps the broadcast name. The stack cannot change a live
// advertisement's payload, so every swap is stop, reconfigure, start.
func (d *Driver) Advertise(name string) error {
	if !d.powered {
		return core.ErrRadioUnavailable
	}
	if err := d.StopAdvertise(); err != nil {
		return err
	}
	err := d.adv.Configure(bluetooth.AdvertisementOptions{
		LocalName: name,
		Interval:  d.interval,
	})
	if err != nil {
		return err
	}
	if err := d.adv.Start(); err != nil {
		return err
	}
	d.advertising = true
	return nil
}

// StopAdvertise retires the current advertisement. Stopping when
// nothing is on the air is not an error.
func (d *Driver) StopAdvertise() error {
	if !d.powered || !d.advertising {
		return nil
	}
	d.advertising = false
	return d.adv.Stop()
}

// ScanBurst listens for window, reporting every named sighting at or
// above minRSSI. It blocks for the whole window unless fn ends the
// burst early.
func (d *Driver) ScanBurst(window time.Duration, minRSSI int16, fn func(core.ScanHit) bool) error {
	if !d.powered {
		return core.ErrRadioUnavailable
	}
	cutoff := time.AfterFunc(window, func() {
		_ = d.adapter.StopScan()
	})
	defer cutoff.Stop()
	return d.adapter.Scan(func(a *bluetooth.Adapter, hit bluetooth.ScanResult) {
		if hit.RSSI < minRSSI {
			return
		}
		name := hit.LocalName()
		if name == "" {
			return
		}
		if !fn(core.ScanHit{Name: name, RSSI: hit.RSSI}) {
			_ = a.StopScan()
		}
	})
}

// Deinit retires any advertisement and scan in progress. The adapter
// itself stays powered, none of the stacks can take it down.
func (d *Driver) Deinit() {
	if !d.powered {
		return
	}
	_ = d.StopAdvertise()
	_ = d.adapter.StopScan()
}
