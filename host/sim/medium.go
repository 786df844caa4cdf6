// Package sim runs whole toys in one process: the real controller and
// routines on a virtual clock, wired to a lossy loopback medium instead
// of the BLE stack. One leader and a crowd of followers fit in a
// terminal, which is where sync bugs are cheapest to find.
package sim

import (
	"math/rand"
	"sync"
	"time"

	"illo/core"
)

const (
	baseRSSI   = -55
	rssiJitter = 5
)

// MediumConfig sets the loss model of the shared air. Drop, Dup and
// Stale are per-sighting probabilities in [0,1]; a zero Seed picks one
// from the wall clock.
type MediumConfig struct {
	Drop  float64 `yaml:"drop"`
	Dup   float64 `yaml:"dup"`
	Stale float64 `yaml:"stale"`
	Seed  int64   `yaml:"seed"`
}

// Medium is the air between simulated toys. Every port sees every
// other port's current advertisement, filtered through the loss model:
// a sighting can be dropped, doubled, or replaced with the name the
// port advertised one frame earlier.
type Medium struct {
	mu    sync.Mutex
	rng   *rand.Rand
	drop  float64
	dup   float64
	stale float64
	ports []*Radio

	onAdv  func(id, name string)
	advErr error
}

func NewMedium(cfg MediumConfig) *Medium {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Medium{
		rng:   rand.New(rand.NewSource(seed)),
		drop:  cfg.Drop,
		dup:   cfg.Dup,
		stale: cfg.Stale,
	}
}

// Join adds a port to the medium and returns its radio.
func (m *Medium) Join(id string) *Radio {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := &Radio{m: m, id: id, rssi: baseRSSI}
	m.ports = append(m.ports, r)
	return r
}

// SetDrop changes the sighting drop probability while running.
func (m *Medium) SetDrop(p float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	m.drop = p
}

// Drop returns the current sighting drop probability.
func (m *Medium) Drop() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.drop
}

// FailNextAdvertise makes the next Advertise on any port return err,
// once. Tests use it to poke the transmit recovery paths.
func (m *Medium) FailNextAdvertise(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.advErr = err
}

// SetOnAdvertise installs a tap that sees every accepted advertisement.
// The tap runs with the medium locked and must not call back into it.
func (m *Medium) SetOnAdvertise(fn func(id, name string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onAdv = fn
}

// Radio is one port on the medium, driving a single simulated toy.
type Radio struct {
	m    *Medium
	id   string
	rssi int16

	powered     bool
	advertising bool
	name, prev  string
}

var _ core.RadioDriver = (*Radio)(nil)

func (r *Radio) Init() error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.powered = true
	return nil
}

func (r *Radio) Advertise(name string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.advErr; err != nil {
		r.m.advErr = nil
		return err
	}
	if !r.powered {
		return core.ErrRadioUnavailable
	}
	if r.advertising {
		r.prev = r.name
	}
	r.name = name
	r.advertising = true
	if r.m.onAdv != nil {
		r.m.onAdv(r.id, name)
	}
	return nil
}

// StopAdvertise takes the port off the air. The retired name stays
// around as the stale candidate, so a stop-then-start swap can still
// be sighted under its old token.
func (r *Radio) StopAdvertise() error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.advertising {
		r.prev = r.name
	}
	r.advertising = false
	return nil
}

// ScanBurst samples every other advertising port through the loss
// model. The burst is instantaneous, no virtual time passes.
func (r *Radio) ScanBurst(d time.Duration, minRSSI int16, fn func(core.ScanHit) bool) error {
	r.m.mu.Lock()
	if !r.powered {
		r.m.mu.Unlock()
		return core.ErrRadioUnavailable
	}
	var hits []core.ScanHit
	for _, p := range r.m.ports {
		if p == r || !p.advertising {
			continue
		}
		if r.m.rng.Float64() < r.m.drop {
			continue
		}
		name := p.name
		if p.prev != "" && r.m.rng.Float64() < r.m.stale {
			name = p.prev
		}
		rssi := p.rssi + int16(r.m.rng.Intn(2*rssiJitter+1)-rssiJitter)
		if rssi < minRSSI {
			continue
		}
		hit := core.ScanHit{Name: name, RSSI: rssi}
		hits = append(hits, hit)
		if r.m.rng.Float64() < r.m.dup {
			hits = append(hits, hit)
		}
	}
	r.m.mu.Unlock()

	for _, hit := range hits {
		if !fn(hit) {
			break
		}
	}
	return nil
}

func (r *Radio) Deinit() {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.powered = false
	r.advertising = false
	r.prev = ""
}

// Current reports the token on the air and whether one is, for
// displays.
func (r *Radio) Current() (string, bool) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if !r.advertising {
		return "", false
	}
	return r.name, true
}

// Powered reports whether the port is up.
func (r *Radio) Powered() bool {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return r.powered
}
