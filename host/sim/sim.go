package sim

import "time"

// Sim owns a scenario's worth of toys on one medium and a shared
// virtual clock. Each Tick advances the clock one scenario step and
// runs every controller once, so a second of floor time costs the
// same wall time regardless of device count.
type Sim struct {
	Scenario *Scenario
	Medium   *Medium
	Devices  []*SimDevice

	start time.Time
	now   time.Time
}

// New builds the medium and boots every device in the scenario.
func New(sc *Scenario) *Sim {
	s := &Sim{
		Scenario: sc,
		Medium:   NewMedium(sc.Medium),
		start:    time.Unix(0, 0),
	}
	s.now = s.start
	for _, spec := range sc.Devices {
		s.Devices = append(s.Devices, NewSimDevice(spec, s.Medium.Join(spec.Name), s.Now))
	}
	return s
}

// Now is the shared virtual clock.
func (s *Sim) Now() time.Time { return s.now }

// Elapsed is the virtual time since boot.
func (s *Sim) Elapsed() time.Duration { return s.now.Sub(s.start) }

// Tick advances the clock one step and runs every toy once.
func (s *Sim) Tick() {
	s.now = s.now.Add(s.Scenario.Step())
	for _, d := range s.Devices {
		d.Step(s.now)
	}
}
