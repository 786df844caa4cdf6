package sim

import (
	"errors"
	"testing"
	"time"

	"illo/core"
)

func scanAll(t *testing.T, r *Radio, minRSSI int16) []core.ScanHit {
	t.Helper()
	var hits []core.ScanHit
	err := r.ScanBurst(100*time.Millisecond, minRSSI, func(h core.ScanHit) bool {
		hits = append(hits, h)
		return true
	})
	if err != nil {
		t.Fatalf("ScanBurst: %v", err)
	}
	return hits
}

func joinUp(t *testing.T, m *Medium, id string) *Radio {
	t.Helper()
	r := m.Join(id)
	if err := r.Init(); err != nil {
		t.Fatalf("Init %s: %v", id, err)
	}
	return r
}

func TestMediumDeliversBetweenPorts(t *testing.T) {
	m := NewMedium(MediumConfig{Seed: 1})
	a := joinUp(t, m, "a")
	b := joinUp(t, m, "b")

	if err := a.Advertise("ILLO_1_0_120_2_0_0_0_0_0_0"); err != nil {
		t.Fatalf("Advertise: %v", err)
	}

	hits := scanAll(t, b, -90)
	if len(hits) != 1 {
		t.Fatalf("got %d hits, want 1", len(hits))
	}
	if hits[0].Name != "ILLO_1_0_120_2_0_0_0_0_0_0" {
		t.Errorf("hit name = %q", hits[0].Name)
	}
	if hits[0].RSSI < baseRSSI-rssiJitter || hits[0].RSSI > baseRSSI+rssiJitter {
		t.Errorf("hit RSSI = %d, want within %d of %d", hits[0].RSSI, rssiJitter, baseRSSI)
	}
}

func TestMediumPortDoesNotHearItself(t *testing.T) {
	m := NewMedium(MediumConfig{Seed: 1})
	a := joinUp(t, m, "a")

	if err := a.Advertise("ILLO_1_0_0_0_0_0_0_0_0_0"); err != nil {
		t.Fatalf("Advertise: %v", err)
	}
	if hits := scanAll(t, a, -90); len(hits) != 0 {
		t.Errorf("port heard its own advertisement: %v", hits)
	}
}

func TestMediumLossModel(t *testing.T) {
	cases := []struct {
		name string
		cfg  MediumConfig
		want int
	}{
		{"lossless", MediumConfig{Seed: 1}, 1},
		{"full drop", MediumConfig{Drop: 1, Seed: 1}, 0},
		{"full dup", MediumConfig{Dup: 1, Seed: 1}, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := NewMedium(tc.cfg)
			a := joinUp(t, m, "a")
			b := joinUp(t, m, "b")
			if err := a.Advertise("ILLO_5_1_200_1_0_0_0_0_0_0"); err != nil {
				t.Fatalf("Advertise: %v", err)
			}
			if hits := scanAll(t, b, -90); len(hits) != tc.want {
				t.Errorf("got %d hits, want %d", len(hits), tc.want)
			}
		})
	}
}

func TestMediumStaleDeliversPreviousToken(t *testing.T) {
	m := NewMedium(MediumConfig{Stale: 1, Seed: 1})
	a := joinUp(t, m, "a")
	b := joinUp(t, m, "b")

	if err := a.Advertise("first"); err != nil {
		t.Fatalf("Advertise: %v", err)
	}
	if err := a.Advertise("second"); err != nil {
		t.Fatalf("Advertise: %v", err)
	}

	hits := scanAll(t, b, -90)
	if len(hits) != 1 {
		t.Fatalf("got %d hits, want 1", len(hits))
	}
	if hits[0].Name != "first" {
		t.Errorf("stale hit = %q, want the previous token", hits[0].Name)
	}
}

func TestMediumStaleNeedsHistory(t *testing.T) {
	m := NewMedium(MediumConfig{Stale: 1, Seed: 1})
	a := joinUp(t, m, "a")
	b := joinUp(t, m, "b")

	// Only one token ever advertised, there is nothing stale to send.
	if err := a.Advertise("only"); err != nil {
		t.Fatalf("Advertise: %v", err)
	}
	hits := scanAll(t, b, -90)
	if len(hits) != 1 || hits[0].Name != "only" {
		t.Errorf("hits = %v, want the current token", hits)
	}
}

func TestMediumStaleSurvivesRestart(t *testing.T) {
	m := NewMedium(MediumConfig{Stale: 1, Seed: 1})
	a := joinUp(t, m, "a")
	b := joinUp(t, m, "b")

	// The broadcaster swaps tokens with a stop-then-start pair; the
	// retired token must still be sightable as stale.
	if err := a.Advertise("first"); err != nil {
		t.Fatalf("Advertise: %v", err)
	}
	if err := a.StopAdvertise(); err != nil {
		t.Fatalf("StopAdvertise: %v", err)
	}
	if err := a.Advertise("second"); err != nil {
		t.Fatalf("Advertise: %v", err)
	}

	hits := scanAll(t, b, -90)
	if len(hits) != 1 {
		t.Fatalf("got %d hits, want 1", len(hits))
	}
	if hits[0].Name != "first" {
		t.Errorf("stale hit = %q, want the retired token", hits[0].Name)
	}
}

func TestMediumMinRSSIFilters(t *testing.T) {
	m := NewMedium(MediumConfig{Seed: 1})
	a := joinUp(t, m, "a")
	b := joinUp(t, m, "b")

	if err := a.Advertise("ILLO_1_0_0_0_0_0_0_0_0_0"); err != nil {
		t.Fatalf("Advertise: %v", err)
	}
	if hits := scanAll(t, b, -40); len(hits) != 0 {
		t.Errorf("weak signal passed a -40 floor: %v", hits)
	}
}

func TestMediumFailNextAdvertise(t *testing.T) {
	m := NewMedium(MediumConfig{Seed: 1})
	a := joinUp(t, m, "a")

	boom := errors.New("air jammed")
	m.FailNextAdvertise(boom)
	if err := a.Advertise("x"); !errors.Is(err, boom) {
		t.Fatalf("Advertise = %v, want injected error", err)
	}
	if err := a.Advertise("x"); err != nil {
		t.Fatalf("second Advertise = %v, injection should be one-shot", err)
	}
}

func TestRadioLifecycle(t *testing.T) {
	m := NewMedium(MediumConfig{Seed: 1})
	a := joinUp(t, m, "a")
	b := joinUp(t, m, "b")

	if err := a.Advertise("up"); err != nil {
		t.Fatalf("Advertise: %v", err)
	}
	if err := a.StopAdvertise(); err != nil {
		t.Fatalf("StopAdvertise: %v", err)
	}
	if hits := scanAll(t, b, -90); len(hits) != 0 {
		t.Errorf("stopped port still on the air: %v", hits)
	}

	a.Deinit()
	if a.Powered() {
		t.Error("port still powered after Deinit")
	}
	if err := a.Advertise("x"); !errors.Is(err, core.ErrRadioUnavailable) {
		t.Errorf("Advertise on dead port = %v, want ErrRadioUnavailable", err)
	}
	if err := a.Init(); err != nil {
		t.Fatalf("re-Init: %v", err)
	}
	if err := a.Advertise("back"); err != nil {
		t.Fatalf("Advertise after re-Init: %v", err)
	}
	hits := scanAll(t, b, -90)
	if len(hits) != 1 || hits[0].Name != "back" {
		t.Errorf("hits after re-Init = %v", hits)
	}
}

func TestMediumSetDropClamps(t *testing.T) {
	m := NewMedium(MediumConfig{Seed: 1})
	m.SetDrop(1.5)
	if got := m.Drop(); got != 1 {
		t.Errorf("Drop = %v, want clamped to 1", got)
	}
	m.SetDrop(-0.5)
	if got := m.Drop(); got != 0 {
		t.Errorf("Drop = %v, want clamped to 0", got)
	}
}
