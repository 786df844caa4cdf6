package device

import (
	"image/color"
	"time"

	"illo/core"
)

type fakeRing struct {
	pixels     [10]color.RGBA
	brightness float32
	shows      int
}

func (r *fakeRing) Len() int { return len(r.pixels) }

func (r *fakeRing) SetPixel(i int, c color.RGBA) {
	if i >= 0 && i < len(r.pixels) {
		r.pixels[i] = c
	}
}

func (r *fakeRing) Fill(c color.RGBA) {
	for i := range r.pixels {
		r.pixels[i] = c
	}
}

func (r *fakeRing) Show()                   { r.shows++ }
func (r *fakeRing) SetBrightness(b float32) { r.brightness = b }
func (r *fakeRing) Brightness() float32     { return r.brightness }

func (r *fakeRing) lit() int {
	n := 0
	for _, p := range r.pixels {
		if p.R != 0 || p.G != 0 || p.B != 0 {
			n++
		}
	}
	return n
}

// fakeInputs serves a settable control state.
type fakeInputs struct {
	state core.InputState
	reads int
}

func (f *fakeInputs) ReadInputs() core.InputState {
	f.reads++
	return f.state
}

func (f *fakeInputs) Acceleration() (int32, int32, int32, error) {
	return 0, 0, 0, core.ErrNoAccelerometer
}

type memStore struct {
	data    []byte
	saves   int
	saveErr error
	loadErr error
}

func (s *memStore) Load() ([]byte, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	if s.data == nil {
		return nil, core.ErrNoConfig
	}
	return s.data, nil
}

func (s *memStore) Save(data []byte) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.data = append([]byte(nil), data...)
	s.saves++
	return nil
}

// fakeRadio records driver calls so tests can tell whether a routine
// took the air.
type fakeRadio struct {
	inits      int
	deinits    int
	advertised []string
	scans      int
}

func (r *fakeRadio) Init() error { r.inits++; return nil }

func (r *fakeRadio) Advertise(name string) error {
	r.advertised = append(r.advertised, name)
	return nil
}

func (r *fakeRadio) StopAdvertise() error { return nil }

func (r *fakeRadio) ScanBurst(d time.Duration, minRSSI int16, fn func(core.ScanHit) bool) error {
	r.scans++
	return nil
}

func (r *fakeRadio) Deinit() { r.deinits++ }

// fakeMic replays one fixed sample block forever.
type fakeMic struct {
	samples []int16
}

func (m *fakeMic) ReadSamples(buf []int16) (int, error) {
	n := copy(buf, m.samples)
	return n, nil
}
