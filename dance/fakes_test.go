package dance

import (
	"image/color"
	"time"

	"illo/core"
	"illo/protocol"
)

type fakeRing struct {
	pixels     [protocol.NumPixels]color.RGBA
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

func (r *fakeRing) Show() { r.shows++ }

func (r *fakeRing) SetBrightness(b float32) { r.brightness = b }

func (r *fakeRing) Brightness() float32 { return r.brightness }

type fakeRadio struct {
	initErr error
	stopErr error
	advErr  error
	scanErr error

	calls       []string
	names       []string
	inits       int
	deinits     int
	bursts      [][]core.ScanHit
	burstIdx    int
	delivered   int
	lastWindow  time.Duration
	lastMinRSSI int16
}

func (f *fakeRadio) Init() error {
	f.calls = append(f.calls, "init")
	f.inits++
	return f.initErr
}

func (f *fakeRadio) Advertise(name string) error {
	f.calls = append(f.calls, "advertise")
	if f.advErr != nil {
		return f.advErr
	}
	f.names = append(f.names, name)
	return nil
}

func (f *fakeRadio) StopAdvertise() error {
	f.calls = append(f.calls, "stop")
	return f.stopErr
}

func (f *fakeRadio) ScanBurst(window time.Duration, minRSSI int16, fn func(core.ScanHit) bool) error {
	f.calls = append(f.calls, "scan")
	f.lastWindow = window
	f.lastMinRSSI = minRSSI
	if f.scanErr != nil {
		return f.scanErr
	}
	if f.burstIdx >= len(f.bursts) {
		return nil
	}
	hits := f.bursts[f.burstIdx]
	f.burstIdx++
	for _, h := range hits {
		if h.RSSI < minRSSI {
			continue
		}
		f.delivered++
		if !fn(h) {
			break
		}
	}
	return nil
}

func (f *fakeRadio) Deinit() {
	f.calls = append(f.calls, "deinit")
	f.deinits++
}

type fakeAnimator struct {
	calls   int
	triples [protocol.FrameTriples]protocol.Triple
}

func (a *fakeAnimator) Animate(now time.Time, ring core.PixelRing) [protocol.FrameTriples]protocol.Triple {
	a.calls++
	return a.triples
}
