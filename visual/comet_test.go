package visual

import (
	"image/color"
	"testing"
	"time"

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

func TestCometFirstFrame(t *testing.T) {
	ring := &fakeRing{}
	c := NewComet()
	now := time.Unix(100, 0)

	got := c.Animate(now, ring)
	want := [protocol.FrameTriples]protocol.Triple{
		{Position: 0, Intensity: 120, Color: protocol.ColorBlueish},
		{Position: 9, Intensity: 80, Color: protocol.ColorBlueish},
		{Position: 8, Intensity: 50, Color: protocol.ColorBlueish},
	}
	if got != want {
		t.Errorf("first frame = %v, want %v", got, want)
	}
	if ring.shows != 1 {
		t.Errorf("shows = %d, want 1", ring.shows)
	}
	if ring.pixels[0] != ThemedRGB(120, protocol.ColorBlueish) {
		t.Errorf("head pixel = %v", ring.pixels[0])
	}
	if ring.pixels[9] != ThemedRGB(80, protocol.ColorBlueish) {
		t.Errorf("tail pixel = %v", ring.pixels[9])
	}
	if ring.pixels[5] != ThemedRGB(0, protocol.ColorBlueish) {
		t.Errorf("unlit pixel = %v", ring.pixels[5])
	}
}

func TestCometHoldsBetweenSteps(t *testing.T) {
	ring := &fakeRing{}
	c := NewComet()
	now := time.Unix(100, 0)

	first := c.Animate(now, ring)
	held := c.Animate(now.Add(100*time.Millisecond), ring)
	if held != first {
		t.Errorf("frame changed before step interval: %v vs %v", held, first)
	}
	if ring.shows != 1 {
		t.Errorf("shows = %d, want 1", ring.shows)
	}
}

func TestCometAdvancesAndWraps(t *testing.T) {
	ring := &fakeRing{}
	c := NewComet()
	now := time.Unix(100, 0)

	for step := 0; step <= protocol.NumPixels; step++ {
		got := c.Animate(now.Add(time.Duration(step)*CometStepInterval), ring)
		wantHead := uint8(step % protocol.NumPixels)
		if got[0].Position != wantHead {
			t.Errorf("step %d: head at %d, want %d", step, got[0].Position, wantHead)
		}
	}
	if ring.shows != protocol.NumPixels+1 {
		t.Errorf("shows = %d, want %d", ring.shows, protocol.NumPixels+1)
	}
}
