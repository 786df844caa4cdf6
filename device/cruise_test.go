package device

import (
	"image/color"
	"testing"
	"time"
)

func TestCruiseIdleWave(t *testing.T) {
	ring := &fakeRing{}
	c := NewCruise(ring, nil)

	c.Update(time.Unix(200, 0), 3)
	if n := ring.lit(); n != 10 {
		t.Fatalf("lit pixels = %d, want the whole ring", n)
	}
	if ring.pixels[0] != (color.RGBA{B: 60, A: 0xff}) {
		t.Errorf("pixel 0 = %v, want mid wave blue", ring.pixels[0])
	}
	if ring.pixels[2] != (color.RGBA{B: 98, A: 0xff}) {
		t.Errorf("pixel 2 = %v, want wave crest", ring.pixels[2])
	}
}

func TestCruiseReactsToSound(t *testing.T) {
	ring := &fakeRing{}
	mic := &fakeMic{samples: []int16{0, 100, -100}}
	c := NewCruise(ring, mic)

	c.Update(time.Unix(200, 0), 4)
	if ring.pixels[0] != (color.RGBA{G: 200, A: 0xff}) {
		t.Errorf("pixel 0 = %v, want the gained delta", ring.pixels[0])
	}
	if ring.pixels[5] != (color.RGBA{G: 255, A: 0xff}) {
		t.Errorf("pixel 5 = %v, want clamped full green", ring.pixels[5])
	}
	if n := ring.lit(); n != 2 {
		t.Errorf("lit pixels = %d, want 2", n)
	}
}

func TestCruiseSpreadsDeltasAcrossRing(t *testing.T) {
	ring := &fakeRing{}
	mic := &fakeMic{samples: []int16{0, 100, 200, 300, 400}}
	c := NewCruise(ring, mic)

	c.Update(time.Unix(200, 0), 4)
	want := color.RGBA{G: 200, A: 0xff}
	for _, pos := range []int{0, 2, 5, 7} {
		if ring.pixels[pos] != want {
			t.Errorf("pixel %d = %v, want %v", pos, ring.pixels[pos], want)
		}
	}
	if n := ring.lit(); n != 4 {
		t.Errorf("lit pixels = %d, want 4", n)
	}
}

func TestCruiseQuietRoomKeepsWave(t *testing.T) {
	ring := &fakeRing{}
	mic := &fakeMic{samples: []int16{40, 40, 40, 40}}
	c := NewCruise(ring, mic)

	c.Update(time.Unix(200, 0), 3)
	if n := ring.lit(); n != 10 {
		t.Errorf("lit pixels = %d, want the idle wave on a quiet mic", n)
	}
}

func TestCruiseFadesBackToWave(t *testing.T) {
	ring := &fakeRing{}
	mic := &fakeMic{samples: []int16{0, 127, -128}}
	c := NewCruise(ring, mic)
	now := time.Unix(200, 0)

	c.Update(now, 3)
	if n := ring.lit(); n == 10 {
		t.Fatalf("expected a sparse reactive frame, got a full ring")
	}

	// The music stops and the levels drain until the wave takes over.
	mic.samples = []int16{10, 10, 10}
	for i := 0; i < 40; i++ {
		now = now.Add(cruisePass)
		c.Update(now, 3)
	}
	if n := ring.lit(); n != 10 {
		t.Errorf("lit pixels = %d, want the wave after the music stops", n)
	}
}

func TestCruisePassGate(t *testing.T) {
	ring := &fakeRing{}
	c := NewCruise(ring, nil)
	now := time.Unix(200, 0)

	c.Update(now, 1)
	shows := ring.shows
	c.Update(now.Add(10*time.Millisecond), 1)
	if ring.shows != shows {
		t.Errorf("cruise drew inside its pass interval")
	}
}
