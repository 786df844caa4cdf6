package dance

import (
	"image/color"
	"testing"
	"time"

	"illo/core"
	"illo/protocol"
)

func TestReconstructorFirstStepFromDark(t *testing.T) {
	ring := &fakeRing{}
	r := NewReconstructor(ring, DefaultConfig())

	frame, err := protocol.Decode("ILLO_5_2_255_0_3_128_1_0_0_2")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !r.Apply(time.Unix(100, 0), frame.Triples) {
		t.Fatal("first apply was gated")
	}

	// With alpha 0.9 a full red 255 pulls cell 2 to 230 in one step,
	// and the green 128 pulls cell 3 to 115.
	if want := (color.RGBA{R: 230, G: 34, B: 34, A: 0xff}); ring.pixels[2] != want {
		t.Errorf("cell 2 = %v, want %v", ring.pixels[2], want)
	}
	if want := (color.RGBA{R: 17, G: 115, B: 17, A: 0xff}); ring.pixels[3] != want {
		t.Errorf("cell 3 = %v, want %v", ring.pixels[3], want)
	}
	if ring.pixels[0] != core.Black {
		t.Errorf("cell 0 = %v, want dark", ring.pixels[0])
	}
	if ring.pixels[7] != core.Black {
		t.Errorf("unlisted cell = %v, want dark", ring.pixels[7])
	}
}

func TestReconstructorConvergesMonotonically(t *testing.T) {
	ring := &fakeRing{}
	r := NewReconstructor(ring, DefaultConfig())
	triples := [protocol.FrameTriples]protocol.Triple{
		{Position: 2, Intensity: 255, Color: protocol.ColorRed},
	}
	now := time.Unix(100, 0)

	prev := uint8(0)
	for i := 0; i < 40; i++ {
		r.Apply(now.Add(time.Duration(i)*20*time.Millisecond), triples)
		got := ring.pixels[2].R
		if got < prev {
			t.Fatalf("step %d: red went %d -> %d, want monotonic", i, prev, got)
		}
		prev = got
	}
	if prev != 255 {
		t.Errorf("converged to %d, want 255", prev)
	}
}

func TestReconstructorDecaysDroppedCells(t *testing.T) {
	ring := &fakeRing{}
	r := NewReconstructor(ring, DefaultConfig())
	now := time.Unix(100, 0)

	r.Apply(now, [protocol.FrameTriples]protocol.Triple{
		{Position: 2, Intensity: 255, Color: protocol.ColorRed},
	})
	r.Apply(now.Add(20*time.Millisecond), [protocol.FrameTriples]protocol.Triple{
		{Position: 7, Intensity: 255, Color: protocol.ColorBlueish},
	})

	// Cell 2 is no longer in the frame and trends toward dark.
	if got := ring.pixels[2].R; got != 23 {
		t.Errorf("dropped cell red = %d, want 23", got)
	}
	if got := ring.pixels[7].B; got != 230 {
		t.Errorf("new cell blue = %d, want 230", got)
	}
}

func TestReconstructorRateLimitsRenders(t *testing.T) {
	ring := &fakeRing{}
	r := NewReconstructor(ring, DefaultConfig())
	now := time.Unix(100, 0)
	triples := [protocol.FrameTriples]protocol.Triple{
		{Position: 2, Intensity: 255, Color: protocol.ColorRed},
	}

	if !r.Apply(now, triples) {
		t.Fatal("first apply was gated")
	}
	if r.Apply(now.Add(10*time.Millisecond), triples) {
		t.Error("rendered inside the render interval")
	}
	if ring.shows != 1 {
		t.Errorf("shows = %d, want 1", ring.shows)
	}
	if !r.Apply(now.Add(15*time.Millisecond), triples) {
		t.Error("gated at the render interval boundary")
	}
}

func TestReconstructorClear(t *testing.T) {
	ring := &fakeRing{}
	r := NewReconstructor(ring, DefaultConfig())
	now := time.Unix(100, 0)

	r.Apply(now, [protocol.FrameTriples]protocol.Triple{
		{Position: 2, Intensity: 255, Color: protocol.ColorRed},
	})
	r.Clear()
	for i, p := range ring.pixels {
		if p != core.Black {
			t.Errorf("cell %d = %v after clear, want dark", i, p)
		}
	}

	// Clearing drops the smoothing state too: no residue pulls cells
	// back up, and the gate reopens for the next frame.
	if !r.Apply(now, [protocol.FrameTriples]protocol.Triple{}) {
		t.Fatal("apply after clear was gated")
	}
	for i, p := range ring.pixels {
		if p != core.Black {
			t.Errorf("cell %d = %v after dark frame, want dark", i, p)
		}
	}
}

func TestReconstructorIgnoresBadPositions(t *testing.T) {
	ring := &fakeRing{}
	r := NewReconstructor(ring, DefaultConfig())

	r.Apply(time.Unix(100, 0), [protocol.FrameTriples]protocol.Triple{
		{Position: 200, Intensity: 255, Color: protocol.ColorRed},
	})
	for i, p := range ring.pixels {
		if p != core.Black {
			t.Errorf("cell %d = %v, want dark", i, p)
		}
	}
}
