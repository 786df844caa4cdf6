package device

import (
	"image/color"
	"time"

	"illo/config"
	"illo/core"
)

// feedbackHold is how long a selection flash stays on the ring before
// it is cleared and the active routine takes over again.
const feedbackHold = 800 * time.Millisecond

// flashRoutine lights one pixel per routine number in the routine's
// signature color.
func flashRoutine(ring core.PixelRing, routine int) {
	ring.Fill(core.Black)
	c := routineColor(routine)
	for i := 0; i < routine && i < ring.Len(); i++ {
		ring.SetPixel(i, c)
	}
	ring.Show()
}

func routineColor(routine int) color.RGBA {
	switch routine {
	case config.RoutineDance:
		return color.RGBA{R: 255, G: 100, A: 0xff}
	case config.RoutineCruise:
		return color.RGBA{G: 255, B: 100, A: 0xff}
	case config.RoutineMeditate:
		return color.RGBA{G: 100, B: 255, A: 0xff}
	default:
		return color.RGBA{R: 255, G: 255, B: 255, A: 0xff}
	}
}

var quadrants = [4]int{0, 3, 6, 9}

// flashMode lights one quadrant position per mode number in the
// mode's color.
func flashMode(ring core.PixelRing, mode int) {
	ring.Fill(core.Black)
	c := modeColor(mode)
	for i := 0; i < mode && i < len(quadrants); i++ {
		ring.SetPixel(quadrants[i], c)
	}
	ring.Show()
}

func modeColor(mode int) color.RGBA {
	switch mode {
	case 1:
		return color.RGBA{R: 255, A: 0xff}
	case 2:
		return color.RGBA{R: 255, B: 255, A: 0xff}
	case 3:
		return color.RGBA{B: 255, A: 0xff}
	case 4:
		return color.RGBA{G: 255, A: 0xff}
	default:
		return color.RGBA{R: 255, G: 255, B: 255, A: 0xff}
	}
}

// flashBreathing previews a breathing pattern as rings expanding from
// the center pair, one ring per pattern step, each dimmer than the
// last. Shown instead of the mode flash while meditating.
func flashBreathing(ring core.PixelRing, pattern int) {
	ring.Fill(core.Black)
	c := breathingColor(pattern)
	ring.SetPixel(4, c)
	ring.SetPixel(5, c)
	if pattern >= 2 {
		d := dimmed(c, 0.6)
		ring.SetPixel(3, d)
		ring.SetPixel(6, d)
	}
	if pattern >= 3 {
		d := dimmed(c, 0.4)
		ring.SetPixel(2, d)
		ring.SetPixel(7, d)
	}
	if pattern == 4 {
		d := dimmed(c, 0.2)
		for _, p := range [4]int{1, 8, 0, 9} {
			ring.SetPixel(p, d)
		}
	}
	ring.Show()
}

func breathingColor(pattern int) color.RGBA {
	switch pattern {
	case 2:
		return color.RGBA{R: 100, G: 200, B: 100, A: 0xff}
	case 3:
		return color.RGBA{R: 200, G: 100, B: 200, A: 0xff}
	case 4:
		return color.RGBA{R: 255, G: 150, A: 0xff}
	default:
		return color.RGBA{G: 150, B: 255, A: 0xff}
	}
}

func dimmed(c color.RGBA, f float32) color.RGBA {
	return color.RGBA{
		R: uint8(float32(c.R) * f),
		G: uint8(float32(c.G) * f),
		B: uint8(float32(c.B) * f),
		A: 0xff,
	}
}
