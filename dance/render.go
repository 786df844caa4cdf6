package dance

import (
	"image/color"
	"time"

	"illo/core"
	"illo/protocol"
	"illo/visual"
)

// Reconstructor expands sparse frames into the full ring. Positions a
// frame does not mention go dark, and every color channel is smoothed
// toward its target so consecutive frames blend instead of stepping.
type Reconstructor struct {
	ring      core.PixelRing
	alpha     float32
	minRender time.Duration

	smoothed   [protocol.NumPixels][3]float32
	lastRender time.Time
}

func NewReconstructor(ring core.PixelRing, cfg Config) *Reconstructor {
	return &Reconstructor{ring: ring, alpha: cfg.SmoothAlpha, minRender: cfg.MinRenderInterval}
}

// Apply renders one frame and reports whether it did. Frames arriving
// faster than the render interval are dropped whole, smoothing state
// untouched, so redraw cost stays bounded however fast frames come.
func (r *Reconstructor) Apply(now time.Time, triples [protocol.FrameTriples]protocol.Triple) bool {
	if !r.lastRender.IsZero() && now.Sub(r.lastRender) < r.minRender {
		return false
	}
	r.lastRender = now

	var targets [protocol.NumPixels][3]float32
	for _, t := range triples {
		if int(t.Position) >= protocol.NumPixels {
			continue
		}
		c := visual.ThemedRGB(t.Intensity, t.Color)
		targets[t.Position] = [3]float32{float32(c.R), float32(c.G), float32(c.B)}
	}

	for i := range r.smoothed {
		for ch := 0; ch < 3; ch++ {
			s := r.smoothed[i][ch]
			r.smoothed[i][ch] = s + (targets[i][ch]-s)*r.alpha
		}
		r.ring.SetPixel(i, color.RGBA{
			R: clampRound(r.smoothed[i][0]),
			G: clampRound(r.smoothed[i][1]),
			B: clampRound(r.smoothed[i][2]),
			A: 0xff,
		})
	}
	r.ring.Show()
	return true
}

// Clear blacks out the ring and zeroes the smoothing state.
func (r *Reconstructor) Clear() {
	r.smoothed = [protocol.NumPixels][3]float32{}
	r.lastRender = time.Time{}
	r.ring.Fill(core.Black)
	r.ring.Show()
}

func clampRound(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
