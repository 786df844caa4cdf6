package visual

import (
	"math"
	"time"

	"illo/audio"
	"illo/core"
	"illo/protocol"
)

// FeatureSource supplies one batch of audio features per call.
// *audio.Processor satisfies it.
type FeatureSource interface {
	Process() (audio.Features, error)
}

const (
	visualizerPass = 30 * time.Millisecond
	deltaGain      = 2.5
	visibleAbove   = 50
	redAbove       = 200
	greenAbove     = 140
	persistDecay   = 0.75
	rotationGain   = 0.01
)

// Visualizer maps microphone energy onto the ring. Each sample delta
// drives one pixel, the whole picture rotates with the dominant
// frequency, and lit pixels decay over a few passes so beats leave a
// short wake. When the feature source yields nothing, a comet runs in
// its place so the ring never freezes.
type Visualizer struct {
	src      FeatureSource
	idle     *Comet
	levels   [protocol.NumPixels]float32
	offset   float32
	lastPass time.Time
	triples  [protocol.FrameTriples]protocol.Triple
}

func NewVisualizer(src FeatureSource) *Visualizer {
	return &Visualizer{src: src, idle: NewComet()}
}

// Animate runs one visualizer pass, at most once per pass interval.
// Between passes it returns the previous frame content unchanged.
func (v *Visualizer) Animate(now time.Time, ring core.PixelRing) [protocol.FrameTriples]protocol.Triple {
	if !v.lastPass.IsZero() && now.Sub(v.lastPass) < visualizerPass {
		return v.triples
	}
	var dt float32
	if !v.lastPass.IsZero() {
		dt = float32(now.Sub(v.lastPass).Seconds())
	}
	v.lastPass = now

	features, err := v.src.Process()
	if err != nil || len(features.Deltas) == 0 {
		v.triples = v.idle.Animate(now, ring)
		return v.triples
	}

	var targets [protocol.NumPixels]float32
	for i := 0; i < protocol.NumPixels && i < len(features.Deltas); i++ {
		d := features.Deltas[i]
		if d < 0 {
			d = -d
		}
		t := float32(d) * deltaGain
		if t > protocol.MaxIntensity {
			t = protocol.MaxIntensity
		}
		targets[i] = t
	}
	for i := range v.levels {
		v.levels[i] *= persistDecay
		if targets[i] > v.levels[i] {
			v.levels[i] = targets[i]
		}
	}

	v.offset += features.Frequency * dt * rotationGain
	v.offset = float32(math.Mod(float64(v.offset), protocol.NumPixels))
	shift := int(v.offset)

	ring.Fill(core.Black)
	for i, level := range v.levels {
		n := int(level)
		if n <= visibleAbove {
			continue
		}
		pos := (i + shift) % protocol.NumPixels
		ring.SetPixel(pos, ThemedRGB(uint8(n), colorFor(n)))
	}
	ring.Show()

	v.triples = v.topThree(shift)
	return v.triples
}

func colorFor(intensity int) protocol.ColorType {
	switch {
	case intensity > redAbove:
		return protocol.ColorRed
	case intensity > greenAbove:
		return protocol.ColorGreen
	default:
		return protocol.ColorBlueish
	}
}

// topThree picks the brightest visible pixels for broadcast, taking
// the lower ring position on equal intensity. Unused slots stay dark.
func (v *Visualizer) topThree(shift int) [protocol.FrameTriples]protocol.Triple {
	var out [protocol.FrameTriples]protocol.Triple
	var taken [protocol.NumPixels]bool
	for slot := 0; slot < protocol.FrameTriples; slot++ {
		best := -1
		bestLevel := visibleAbove
		bestPos := protocol.NumPixels
		for i := range v.levels {
			n := int(v.levels[i])
			if taken[i] || n <= visibleAbove {
				continue
			}
			pos := (i + shift) % protocol.NumPixels
			if n > bestLevel || (best >= 0 && n == bestLevel && pos < bestPos) {
				best, bestLevel, bestPos = i, n, pos
			}
		}
		if best < 0 {
			break
		}
		taken[best] = true
		out[slot] = protocol.Triple{
			Position:  uint8(bestPos),
			Intensity: uint8(bestLevel),
			Color:     colorFor(bestLevel),
		}
	}
	return out
}
