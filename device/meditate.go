package device

import (
	"image/color"
	"math"
	"time"

	"illo/core"
	"illo/visual"
)

const (
	meditatePass       = 50 * time.Millisecond
	meditateBrightness = 0.05
)

type breathPhase int8

const (
	phaseNone breathPhase = iota - 1
	phaseInhale
	phaseHold1
	phaseExhale
	phaseHold2
)

// breathPattern is one breathing technique, phase lengths in seconds.
// Square patterns expand pixel by pixel instead of ring by ring.
type breathPattern struct {
	name                         string
	inhale, hold1, exhale, hold2 float64
	square                       bool
}

// The display mode doubles as the pattern selector here.
var breathPatterns = [4]breathPattern{
	{name: "4-7-8 Breathing", inhale: 4, hold1: 7, exhale: 8},
	{name: "Box Breathing", inhale: 4, hold1: 4, exhale: 4, hold2: 4, square: true},
	{name: "Triangle Breathing", inhale: 4, hold1: 4, exhale: 4},
	{name: "Deep Relaxation", inhale: 6, hold1: 2, exhale: 8},
}

// Meditate breathes the ring through inhale, hold and exhale phases.
// It is deliberately silent and non-reactive: no audio, no radio, and
// the ring is pinned near its minimum brightness until Cleanup. When
// ambient light is low the cycle stretches out for evening sessions.
type Meditate struct {
	ring     core.PixelRing
	inputs   core.InputDriver
	adaptive bool

	start         time.Time
	lastStep      time.Time
	lastPhase     breathPhase
	lastIntensity int
	lastMode      int

	saved  float32
	dimmed bool
}

func NewMeditate(ring core.PixelRing, inputs core.InputDriver) *Meditate {
	return &Meditate{
		ring:          ring,
		inputs:        inputs,
		adaptive:      true,
		lastPhase:     phaseNone,
		lastIntensity: -1,
	}
}

func (m *Meditate) Name() string { return "Meditate" }

// Update advances the breathing cycle. The cycle position is derived
// from wall time rather than accumulated steps, so a stalled loop
// resumes mid-breath instead of drifting.
func (m *Meditate) Update(now time.Time, mode int) {
	if !m.lastStep.IsZero() && now.Sub(m.lastStep) < meditatePass {
		return
	}
	m.lastStep = now
	if m.start.IsZero() {
		m.start = now
	}
	if mode < 1 || mode > len(breathPatterns) {
		mode = 1
	}

	pattern := breathPatterns[mode-1]
	palette := visual.ModePalette(mode)
	mult := m.paceMultiplier()

	total := (pattern.inhale + pattern.hold1 + pattern.exhale + pattern.hold2) * mult
	cyclePos := math.Mod(now.Sub(m.start).Seconds(), total) / total

	inhaleEnd := pattern.inhale * mult / total
	hold1End := (pattern.inhale + pattern.hold1) * mult / total
	exhaleEnd := (pattern.inhale + pattern.hold1 + pattern.exhale) * mult / total

	var phase breathPhase
	var intensity int
	switch {
	case cyclePos < inhaleEnd:
		phase = phaseInhale
		intensity = int(255 * (cyclePos / inhaleEnd))
	case cyclePos < hold1End:
		phase = phaseHold1
		intensity = 255
	case cyclePos < exhaleEnd:
		phase = phaseExhale
		progress := (cyclePos - hold1End) / (exhaleEnd - hold1End)
		// Fade to a gentle glow, never fully dark.
		intensity = int(255 * (1 - progress*0.9))
		if intensity < 25 {
			intensity = 25
		}
	default:
		phase = phaseHold2
		intensity = 30
	}

	m.render(palette, intensity, phase, pattern)

	if phase != m.lastPhase {
		if phase == phaseInhale || mode != m.lastMode {
			core.Logln("[MEDITATE] " + pattern.name)
			m.lastMode = mode
		}
		m.lastPhase = phase
	}
}

// paceMultiplier stretches or shrinks the breath cycle with ambient
// light. Dark rooms breathe slower, bright daylight slightly faster.
func (m *Meditate) paceMultiplier() float64 {
	if !m.adaptive {
		return 1
	}
	lux := toLux(m.inputs.ReadInputs().LightLevel)
	switch {
	case lux < 30:
		return 1.3
	case lux < 60:
		return 1.15
	case lux > 150:
		return 0.9
	default:
		return 1
	}
}

// render redraws the ring unless the picture would be near identical
// to the previous one. Phase changes always redraw.
func (m *Meditate) render(palette func(uint8) color.RGBA, intensity int, phase breathPhase, pattern breathPattern) {
	delta := intensity - m.lastIntensity
	if delta < 0 {
		delta = -delta
	}
	if delta < 5 && phase == m.lastPhase {
		return
	}
	m.lastIntensity = intensity

	if !m.dimmed {
		m.saved = m.ring.Brightness()
		m.dimmed = true
	}
	if m.ring.Brightness() != meditateBrightness {
		m.ring.SetBrightness(meditateBrightness)
	}

	m.ring.Fill(core.Black)
	switch phase {
	case phaseHold1:
		c := palette(uint8(intensity))
		for i := 0; i < m.ring.Len(); i++ {
			m.ring.SetPixel(i, c)
		}
	case phaseHold2:
		c := palette(uint8(intensity))
		m.ring.SetPixel(4, c)
		m.ring.SetPixel(5, c)
	default:
		m.expansion(palette, intensity, pattern.square)
	}
	m.ring.Show()
}

// expansion grows the lit area outward from the center pair as the
// breath deepens. Each step past the center fades in over the last
// fifth of the intensity that unlocked it.
func (m *Meditate) expansion(palette func(uint8) color.RGBA, intensity int, square bool) {
	level := float64(intensity) / 255 * 5
	c := palette(uint8(intensity))
	m.ring.SetPixel(4, c)
	m.ring.SetPixel(5, c)

	fade := func(i int) uint8 {
		f := level - float64(i) - 1
		if f > 1 {
			f = 1
		}
		return uint8(float64(intensity) * f)
	}

	if square {
		for i, pos := range [4]int{3, 6, 2, 7} {
			if level > float64(i+1) {
				m.ring.SetPixel(pos, palette(fade(i)))
			}
		}
		return
	}
	for i, pair := range [4][2]int{{3, 6}, {2, 7}, {1, 8}, {0, 9}} {
		if level > float64(i+1) {
			d := palette(fade(i))
			m.ring.SetPixel(pair[0], d)
			m.ring.SetPixel(pair[1], d)
		}
	}
}

// Cleanup clears the ring and hands the saved brightness back so the
// next routine does not start at meditation dimness.
func (m *Meditate) Cleanup() {
	m.ring.Fill(core.Black)
	m.ring.Show()
	if m.dimmed {
		m.ring.SetBrightness(m.saved)
		m.dimmed = false
	}
}
