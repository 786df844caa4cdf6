package device

import (
	"image/color"
	"math"
	"time"

	"illo/audio"
	"illo/core"
	"illo/visual"
)

const (
	cruisePass     = 30 * time.Millisecond
	cruiseGain     = 2
	cruiseVisible  = 25
	cruiseDecay    = 0.9
	cruiseRotation = 0.01
	cruiseWave     = 8.0 // seconds per idle wave revolution
)

// Cruise drifts slow color waves around the ring, leaning into the
// room's sound when a microphone is fitted. Compared to the dance
// visualizer it is gentler: lower gain, longer decay, and the whole
// ring stays lit through quiet stretches.
type Cruise struct {
	ring     core.PixelRing
	proc     *audio.Processor
	levels   []float32
	targets  []float32
	offset   float32
	lastPass time.Time
	started  time.Time
}

// NewCruise builds the routine. A nil mic is fine, the idle wave then
// carries the whole show.
func NewCruise(ring core.PixelRing, mic core.AudioSource) *Cruise {
	c := &Cruise{
		ring:    ring,
		levels:  make([]float32, ring.Len()),
		targets: make([]float32, ring.Len()),
	}
	if mic != nil {
		c.proc = audio.NewProcessor(mic, 0)
	}
	return c
}

func (c *Cruise) Name() string { return "Intergalactic Cruising" }

func (c *Cruise) Update(now time.Time, mode int) {
	if !c.lastPass.IsZero() && now.Sub(c.lastPass) < cruisePass {
		return
	}
	var dt float32
	if !c.lastPass.IsZero() {
		dt = float32(now.Sub(c.lastPass).Seconds())
	}
	c.lastPass = now
	if c.started.IsZero() {
		c.started = now
	}

	palette := visual.ModePalette(mode)
	if c.proc != nil {
		if f, err := c.proc.Process(); err == nil && len(f.Deltas) > 0 {
			c.mix(f, dt)
		} else {
			c.fade()
		}
	}
	if c.lit() {
		c.draw(palette)
		return
	}
	c.drift(now, palette)
}

// mix folds a delta batch into the pixel levels. Deltas are spread
// evenly over the ring, so batches longer than ten samples pile onto
// shared pixels rather than falling off the end.
func (c *Cruise) mix(f audio.Features, dt float32) {
	n := len(c.levels)
	for i := range c.targets {
		c.targets[i] = 0
	}
	span := len(f.Deltas)
	for i, d := range f.Deltas {
		if d < 0 {
			d = -d
		}
		ix := int(float32(i)*float32(n-1)/float32(span) + 0.5)
		c.targets[ix] += float32(d) * cruiseGain
	}
	for i := range c.levels {
		t := c.targets[i]
		if t > 255 {
			t = 255
		}
		c.levels[i] *= cruiseDecay
		if t > c.levels[i] {
			c.levels[i] = t
		}
	}
	c.offset += f.Frequency * dt * cruiseRotation
	c.offset = float32(math.Mod(float64(c.offset), float64(n)))
}

func (c *Cruise) fade() {
	for i := range c.levels {
		c.levels[i] *= cruiseDecay
	}
}

func (c *Cruise) lit() bool {
	for _, level := range c.levels {
		if level > cruiseVisible {
			return true
		}
	}
	return false
}

func (c *Cruise) draw(palette func(uint8) color.RGBA) {
	n := len(c.levels)
	shift := int(c.offset)
	c.ring.Fill(core.Black)
	for i, level := range c.levels {
		v := int(level)
		if v <= cruiseVisible {
			continue
		}
		c.ring.SetPixel((i+shift)%n, palette(uint8(v)))
	}
	c.ring.Show()
}

// drift plays a slow wave around the ring whenever the room is quiet,
// so the cruise never goes dark.
func (c *Cruise) drift(now time.Time, palette func(uint8) color.RGBA) {
	t := now.Sub(c.started).Seconds()
	n := c.ring.Len()
	for i := 0; i < n; i++ {
		w := math.Sin(2 * math.Pi * (t/cruiseWave + float64(i)/float64(n)))
		c.ring.SetPixel(i, palette(uint8(60+40*w)))
	}
	c.ring.Show()
}

func (c *Cruise) Cleanup() {
	c.ring.Fill(core.Black)
	c.ring.Show()
}
