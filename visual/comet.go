package visual

import (
	"time"

	"illo/core"
	"illo/protocol"
)

// CometStepInterval is how often the idle comet advances one pixel.
// Broadcast periods longer than this skip comet steps on the air.
const CometStepInterval = 150 * time.Millisecond

const (
	cometHead   = 120
	cometTrail1 = 80
	cometTrail2 = 50
)

// Comet is the idle animation: a short blueish tail chasing around the
// ring. The dance routine falls back to it when no audio is usable.
type Comet struct {
	pos      int
	lastStep time.Time
	triples  [protocol.FrameTriples]protocol.Triple
}

func NewComet() *Comet {
	return &Comet{}
}

// Animate draws the comet when its step interval has elapsed. Between
// steps the previous frame content is returned unchanged and the ring
// is left alone.
func (c *Comet) Animate(now time.Time, ring core.PixelRing) [protocol.FrameTriples]protocol.Triple {
	if !c.lastStep.IsZero() && now.Sub(c.lastStep) < CometStepInterval {
		return c.triples
	}
	c.lastStep = now

	head := c.pos
	tail1 := (c.pos + protocol.NumPixels - 1) % protocol.NumPixels
	tail2 := (c.pos + protocol.NumPixels - 2) % protocol.NumPixels
	c.triples = [protocol.FrameTriples]protocol.Triple{
		{Position: uint8(head), Intensity: cometHead, Color: protocol.ColorBlueish},
		{Position: uint8(tail1), Intensity: cometTrail1, Color: protocol.ColorBlueish},
		{Position: uint8(tail2), Intensity: cometTrail2, Color: protocol.ColorBlueish},
	}

	ring.Fill(core.Black)
	for _, t := range c.triples {
		ring.SetPixel(int(t.Position), ThemedRGB(t.Intensity, t.Color))
	}
	ring.Show()

	c.pos = (c.pos + 1) % protocol.NumPixels
	return c.triples
}
