//go:build rp2040

package main

import (
	"image/color"
	"machine"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"
	"github.com/tinygo-org/pio/rp2-pio/piolib"
)

const ringPixels = 10

// Ring drives a WS2812 ring from a PIO state machine, so the bit
// timing costs no CPU and the controller loop never stalls mid-frame.
type Ring struct {
	ws         *piolib.WS2812B
	pixels     [ringPixels]color.RGBA
	raw        [ringPixels]uint32
	brightness float32
}

func NewRing(pin machine.Pin) (*Ring, error) {
	sm, err := rp2pio.PIO0.ClaimStateMachine()
	if err != nil {
		return nil, err
	}
	ws, err := piolib.NewWS2812B(sm, pin)
	if err != nil {
		return nil, err
	}
	return &Ring{ws: ws, brightness: 0.1}, nil
}

func (r *Ring) Len() int { return ringPixels }

func (r *Ring) SetPixel(i int, c color.RGBA) {
	if i < 0 || i >= ringPixels {
		return
	}
	r.pixels[i] = c
}

func (r *Ring) Fill(c color.RGBA) {
	for i := range r.pixels {
		r.pixels[i] = c
	}
}

// Show scales the staged colors by brightness and hands the strip its
// raw shift words, green byte first as the wire wants them.
func (r *Ring) Show() {
	b := r.brightness
	for i, c := range r.pixels {
		g := uint32(float32(c.G) * b)
		rr := uint32(float32(c.R) * b)
		bb := uint32(float32(c.B) * b)
		r.raw[i] = g<<24 | rr<<16 | bb<<8
	}
	_ = r.ws.WriteRaw(r.raw[:])
}

func (r *Ring) SetBrightness(b float32) {
	if b < 0 {
		b = 0
	}
	if b > 1 {
		b = 1
	}
	r.brightness = b
}

func (r *Ring) Brightness() float32 { return r.brightness }
