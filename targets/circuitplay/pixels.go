//go:build circuitplay_bluefruit

package main

import (
	"image/color"
	"machine"

	"tinygo.org/x/drivers/ws2812"
)

const ringPixels = 10

// Ring drives the board's ten NeoPixels. Colors are staged in memory
// and pushed on Show, scaled by the current brightness, because the
// ws2812 wire protocol cannot update a pixel in place.
type Ring struct {
	strip      ws2812.Device
	pixels     [ringPixels]color.RGBA
	out        [ringPixels]color.RGBA
	brightness float32
}

func NewRing() *Ring {
	pin := machine.NEOPIXELS
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	return &Ring{strip: ws2812.New(pin), brightness: 0.1}
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

func (r *Ring) Show() {
	b := r.brightness
	for i, c := range r.pixels {
		r.out[i] = color.RGBA{
			R: uint8(float32(c.R) * b),
			G: uint8(float32(c.G) * b),
			B: uint8(float32(c.B) * b),
			A: 0xff,
		}
	}
	// The strip has no status line to report back on; a failed write
	// shows up as a stale frame and the next Show covers it.
	_ = r.strip.WriteColors(r.out[:])
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
