// Package visual renders the ring animations shared by the leader and
// follower paths: the microphone-driven visualizer, the idle comet,
// and the themed color mapping both sides agree on.
package visual

import (
	"image/color"

	"illo/protocol"
)

// ThemedRGB maps a color class and intensity to the ring's palette.
// Followers reproduce the leader's look from the class byte alone, so
// the ratios here are part of the shared scheme.
func ThemedRGB(intensity uint8, c protocol.ColorType) color.RGBA {
	if intensity == 0 {
		return color.RGBA{A: 0xff}
	}
	i := float32(intensity)
	switch c {
	case protocol.ColorRed:
		return color.RGBA{R: intensity, G: uint8(i * 0.15), B: uint8(i * 0.15), A: 0xff}
	case protocol.ColorGreen:
		return color.RGBA{R: uint8(i * 0.15), G: intensity, B: uint8(i * 0.15), A: 0xff}
	default:
		return color.RGBA{R: uint8(i * 0.3), G: uint8(i * 0.05), B: intensity, A: 0xff}
	}
}
