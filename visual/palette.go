package visual

import "image/color"

// Wheel maps 0..255 onto the classic red-green-blue color wheel.
func Wheel(pos uint8) color.RGBA {
	switch {
	case pos < 85:
		return color.RGBA{R: 255 - pos*3, G: pos * 3, A: 0xff}
	case pos < 170:
		pos -= 85
		return color.RGBA{G: 255 - pos*3, B: pos * 3, A: 0xff}
	default:
		pos -= 170
		return color.RGBA{R: pos * 3, B: 255 - pos*3, A: 0xff}
	}
}

// Scale dims base toward black, with full intensity giving base
// itself.
func Scale(base color.RGBA, intensity uint8) color.RGBA {
	f := float32(intensity) / 255
	return color.RGBA{
		R: uint8(float32(base.R) * f),
		G: uint8(float32(base.G) * f),
		B: uint8(float32(base.B) * f),
		A: 0xff,
	}
}

// ModePalette returns the color scheme for a display mode: a rainbow
// wheel driven by intensity, or pink, blue, and green tints. The
// ambient routines share these; the dance sync path has its own fixed
// scheme in ThemedRGB.
func ModePalette(mode int) func(intensity uint8) color.RGBA {
	switch mode {
	case 2:
		return func(i uint8) color.RGBA { return Scale(color.RGBA{R: 255, B: 255}, i) }
	case 3:
		return func(i uint8) color.RGBA { return Scale(color.RGBA{B: 255}, i) }
	case 4:
		return func(i uint8) color.RGBA { return Scale(color.RGBA{G: 255}, i) }
	default:
		return func(i uint8) color.RGBA { return Wheel(i) }
	}
}
