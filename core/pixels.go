package core

import "image/color"

// PixelRing is the addressable LED ring. SetPixel and Fill stage colors
// in a local buffer; Show pushes the buffer to hardware, scaled by the
// current brightness. Push failures are absorbed by the driver, the
// animation core treats the ring as infallible.
type PixelRing interface {
	// Len returns the number of pixels on the ring.
	Len() int

	// SetPixel stages c for pixel i.
	SetPixel(i int, c color.RGBA)

	// Fill stages c for every pixel.
	Fill(c color.RGBA)

	// Show pushes the staged colors to the hardware.
	Show()

	// SetBrightness sets the output scale, 0.0 (dark) to 1.0 (full).
	SetBrightness(b float32)

	// Brightness returns the current output scale.
	Brightness() float32
}

// Black is the off color shared by clear paths.
var Black = color.RGBA{A: 0xff}
