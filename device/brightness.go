package device

import (
	"math"
	"time"

	"illo/core"
)

const (
	minBrightness   = 0.02
	maxBrightness   = 0.25
	brightnessEvery = 100 * time.Millisecond

	// maxLux is the top of the light sensor's useful range. Readings
	// are normalized against it before shaping.
	maxLux = 320
)

// BrightnessManager eases the ring brightness toward a target derived
// from ambient light, so the show stays visible in daylight without
// searing a dark room.
type BrightnessManager struct {
	ring   core.PixelRing
	inputs core.InputDriver
	last   time.Time
}

func NewBrightnessManager(ring core.PixelRing, inputs core.InputDriver) *BrightnessManager {
	return &BrightnessManager{ring: ring, inputs: inputs}
}

// Update nudges the brightness one step toward the ambient target, at
// most once per adjustment interval. Small differences are left alone
// so the ring does not shimmer on sensor noise.
func (b *BrightnessManager) Update(now time.Time) {
	if !b.last.IsZero() && now.Sub(b.last) < brightnessEvery {
		return
	}
	b.last = now

	target := brightnessTarget(toLux(b.inputs.ReadInputs().LightLevel))
	cur := b.ring.Brightness()
	diff := target - cur
	if diff < 0 {
		diff = -diff
	}
	if diff <= 0.005 {
		return
	}
	step := float32(0.01)
	if diff > 0.1 {
		step = 0.05
	}
	if target > cur {
		cur += step
		if cur > target {
			cur = target
		}
	} else {
		cur -= step
		if cur < target {
			cur = target
		}
	}
	b.ring.SetBrightness(cur)
}

// brightnessTarget shapes ambient lux into a ring brightness. The
// square root stretches the dim end of the range, where the eye is
// most sensitive, and anything darker than 10 lux pins the floor.
func brightnessTarget(lux float32) float32 {
	if lux > maxLux {
		lux = maxLux
	}
	if lux < 10 {
		return minBrightness
	}
	n := float32(math.Sqrt(float64(lux / maxLux)))
	return minBrightness + (maxBrightness-minBrightness)*n
}

// toLux converts the sensor's raw 16 bit reading to approximate lux.
func toLux(raw uint16) float32 {
	return float32(raw) * maxLux / 65535
}
