package dance

import "time"

// Presets trade sync latency against visual smoothness.
const (
	PresetFast     = "fast"
	PresetBalanced = "balanced"
	PresetSmooth   = "smooth"
)

// Custom advertise periods and smoothing factors are clamped to these
// bounds before use.
const (
	MinAdvertisePeriod = 50 * time.Millisecond
	MaxAdvertisePeriod = 200 * time.Millisecond
	MinSmoothAlpha     = 0.5
	MaxSmoothAlpha     = 0.95
)

// Defaults match the balanced preset.
const (
	DefaultAdvertisePeriod   = 80 * time.Millisecond
	DefaultSmoothAlpha       = 0.90
	DefaultScanBurst         = 200 * time.Millisecond
	DefaultLossTimeout       = 3 * time.Second
	DefaultMinRenderInterval = 15 * time.Millisecond
	DefaultMinRSSI           = -90
)

// Config holds the sync tuning for one dance session.
type Config struct {
	// AdvertisePeriod is the minimum spacing between two publishes.
	AdvertisePeriod time.Duration
	// SmoothAlpha weights how hard a follower pulls toward each new
	// frame. 1 snaps, lower values blend.
	SmoothAlpha float32
	// ScanBurst bounds one blocking scan window.
	ScanBurst time.Duration
	// LossTimeout is how long a follower waits without frames before
	// declaring its peer gone and clearing the ring.
	LossTimeout time.Duration
	// MinRenderInterval caps the follower redraw rate.
	MinRenderInterval time.Duration
	// MinRSSI drops advertisements weaker than this during scans.
	MinRSSI int16
}

func DefaultConfig() Config {
	return Config{
		AdvertisePeriod:   DefaultAdvertisePeriod,
		SmoothAlpha:       DefaultSmoothAlpha,
		ScanBurst:         DefaultScanBurst,
		LossTimeout:       DefaultLossTimeout,
		MinRenderInterval: DefaultMinRenderInterval,
		MinRSSI:           DefaultMinRSSI,
	}
}

// PresetConfig returns the named preset. Unknown names get the
// balanced defaults.
func PresetConfig(name string) Config {
	cfg := DefaultConfig()
	switch name {
	case PresetFast:
		cfg.AdvertisePeriod = 50 * time.Millisecond
		cfg.SmoothAlpha = 0.95
	case PresetSmooth:
		cfg.AdvertisePeriod = 120 * time.Millisecond
		cfg.SmoothAlpha = 0.70
	}
	return cfg
}

// Normalize fills unset fields with defaults and clamps the tunable
// ones into their valid ranges, so a partially built Config is safe
// to run with.
func (c Config) Normalize() Config {
	if c.AdvertisePeriod == 0 {
		c.AdvertisePeriod = DefaultAdvertisePeriod
	}
	if c.AdvertisePeriod < MinAdvertisePeriod {
		c.AdvertisePeriod = MinAdvertisePeriod
	}
	if c.AdvertisePeriod > MaxAdvertisePeriod {
		c.AdvertisePeriod = MaxAdvertisePeriod
	}
	if c.SmoothAlpha == 0 {
		c.SmoothAlpha = DefaultSmoothAlpha
	}
	if c.SmoothAlpha < MinSmoothAlpha {
		c.SmoothAlpha = MinSmoothAlpha
	}
	if c.SmoothAlpha > MaxSmoothAlpha {
		c.SmoothAlpha = MaxSmoothAlpha
	}
	if c.ScanBurst <= 0 {
		c.ScanBurst = DefaultScanBurst
	}
	if c.LossTimeout <= 0 {
		c.LossTimeout = DefaultLossTimeout
	}
	if c.MinRenderInterval <= 0 {
		c.MinRenderInterval = DefaultMinRenderInterval
	}
	if c.MinRSSI >= 0 {
		c.MinRSSI = DefaultMinRSSI
	}
	return c
}
