package sim

import (
	"image/color"
	"time"

	"illo/config"
	"illo/core"
	"illo/device"
	"illo/protocol"
)

// Ring is an in-memory pixel ring. Show captures what a physical strip
// would receive, scaled by brightness, for the terminal and browser
// views to render.
type Ring struct {
	pixels     []color.RGBA
	shown      []color.RGBA
	brightness float32
}

func NewRing(n int) *Ring {
	return &Ring{
		pixels:     make([]color.RGBA, n),
		shown:      make([]color.RGBA, n),
		brightness: 0.1,
	}
}

func (r *Ring) Len() int { return len(r.pixels) }

func (r *Ring) SetPixel(i int, c color.RGBA) {
	if i < 0 || i >= len(r.pixels) {
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
		r.shown[i] = color.RGBA{
			R: uint8(float32(c.R) * b),
			G: uint8(float32(c.G) * b),
			B: uint8(float32(c.B) * b),
			A: 0xff,
		}
	}
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

// Frame returns the last shown colors.
func (r *Ring) Frame() []color.RGBA { return r.shown }

// Inputs is the simulated control panel. Button presses latch until
// the next read, so one keystroke lands as exactly one press no matter
// how ticks and keys interleave.
type Inputs struct {
	slide          bool
	light          uint16
	pressA, pressB bool
}

func NewInputs() *Inputs {
	return &Inputs{slide: true, light: 30000}
}

func (i *Inputs) PressA() { i.pressA = true }
func (i *Inputs) PressB() { i.pressB = true }

// ToggleSlide flips the slide switch and returns the new position.
func (i *Inputs) ToggleSlide() bool {
	i.slide = !i.slide
	return i.slide
}

func (i *Inputs) SetLight(raw uint16) { i.light = raw }

func (i *Inputs) ReadInputs() core.InputState {
	s := core.InputState{
		ButtonA:     i.pressA,
		ButtonB:     i.pressB,
		SlideSwitch: i.slide,
		LightLevel:  i.light,
	}
	i.pressA, i.pressB = false, false
	return s
}

func (i *Inputs) Acceleration() (int32, int32, int32, error) {
	return 0, 0, 0, core.ErrNoAccelerometer
}

// MemStore keeps the config blob in memory, one per simulated toy.
type MemStore struct {
	blob []byte
}

func (s *MemStore) Load() ([]byte, error) {
	if s.blob == nil {
		return nil, core.ErrNoConfig
	}
	return s.blob, nil
}

func (s *MemStore) Save(data []byte) error {
	s.blob = append(s.blob[:0], data...)
	return nil
}

// SimDevice is one whole toy: the production controller running on
// simulated drivers.
type SimDevice struct {
	Name   string
	Ring   *Ring
	Inputs *Inputs
	Radio  *Radio

	ctrl *device.Controller
}

// NewSimDevice seeds a toy's stored config from spec and boots its
// controller on the given radio and clock.
func NewSimDevice(spec DeviceSpec, radio *Radio, clk core.Clock) *SimDevice {
	store := &MemStore{}
	cfg := config.Default()
	cfg.Name = spec.Name
	cfg.Routine = spec.Routine
	cfg.Mode = spec.Mode
	cfg.Debug = spec.Debug
	cfg.Sync.Preset = spec.Preset
	if err := config.Save(store, cfg); err != nil {
		core.Logln("[SIM] seed config failed: " + err.Error())
	}

	d := &SimDevice{
		Name:   spec.Name,
		Ring:   NewRing(protocol.NumPixels),
		Inputs: NewInputs(),
		Radio:  radio,
	}
	d.ctrl = device.NewController(d.Ring, d.Inputs, radio, nil, store, clk)
	return d
}

// Step advances the toy one controller pass.
func (d *SimDevice) Step(now time.Time) {
	d.ctrl.Step(now)
}

// Active reports the running routine and display mode.
func (d *SimDevice) Active() (string, int) {
	return d.ctrl.Active()
}
