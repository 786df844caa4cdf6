// Package device is the firmware brain: one controller owning the
// ring, the controls and the active routine, stepped forever from the
// board's main function. Everything runs cooperatively from Step, so
// the same controller drives single-threaded firmware and the host
// simulator.
package device

import (
	"runtime"
	"time"

	"illo/config"
	"illo/core"
)

const (
	buttonDebounce = 300 * time.Millisecond
	loopPause      = 2 * time.Millisecond
)

// Controller reads the controls, runs exactly one routine, adapts
// brightness to ambient light and dispatches periodic housekeeping.
// Button A cycles routines, button B cycles display modes, and the
// slide switch grounds the sync radio for venues where broadcasting
// is unwelcome.
type Controller struct {
	ring   core.PixelRing
	inputs core.InputDriver
	radio  core.RadioDriver
	mic    core.AudioSource
	store  core.ConfigStore
	now    core.Clock

	cfg   *config.DeviceConfig
	dirty bool

	routine    Routine
	routineNum int

	bright *BrightnessManager
	tasks  *core.TaskRunner

	lastA, lastB time.Time
	holdUntil    time.Time

	swState bool
	swKnown bool
}

// NewController wires a controller from platform drivers. A nil radio
// or microphone is allowed and shrinks the dance routine accordingly.
// A nil clock means real time.
func NewController(ring core.PixelRing, inputs core.InputDriver, radio core.RadioDriver, mic core.AudioSource, store core.ConfigStore, now core.Clock) *Controller {
	if now == nil {
		now = core.SystemClock
	}
	if radio == nil {
		radio = core.NoRadio{}
	}
	cfg, err := config.Load(store)
	core.SetLogEnabled(cfg.Debug)
	if err != nil {
		core.Logln("[DEVICE] stored config unusable, running defaults")
	}

	c := &Controller{
		ring:       ring,
		inputs:     inputs,
		radio:      radio,
		mic:        mic,
		store:      store,
		now:        now,
		cfg:        cfg,
		routineNum: cfg.Routine,
		bright:     NewBrightnessManager(ring, inputs),
	}
	c.tasks = core.NewTaskRunner(now)
	c.tasks.Add(&core.Task{Name: "config_save", Interval: 3 * time.Second, Run: c.saveConfig, Enabled: true})
	c.tasks.Add(&core.Task{Name: "memory_cleanup", Interval: 30 * time.Second, Run: func(time.Time) { runtime.GC() }, Enabled: true})
	c.tasks.Add(&core.Task{Name: "system_status", Interval: 60 * time.Second, Run: c.logStatus, Enabled: cfg.Debug})
	return c
}

// Run steps the controller forever on the real clock. A panicking
// pass is logged and the next pass carries on.
func (c *Controller) Run() {
	for {
		c.pass()
		time.Sleep(loopPause)
	}
}

func (c *Controller) pass() {
	defer func() {
		if r := recover(); r != nil {
			core.Logln("[DEVICE] recovered from panic")
		}
	}()
	c.Step(c.now())
}

// Step runs one pass: controls, brightness, the active routine, then
// housekeeping. A follower's scan burst can block the pass for the
// burst window; everything else returns quickly.
func (c *Controller) Step(now time.Time) {
	in := c.inputs.ReadInputs()

	if !c.swKnown {
		c.swKnown = true
		c.swState = in.SlideSwitch
	} else if in.SlideSwitch != c.swState {
		c.swState = in.SlideSwitch
		if c.swState {
			core.Logln("[DEVICE] switch up, radio allowed")
		} else {
			core.Logln("[DEVICE] switch down, radio off")
		}
		// Only the dance routine holds the radio, rebuild it so the
		// new policy takes effect.
		if c.routineNum == config.RoutineDance && c.routine != nil {
			c.switchTo(c.routineNum)
		}
	}

	if in.ButtonA && now.Sub(c.lastA) > buttonDebounce {
		c.lastA = now
		n := c.routineNum%config.RoutineMeditate + 1
		c.cfg.Routine = n
		c.dirty = true
		flashRoutine(c.ring, n)
		c.holdUntil = now.Add(feedbackHold)
		c.switchTo(n)
	}
	if in.ButtonB && now.Sub(c.lastB) > buttonDebounce {
		c.lastB = now
		c.cfg.Mode = c.cfg.Mode%config.MaxMode + 1
		c.dirty = true
		if c.routineNum == config.RoutineMeditate {
			flashBreathing(c.ring, c.cfg.Mode)
		} else {
			flashMode(c.ring, c.cfg.Mode)
		}
		c.holdUntil = now.Add(feedbackHold)
	}

	if c.routine == nil {
		c.switchTo(c.routineNum)
	}

	// Meditation pins its own brightness, leave it alone there.
	if c.routineNum != config.RoutineMeditate {
		c.bright.Update(now)
	}

	if !c.holdUntil.IsZero() {
		if now.Before(c.holdUntil) {
			c.tasks.RunDue()
			return
		}
		c.ring.Fill(core.Black)
		c.ring.Show()
		c.holdUntil = time.Time{}
	}

	c.routine.Update(now, c.cfg.Mode)
	c.tasks.RunDue()
}

// Active reports the running routine's name and the display mode.
func (c *Controller) Active() (string, int) {
	if c.routine == nil {
		return "none", c.cfg.Mode
	}
	return c.routine.Name(), c.cfg.Mode
}

func (c *Controller) switchTo(n int) {
	if c.routine != nil {
		c.routine.Cleanup()
		c.routine = nil
		runtime.GC()
	}
	c.routineNum = n
	c.routine = c.buildRoutine(n)
	core.Logln("[DEVICE] running " + c.routine.Name())
}

func (c *Controller) buildRoutine(n int) Routine {
	switch n {
	case config.RoutineCruise:
		return NewCruise(c.ring, c.mic)
	case config.RoutineMeditate:
		return NewMeditate(c.ring, c.inputs)
	default:
		return NewDanceRoutine(c.ring, c.syncRadio(), c.mic, c.cfg.Dance())
	}
}

// syncRadio hands out the real radio only when both the config and
// the slide switch allow the air.
func (c *Controller) syncRadio() core.RadioDriver {
	if c.cfg.DisableRadio || !c.swState {
		return core.NoRadio{}
	}
	return c.radio
}

func (c *Controller) saveConfig(time.Time) {
	if !c.dirty {
		return
	}
	if err := config.Save(c.store, c.cfg); err != nil {
		core.Logln("[DEVICE] config save failed: " + err.Error())
		return
	}
	c.dirty = false
	core.Logln("[DEVICE] config saved")
}

func (c *Controller) logStatus(time.Time) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	name := "none"
	if c.routine != nil {
		name = c.routine.Name()
	}
	core.Logln("[DEVICE] status: " + name + " heap " + core.Utoa(uint32(ms.HeapAlloc)) +
		" bright " + core.Ftoa2(c.ring.Brightness()))
}
