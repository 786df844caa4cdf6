package device

import (
	"time"

	"illo/audio"
	"illo/config"
	"illo/core"
	"illo/dance"
	"illo/visual"
)

// DanceRoutine is the synchronized dance party. Mode 1 leads the
// room, every other mode follows whoever does. The engine owns the
// radio for as long as the routine is active.
type DanceRoutine struct {
	engine *dance.Engine
}

// NewDanceRoutine builds the routine. With a microphone the leader
// animates from sound, without one it runs the comet. Pass
// core.NoRadio to keep the device off the air; the engine then
// animates locally in either role.
func NewDanceRoutine(ring core.PixelRing, radio core.RadioDriver, mic core.AudioSource, cfg dance.Config) *DanceRoutine {
	var anim dance.Animator
	if mic != nil {
		anim = visual.NewVisualizer(audio.NewProcessor(mic, 0))
	} else {
		anim = visual.NewComet()
	}
	return &DanceRoutine{engine: dance.NewEngine(radio, ring, anim, cfg)}
}

func (d *DanceRoutine) Name() string { return "Dance Party" }

func (d *DanceRoutine) Update(now time.Time, mode int) {
	role := dance.RoleFollower
	if mode == config.ModeLeader {
		role = dance.RoleLeader
	}
	d.engine.Tick(now, role)
}

func (d *DanceRoutine) Cleanup() {
	d.engine.Stop()
}
