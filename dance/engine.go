// Package dance keeps a group of LED rings in step over one-way BLE
// advertisement names. One leader animates its ring and broadcasts
// sparse frames as an advertised name; followers scan for that name
// and rebuild the leader's picture with per-channel smoothing. There
// is no pairing and no backchannel: a human picks who leads, every
// other ring follows.
package dance

import (
	"time"

	"illo/core"
	"illo/visual"
)

// Role is the externally selected side of the sync protocol.
type Role uint8

const (
	RoleNone Role = iota
	RoleLeader
	RoleFollower
)

func (r Role) String() string {
	switch r {
	case RoleLeader:
		return "leading"
	case RoleFollower:
		return "following"
	default:
		return "none"
	}
}

// RadioState tracks whether the current role's radio came up.
type RadioState uint8

const (
	RadioIdle RadioState = iota
	RadioActive
	RadioLocalOnly
)

func (s RadioState) String() string {
	switch s {
	case RadioActive:
		return "active"
	case RadioLocalOnly:
		return "local-only"
	default:
		return "idle"
	}
}

const healthInterval = 30 * time.Second

// Engine is the per-tick state machine wrapping the whole sync path.
// It owns whichever of the broadcaster or receiver the current role
// needs and swaps them out when the selected role changes.
type Engine struct {
	cfg      Config
	radio    core.RadioDriver
	ring     core.PixelRing
	animator Animator

	role       Role
	radioState RadioState
	tx         *Broadcaster
	rx         *Receiver
	lastHealth time.Time
}

func NewEngine(radio core.RadioDriver, ring core.PixelRing, animator Animator, cfg Config) *Engine {
	cfg = cfg.Normalize()
	if cfg.AdvertisePeriod > visual.CometStepInterval {
		core.Logln("[DANCE] advertise period exceeds animation step, followers will skip frames")
	}
	return &Engine{cfg: cfg, radio: radio, ring: ring, animator: animator}
}

// planTransition maps (current, desired) to the radio work a role
// change needs. Re-entering the current role is a no-op.
func planTransition(current, desired Role) (teardown, initRadio bool) {
	if desired == current {
		return false, false
	}
	return current != RoleNone, desired != RoleNone
}

// Tick runs one loop pass under the externally supplied role. A role
// change tears the old radio session down and brings the new one up
// before the pass runs. A leader animates its own ring before it
// broadcasts, so local smoothness wins over sync freshness. A
// follower only mirrors received frames; its fallback on loss is a
// cleared ring, never an animation of its own. If radio init failed,
// either role runs the animator locally until the role next changes.
func (e *Engine) Tick(now time.Time, desired Role) {
	teardown, initRadio := planTransition(e.role, desired)
	if teardown {
		e.exitRole()
	}
	e.role = desired
	if initRadio {
		e.enterRole(desired)
	}

	switch {
	case e.role == RoleNone:
		return
	case e.role == RoleLeader || e.radioState == RadioLocalOnly:
		triples := e.animator.Animate(now, e.ring)
		if e.role == RoleLeader && e.radioState == RadioActive {
			e.tx.Publish(now, triples)
		}
	default:
		e.rx.Poll(now)
	}
	e.reportHealth(now)
}

// Stop leaves the current role and releases the radio.
func (e *Engine) Stop() {
	if teardown, _ := planTransition(e.role, RoleNone); teardown {
		e.exitRole()
	}
	e.role = RoleNone
}

func (e *Engine) Role() Role { return e.role }

func (e *Engine) RadioState() RadioState { return e.radioState }

func (e *Engine) enterRole(role Role) {
	if err := e.radio.Init(); err != nil {
		e.radioState = RadioLocalOnly
		core.Logln("[DANCE] radio unavailable, running local-only")
		return
	}
	e.radioState = RadioActive
	switch role {
	case RoleLeader:
		e.tx = NewBroadcaster(e.radio, e.cfg)
		e.tx.Seed()
		core.Logln("[DANCE] leading")
	case RoleFollower:
		e.rx = NewReceiver(e.radio, NewReconstructor(e.ring, e.cfg), e.cfg)
		core.Logln("[DANCE] following")
	}
}

func (e *Engine) exitRole() {
	if e.radioState == RadioActive {
		e.radio.Deinit()
	}
	e.tx = nil
	e.rx = nil
	e.radioState = RadioIdle
}

func (e *Engine) reportHealth(now time.Time) {
	if !core.IsLogEnabled() {
		return
	}
	if e.lastHealth.IsZero() {
		e.lastHealth = now
		return
	}
	if now.Sub(e.lastHealth) < healthInterval {
		return
	}
	e.lastHealth = now

	switch {
	case e.tx != nil:
		sent, failed := e.tx.Stats()
		core.Logln("[DANCE] health: tx " + core.Utoa(sent) + " sent " + core.Utoa(failed) + " failed")
	case e.rx != nil:
		ok, failed := e.rx.Stats()
		total := ok + failed
		line := "[DANCE] health: rx " + core.Utoa(ok) + "/" + core.Utoa(total)
		if total > 0 {
			line += " " + core.Utoa(ok*100/total) + "%"
		}
		if last := e.rx.LastSeen(); !last.IsZero() {
			line += " lag " + core.Itoa(int(now.Sub(last).Milliseconds())) + "ms"
		}
		core.Logln(line)
	}
}
