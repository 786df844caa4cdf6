package dance

import (
	"errors"
	"runtime"
	"time"

	"illo/core"
	"illo/protocol"
)

// Broadcaster owns the leader's sequence counter and publish pacing.
// The radio can only swap an advertisement's payload by stopping and
// restarting, so every publish is a stop-then-start pair.
type Broadcaster struct {
	radio  core.RadioDriver
	period time.Duration

	seq       uint8
	lastAdv   time.Time
	published uint32
	failed    uint32
}

func NewBroadcaster(radio core.RadioDriver, cfg Config) *Broadcaster {
	return &Broadcaster{radio: radio, period: cfg.AdvertisePeriod}
}

// Seed puts the all-dark sequence-zero token on the air the moment a
// leader session starts, so scanners can lock on before the animator
// has produced a frame.
func (b *Broadcaster) Seed() {
	if err := b.radio.Advertise(protocol.SeedToken); err != nil {
		b.failed++
		return
	}
	b.published++
}

// Publish puts the frame on the air if the advertise period has
// elapsed, and reports whether it tried. The sequence advances on
// every attempt, failed or not, so a follower treats whatever lands
// next as new. Failures are absorbed here: a failed stop means
// nothing was advertising, an exhausted radio gets a reclaim pass,
// and anything else waits for the next period.
func (b *Broadcaster) Publish(now time.Time, triples [protocol.FrameTriples]protocol.Triple) bool {
	if !b.lastAdv.IsZero() && now.Sub(b.lastAdv) < b.period {
		return false
	}
	b.lastAdv = now
	b.seq++

	name := protocol.Encode(protocol.VisualFrame{Seq: b.seq, Triples: triples})
	_ = b.radio.StopAdvertise()
	err := b.radio.Advertise(name)
	if err == nil {
		b.published++
		return true
	}

	b.failed++
	if errors.Is(err, core.ErrRadioExhausted) {
		runtime.GC()
		core.Logln("[DANCE] radio exhausted, reclaimed memory")
	} else {
		core.Logln("[DANCE] advertise failed")
	}
	return true
}

// Stats reports how many publishes went out and how many failed.
func (b *Broadcaster) Stats() (published, failed uint32) {
	return b.published, b.failed
}
