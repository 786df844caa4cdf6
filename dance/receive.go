package dance

import (
	"time"

	"illo/core"
	"illo/protocol"
)

// Receiver drains short scan bursts and feeds new frames to its
// reconstructor. It owns the follower's peer state: the dedupe
// sequence, the liveness timestamp, and the counters.
type Receiver struct {
	radio core.RadioDriver
	out   *Reconstructor
	cfg   Config

	lastSeq  int16 // -1 when no peer frame has been accepted
	lastSeen time.Time
	success  uint32
	failed   uint32
}

func NewReceiver(radio core.RadioDriver, out *Reconstructor, cfg Config) *Receiver {
	return &Receiver{radio: radio, out: out, cfg: cfg, lastSeq: -1}
}

// Poll runs one scan burst and renders at most one new frame, cutting
// the burst short as soon as it has one. Names without the frame
// prefix are not sync traffic and touch no counters. Duplicate
// sequences are dropped silently. When a burst ends without any valid
// frame and the peer has been quiet past the loss timeout, the ring
// is cleared once and the sequence forgotten, so the next frame is
// accepted whatever its number.
func (r *Receiver) Poll(now time.Time) {
	sawValid := false
	err := r.radio.ScanBurst(r.cfg.ScanBurst, r.cfg.MinRSSI, func(hit core.ScanHit) bool {
		if !protocol.IsFrameName(hit.Name) {
			return true
		}
		frame, err := protocol.Decode(hit.Name)
		if err != nil {
			r.failed++
			return true
		}
		sawValid = true
		r.lastSeen = now
		if int16(frame.Seq) == r.lastSeq {
			return true
		}
		r.lastSeq = int16(frame.Seq)
		r.success++
		r.out.Apply(now, frame.Triples)
		return false
	})
	if err != nil {
		core.Logln("[DANCE] scan failed")
	}

	if sawValid {
		return
	}
	if !r.lastSeen.IsZero() && now.Sub(r.lastSeen) >= r.cfg.LossTimeout {
		r.out.Clear()
		r.lastSeq = -1
		r.lastSeen = time.Time{}
		core.Logln("[DANCE] peer lost, ring cleared")
	}
}

// Stats reports accepted frame and decode failure counts.
func (r *Receiver) Stats() (success, failed uint32) {
	return r.success, r.failed
}

// LastSeen is when the peer was last heard, zero if never or lost.
func (r *Receiver) LastSeen() time.Time {
	return r.lastSeen
}
