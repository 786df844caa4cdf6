package dance

import (
	"time"

	"illo/core"
	"illo/protocol"
)

// Animator produces the leader's ring content. Each call draws the
// current state onto the ring and returns the three brightest triples
// for broadcast, ties going to the lower position. Implementations
// pace themselves and return cached content between their own steps,
// so calling more often than the animation advances is cheap.
type Animator interface {
	Animate(now time.Time, ring core.PixelRing) [protocol.FrameTriples]protocol.Triple
}
