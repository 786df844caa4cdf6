package device

import "time"

// Routine is one of the device's light shows. The controller runs
// exactly one at a time, stepping it from the main loop with the
// active display mode. Cleanup releases whatever the routine holds,
// such as the radio or the ring brightness, before the next routine
// starts.
type Routine interface {
	Name() string
	Update(now time.Time, mode int)
	Cleanup()
}
