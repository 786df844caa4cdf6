package core

import "time"

// Clock returns the current time. Components hold a Clock instead of
// calling time.Now directly so tests and the simulator can drive
// virtual time.
type Clock func() time.Time

// SystemClock is the real-time Clock used when none is supplied.
func SystemClock() time.Time {
	return time.Now()
}
