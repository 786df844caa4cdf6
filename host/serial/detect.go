package serial

import (
	"os"
	"path/filepath"
	"strings"
)

// Candidate is a serial device that looks like one of ours.
type Candidate struct {
	// Device is the path to open.
	Device string

	// Description is whatever the kernel knows about it, for humans.
	Description string
}

var deviceMarkers = []string{"circuitpython", "circuit_playground", "adafruit"}

// Detect lists serial devices that look like a toy's USB console.
// Stable /dev/serial/by-id names carry the USB product string, so a
// CircuitPython board is recognizable by name alone. Anything else on
// ttyACM is returned after the sure matches as a fallback.
func Detect() []Candidate {
	var sure, maybe []Candidate

	byID, _ := filepath.Glob("/dev/serial/by-id/*")
	for _, path := range byID {
		name := strings.ToLower(filepath.Base(path))
		resolved, err := filepath.EvalSymlinks(path)
		if err != nil {
			resolved = path
		}
		c := Candidate{Device: resolved, Description: filepath.Base(path)}
		if matchesMarker(name) {
			sure = append(sure, c)
		} else {
			maybe = append(maybe, c)
		}
	}

	// Boards enumerate on ttyACM even when the by-id tree is missing
	// (containers, older distros).
	if len(byID) == 0 {
		acm, _ := filepath.Glob("/dev/ttyACM*")
		for _, path := range acm {
			if _, err := os.Stat(path); err != nil {
				continue
			}
			maybe = append(maybe, Candidate{Device: path, Description: path})
		}
	}

	return append(sure, maybe...)
}

func matchesMarker(name string) bool {
	for _, m := range deviceMarkers {
		if strings.Contains(name, m) {
			return true
		}
	}
	return false
}
