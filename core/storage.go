package core

import "errors"

// ErrNoConfig is returned by Load when no configuration has been saved.
var ErrNoConfig = errors.New("no stored config")

// ConfigStore persists the device configuration blob. Implementations:
// a reserved flash region on hardware, a plain file on the host.
type ConfigStore interface {
	// Load returns the stored blob or ErrNoConfig when none exists.
	Load() ([]byte, error)

	// Save replaces the stored blob.
	Save(data []byte) error
}
