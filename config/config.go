package config

import (
	"encoding/json"
	"errors"
	"time"

	"illo/core"
	"illo/dance"
)

// Routine numbers as stored in the device config.
const (
	RoutineDance    = 1
	RoutineCruise   = 2
	RoutineMeditate = 3
)

// Mode 1 leads, modes 2 through 4 follow.
const (
	ModeLeader = 1
	MaxMode    = 4
)

// SyncConfig tunes the dance sync layer. A preset picks the base
// values and any explicitly set field overrides it.
type SyncConfig struct {
	Preset             string  `json:"preset,omitempty"`
	AdvertisePeriodMs  int     `json:"advertisePeriodMs,omitempty"`
	SmoothingAlpha     float32 `json:"smoothingAlpha,omitempty"`
	ScanBurstSeconds   float32 `json:"scanBurstSeconds,omitempty"`
	LossTimeoutSeconds float32 `json:"lossTimeoutSeconds,omitempty"`
	MinRenderMs        int     `json:"minRenderMs,omitempty"`
}

// DeviceConfig is the persisted device state.
type DeviceConfig struct {
	Name         string     `json:"name"`
	Routine      int        `json:"routine"`
	Mode         int        `json:"mode"`
	DisableRadio bool       `json:"disableRadio,omitempty"`
	Debug        bool       `json:"debug,omitempty"`
	Sync         SyncConfig `json:"sync"`
}

// Parse reads a JSON configuration and fills in missing values with
// defaults.
func Parse(data []byte) (*DeviceConfig, error) {
	var cfg DeviceConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// Default returns the factory configuration.
func Default() *DeviceConfig {
	cfg := &DeviceConfig{}
	applyDefaults(cfg)
	return cfg
}

// applyDefaults fills in missing configuration values with sensible
// defaults and pulls out-of-range selections back to the first entry.
func applyDefaults(cfg *DeviceConfig) {
	if cfg.Name == "" {
		cfg.Name = "ILLO"
	}
	if cfg.Routine < RoutineDance || cfg.Routine > RoutineMeditate {
		cfg.Routine = RoutineDance
	}
	if cfg.Mode < ModeLeader || cfg.Mode > MaxMode {
		cfg.Mode = ModeLeader
	}
}

// Load reads the stored configuration. A blank store yields the
// defaults. An unreadable or corrupt store also yields the defaults,
// along with the error so the caller can report it and carry on.
func Load(store core.ConfigStore) (*DeviceConfig, error) {
	data, err := store.Load()
	if err != nil {
		if errors.Is(err, core.ErrNoConfig) {
			return Default(), nil
		}
		return Default(), err
	}
	cfg, err := Parse(data)
	if err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Save writes the configuration back to the store.
func Save(store core.ConfigStore, cfg *DeviceConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	return store.Save(data)
}

// Dance converts the sync settings into a normalized dance config.
func (c *DeviceConfig) Dance() dance.Config {
	cfg := dance.PresetConfig(c.Sync.Preset)
	if c.Sync.AdvertisePeriodMs > 0 {
		cfg.AdvertisePeriod = time.Duration(c.Sync.AdvertisePeriodMs) * time.Millisecond
	}
	if c.Sync.SmoothingAlpha > 0 {
		cfg.SmoothAlpha = c.Sync.SmoothingAlpha
	}
	if c.Sync.ScanBurstSeconds > 0 {
		cfg.ScanBurst = time.Duration(float64(c.Sync.ScanBurstSeconds) * float64(time.Second))
	}
	if c.Sync.LossTimeoutSeconds > 0 {
		cfg.LossTimeout = time.Duration(float64(c.Sync.LossTimeoutSeconds) * float64(time.Second))
	}
	if c.Sync.MinRenderMs > 0 {
		cfg.MinRenderInterval = time.Duration(c.Sync.MinRenderMs) * time.Millisecond
	}
	return cfg.Normalize()
}

// Role maps the device mode to a sync role.
func (c *DeviceConfig) Role() dance.Role {
	if c.Mode == ModeLeader {
		return dance.RoleLeader
	}
	return dance.RoleFollower
}
