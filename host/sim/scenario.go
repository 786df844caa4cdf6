package sim

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"illo/config"
	"illo/core"
)

const defaultStepMs = 33

// Scenario describes one simulation run: the loss model of the air and
// the toys on it. Scenarios load from YAML so a regression case can be
// kept as a file and replayed.
type Scenario struct {
	Name    string       `yaml:"name"`
	StepMs  int          `yaml:"stepMs"`
	Medium  MediumConfig `yaml:"medium"`
	Devices []DeviceSpec `yaml:"devices"`
}

// Step is the virtual time each tick advances.
func (s *Scenario) Step() time.Duration {
	return time.Duration(s.StepMs) * time.Millisecond
}

// DeviceSpec seeds one toy's stored configuration.
type DeviceSpec struct {
	Name    string `yaml:"name"`
	Routine int    `yaml:"routine"`
	Mode    int    `yaml:"mode"`
	Preset  string `yaml:"preset"`
	Debug   bool   `yaml:"debug"`
}

// LoadScenario reads a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario %s: %w", path, err)
	}
	if len(sc.Devices) == 0 {
		return nil, fmt.Errorf("scenario %s has no devices", path)
	}
	sc.normalize()
	return &sc, nil
}

// DefaultScenario builds a dance floor with one leader and n-1
// followers.
func DefaultScenario(n int) *Scenario {
	if n < 1 {
		n = 1
	}
	sc := &Scenario{Name: "dance floor"}
	for i := 0; i < n; i++ {
		mode := config.ModeLeader
		if i > 0 {
			mode = config.ModeLeader + 1
		}
		sc.Devices = append(sc.Devices, DeviceSpec{
			Routine: config.RoutineDance,
			Mode:    mode,
		})
	}
	sc.normalize()
	return sc
}

func (s *Scenario) normalize() {
	if s.Name == "" {
		s.Name = "scenario"
	}
	if s.StepMs <= 0 {
		s.StepMs = defaultStepMs
	}
	for i := range s.Devices {
		d := &s.Devices[i]
		if d.Name == "" {
			d.Name = "ring-" + uuid.NewString()[:8]
		}
		if d.Routine < config.RoutineDance || d.Routine > config.RoutineMeditate {
			d.Routine = config.RoutineDance
		}
		if d.Mode < config.ModeLeader || d.Mode > config.MaxMode {
			d.Mode = config.ModeLeader
		}
	}
}

// WatchScenario signals on the returned channel, debounced, whenever
// the scenario file changes. The directory is watched rather than the
// file because editors replace files by rename, which would silently
// kill a file watch. stop releases the watcher and closes the channel.
func WatchScenario(path string) (events <-chan struct{}, stop func() error, err error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, nil, fmt.Errorf("failed to watch %s: %w", path, err)
	}

	ch := make(chan struct{}, 1)
	go func() {
		defer close(ch)
		debounce := time.NewTimer(0)
		if !debounce.Stop() {
			<-debounce.C
		}
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(ev.Name) != filepath.Base(path) {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					debounce.Reset(100 * time.Millisecond)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				core.Logln("[SIM] watch error: " + err.Error())
			case <-debounce.C:
				select {
				case ch <- struct{}{}:
				default:
				}
			}
		}
	}()
	return ch, watcher.Close, nil
}
