// Package config loads, merges and saves lamp device configurations. The
// on-disk format is JSON: {"devices": [...]} is the current shape, and a
// bare single-device object is still accepted on load for older files.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

var (
	ErrNotFound     = errors.New("config file not found")
	ErrMalformed    = errors.New("malformed config")
	ErrMissingField = errors.New("missing required field")
	ErrNoPath       = errors.New("no config path specified")
)

// Store holds device configurations in insertion order; the first device is
// the implicit default.
type Store struct {
	mu      sync.Mutex
	devices []Device
	path    string
	log     *slog.Logger
}

// DefaultLocations returns the probe order for implicit config loading:
// project-local file, project-local dotfile, then the user-home config.
func DefaultLocations() []string {
	locations := []string{
		"lotus_lamp_config.json",
		".lotus_lamp.json",
	}
	if home, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(home, ".lotus_lamp", "config.json"))
	}
	return locations
}

// Open loads a store from an explicit path. The file must exist.
func Open(path string, logger *slog.Logger) (*Store, error) {
	s := newStore(logger)
	if err := s.Load(path); err != nil {
		return nil, err
	}
	return s, nil
}

// OpenDefault probes DefaultLocations and loads the first file that exists.
// Finding none is not an error; the store is simply empty.
func OpenDefault(logger *slog.Logger) (*Store, error) {
	s := newStore(logger)
	for _, path := range DefaultLocations() {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		s.log.Debug("loading config", "path", path)
		if err := s.Load(path); err != nil {
			return nil, err
		}
		return s, nil
	}
	s.log.Debug("no config file found in default locations", "locations", DefaultLocations())
	return s, nil
}

func newStore(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{log: logger}
}

// Load reads a config file and merges its devices into the store, keyed by
// name. The path becomes the active save target.
func (s *Store) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return err
	}

	devices, err := decodeDevices(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range devices {
		s.upsertLocked(d)
	}
	s.path = path

	s.log.Debug("loaded devices", "path", path, "count", len(devices))
	return nil
}

func decodeDevices(data []byte) ([]Device, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	var devices []Device
	if wrapped, ok := raw["devices"]; ok {
		if err := json.Unmarshal(wrapped, &devices); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	} else {
		// Legacy shape: the file is a single bare device record.
		var d Device
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		devices = []Device{d}
	}

	for i := range devices {
		if devices[i].Name == "" {
			return nil, fmt.Errorf("%w: device %d has no name", ErrMissingField, i)
		}
		devices[i].fillDefaults()
		if err := devices[i].normalizeUUIDs(); err != nil {
			return nil, fmt.Errorf("%w: device %q: %v", ErrMalformed, devices[i].Name, err)
		}
	}
	return devices, nil
}

// Save writes all devices in the current multi-device shape. An empty path
// reuses the path of the last Load/Save; parent directories are created as
// needed.
func (s *Store) Save(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if path == "" {
		path = s.path
	}
	if path == "" {
		return ErrNoPath
	}

	payload := struct {
		Devices []Device `json:"devices"`
	}{Devices: s.devices}
	if payload.Devices == nil {
		payload.Devices = []Device{}
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		return err
	}

	s.path = path
	return nil
}

// Add inserts a device, or replaces the existing device with the same name
// in place.
func (s *Store) Add(d Device) {
	d.fillDefaults()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upsertLocked(d)
}

func (s *Store) upsertLocked(d Device) {
	for i := range s.devices {
		if s.devices[i].Name == d.Name {
			s.devices[i] = d
			return
		}
	}
	s.devices = append(s.devices, d)
}

// Remove deletes a device by name, reporting whether it existed.
func (s *Store) Remove(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.devices {
		if s.devices[i].Name == name {
			s.devices = append(s.devices[:i], s.devices[i+1:]...)
			return true
		}
	}
	return false
}

// Get looks up a device by name.
func (s *Store) Get(name string) (Device, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.devices {
		if d.Name == name {
			return d, true
		}
	}
	return Device{}, false
}

// Names lists configured device names in insertion order.
func (s *Store) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, len(s.devices))
	for i, d := range s.devices {
		names[i] = d.Name
	}
	return names
}

// Devices returns a copy of all devices in insertion order.
func (s *Store) Devices() []Device {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Device(nil), s.devices...)
}

// Default returns the first-inserted device, if any.
func (s *Store) Default() (Device, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.devices) == 0 {
		return Device{}, false
	}
	return s.devices[0], true
}

// Path returns the active save target, empty if nothing was loaded or saved
// yet.
func (s *Store) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path
}
