package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Default protocol identifiers shared by most Lotus Lamp models. All three
// sit under the standard 128-bit BLE base.
const (
	DefaultServiceUUID    = "0000FFF0-0000-1000-8000-00805F9B34FB"
	DefaultWriteCharUUID  = "0000FFF3-0000-1000-8000-00805F9B34FB"
	DefaultNotifyCharUUID = "0000FFF4-0000-1000-8000-00805F9B34FB"
)

// Device is one configured lamp. Name is the unique key within a store.
// Address is empty until discovery fills it in; once set it is treated as
// authoritative, and a failed connection must clear it so discovery re-runs.
type Device struct {
	Name           string `json:"name"`
	Address        string `json:"address"`
	ServiceUUID    string `json:"service_uuid"`
	WriteCharUUID  string `json:"write_char_uuid"`
	NotifyCharUUID string `json:"notify_char_uuid"`
}

// NewDevice builds a device with the standard protocol identifiers.
func NewDevice(name string) Device {
	d := Device{Name: name}
	d.fillDefaults()
	return d
}

func (d *Device) fillDefaults() {
	if d.ServiceUUID == "" {
		d.ServiceUUID = DefaultServiceUUID
	}
	if d.WriteCharUUID == "" {
		d.WriteCharUUID = DefaultWriteCharUUID
	}
	if d.NotifyCharUUID == "" {
		d.NotifyCharUUID = DefaultNotifyCharUUID
	}
}

// normalizeUUIDs canonicalizes the three protocol identifiers, rejecting
// values that are not valid 128-bit UUIDs.
func (d *Device) normalizeUUIDs() error {
	for _, field := range []*string{&d.ServiceUUID, &d.WriteCharUUID, &d.NotifyCharUUID} {
		canonical, err := NormalizeUUID(*field)
		if err != nil {
			return err
		}
		*field = canonical
	}
	return nil
}

// MarshalJSON writes an unknown address as null, the shape older files and
// other tools for these lamps use.
func (d Device) MarshalJSON() ([]byte, error) {
	type plain Device
	record := struct {
		plain
		Address *string `json:"address"`
	}{plain: plain(d)}
	if d.Address != "" {
		record.Address = &d.Address
	}
	return json.Marshal(record)
}

// NormalizeUUID canonicalizes a 128-bit identifier to the uppercase dashed
// form used throughout the config file and the protocol tables.
func NormalizeUUID(s string) (string, error) {
	u, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("invalid uuid %q: %w", s, err)
	}
	return strings.ToUpper(u.String()), nil
}
