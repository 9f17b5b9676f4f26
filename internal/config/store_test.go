package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewDeviceDefaults(t *testing.T) {
	d := NewDevice("Living Room")

	assert.Equal(t, "Living Room", d.Name)
	assert.Empty(t, d.Address)
	assert.Equal(t, DefaultServiceUUID, d.ServiceUUID)
	assert.Equal(t, DefaultWriteCharUUID, d.WriteCharUUID)
	assert.Equal(t, DefaultNotifyCharUUID, d.NotifyCharUUID)
}

func TestNormalizeUUID(t *testing.T) {
	got, err := NormalizeUUID("0000fff0-0000-1000-8000-00805f9b34fb")
	require.NoError(t, err)
	assert.Equal(t, DefaultServiceUUID, got)

	_, err = NormalizeUUID("not-a-uuid")
	require.Error(t, err)
}

func TestLoadMultiDevice(t *testing.T) {
	path := writeFile(t, "config.json", `{
		"devices": [
			{"name": "Living Room", "address": "11:22:33:44:55:66"},
			{"name": "Bedroom", "address": "AA:BB:CC:DD:EE:FF"}
		]
	}`)

	s, err := Open(path, nil)
	require.NoError(t, err)

	require.Equal(t, []string{"Living Room", "Bedroom"}, s.Names())
	d, ok := s.Get("Bedroom")
	require.True(t, ok)
	assert.Equal(t, "AA:BB:CC:DD:EE:FF", d.Address)
	assert.Equal(t, DefaultServiceUUID, d.ServiceUUID, "unset identifiers fall back to defaults")
}

func TestLoadLegacySingleDevice(t *testing.T) {
	path := writeFile(t, "legacy.json", `{
		"name": "My Lamp",
		"address": null,
		"service_uuid": "0000FFF0-0000-1000-8000-00805F9B34FB",
		"write_char_uuid": "0000FFF3-0000-1000-8000-00805F9B34FB",
		"notify_char_uuid": "0000FFF4-0000-1000-8000-00805F9B34FB"
	}`)

	s, err := Open(path, nil)
	require.NoError(t, err)

	require.Len(t, s.Devices(), 1)
	d, ok := s.Default()
	require.True(t, ok)
	assert.Equal(t, "My Lamp", d.Name)
	assert.Empty(t, d.Address)
	assert.Equal(t, DefaultNotifyCharUUID, d.NotifyCharUUID)
}

func TestLoadErrors(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		_, err := Open(filepath.Join(t.TempDir(), "missing.json"), nil)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("malformed", func(t *testing.T) {
		path := writeFile(t, "bad.json", `{devices: [`)
		_, err := Open(path, nil)
		require.ErrorIs(t, err, ErrMalformed)
	})

	t.Run("not an object", func(t *testing.T) {
		path := writeFile(t, "list.json", `[1, 2, 3]`)
		_, err := Open(path, nil)
		require.ErrorIs(t, err, ErrMalformed)
	})

	t.Run("missing name", func(t *testing.T) {
		path := writeFile(t, "anon.json", `{"devices": [{"address": "11:22:33:44:55:66"}]}`)
		_, err := Open(path, nil)
		require.ErrorIs(t, err, ErrMissingField)
	})

	t.Run("invalid identifier", func(t *testing.T) {
		path := writeFile(t, "badid.json", `{"devices": [{"name": "Lamp", "service_uuid": "not-a-uuid"}]}`)
		_, err := Open(path, nil)
		require.ErrorIs(t, err, ErrMalformed)
	})
}

func TestLoadCanonicalizesIdentifiers(t *testing.T) {
	path := writeFile(t, "lower.json", `{
		"devices": [{
			"name": "Lamp",
			"service_uuid": "0000ffe0-0000-1000-8000-00805f9b34fb",
			"write_char_uuid": "0000fff3-0000-1000-8000-00805f9b34fb"
		}]
	}`)

	s, err := Open(path, nil)
	require.NoError(t, err)

	d, ok := s.Get("Lamp")
	require.True(t, ok)
	assert.Equal(t, "0000FFE0-0000-1000-8000-00805F9B34FB", d.ServiceUUID)
	assert.Equal(t, DefaultWriteCharUUID, d.WriteCharUUID)
	assert.Equal(t, DefaultNotifyCharUUID, d.NotifyCharUUID, "defaults pass through untouched")
}

func TestSaveUnknownAddressAsNull(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	s := newStore(nil)
	s.Add(NewDevice("Unplaced"))
	known := NewDevice("Placed")
	known.Address = "11:22:33:44:55:66"
	s.Add(known)

	require.NoError(t, s.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"address": null`)
	assert.Contains(t, string(data), `"address": "11:22:33:44:55:66"`)

	reloaded, err := Open(path, nil)
	require.NoError(t, err)
	d, ok := reloaded.Get("Unplaced")
	require.True(t, ok)
	assert.Empty(t, d.Address)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.json")

	s := newStore(nil)
	first := NewDevice("Living Room")
	first.Address = "11:22:33:44:55:66"
	second := NewDevice("Bedroom")
	second.ServiceUUID = "0000FFE0-0000-1000-8000-00805F9B34FB"
	s.Add(first)
	s.Add(second)

	require.NoError(t, s.Save(path))

	reloaded, err := Open(path, nil)
	require.NoError(t, err)

	require.Equal(t, s.Devices(), reloaded.Devices())
	def, ok := reloaded.Default()
	require.True(t, ok)
	assert.Equal(t, "Living Room", def.Name, "insertion order survives the round trip")
}

func TestSaveAlwaysWritesWrappedShape(t *testing.T) {
	legacy := writeFile(t, "legacy.json", `{"name": "My Lamp"}`)
	s, err := Open(legacy, nil)
	require.NoError(t, err)

	require.NoError(t, s.Save(""))

	data, err := os.ReadFile(legacy)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"devices"`)
}

func TestSaveNoPath(t *testing.T) {
	s := newStore(nil)
	s.Add(NewDevice("Lamp"))
	require.ErrorIs(t, s.Save(""), ErrNoPath)
}

func TestAddReplacesByName(t *testing.T) {
	s := newStore(nil)
	s.Add(NewDevice("A"))
	s.Add(NewDevice("B"))

	updated := NewDevice("A")
	updated.Address = "11:22:33:44:55:66"
	s.Add(updated)

	require.Equal(t, []string{"A", "B"}, s.Names(), "replacement keeps insertion order")
	d, _ := s.Get("A")
	assert.Equal(t, "11:22:33:44:55:66", d.Address)
}

func TestRemove(t *testing.T) {
	s := newStore(nil)
	s.Add(NewDevice("A"))

	assert.True(t, s.Remove("A"))
	assert.False(t, s.Remove("A"))
	_, ok := s.Default()
	assert.False(t, ok)
}

func TestOpenDefaultEmpty(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("HOME", t.TempDir())

	s, err := OpenDefault(nil)
	require.NoError(t, err)
	assert.Empty(t, s.Devices())
	assert.Empty(t, s.Path())
}

func TestOpenDefaultPrefersProjectFile(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	dir := t.TempDir()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	require.NoError(t, os.WriteFile("lotus_lamp_config.json", []byte(`{"devices":[{"name":"Project"}]}`), 0644))
	require.NoError(t, os.WriteFile(".lotus_lamp.json", []byte(`{"devices":[{"name":"Dotfile"}]}`), 0644))

	s, err := OpenDefault(nil)
	require.NoError(t, err)
	d, ok := s.Default()
	require.True(t, ok)
	assert.Equal(t, "Project", d.Name)
}
