package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const prefix = "lotus/Living Room"

func TestRoutePower(t *testing.T) {
	for payload, want := range map[string]bool{
		"on": true, "ON": true, "1": true, "true": true,
		"off": false, "0": false, "false": false,
	} {
		a, err := Route(prefix, prefix+"/set/power", []byte(payload))
		require.NoError(t, err, payload)
		assert.Equal(t, KindPower, a.Kind)
		assert.Equal(t, want, a.On, payload)
	}

	_, err := Route(prefix, prefix+"/set/power", []byte("maybe"))
	require.Error(t, err)
}

func TestRouteColor(t *testing.T) {
	a, err := Route(prefix, prefix+"/set/color", []byte("255, 128, 0"))
	require.NoError(t, err)
	assert.Equal(t, Action{Kind: KindColor, R: 255, G: 128, B: 0}, a)

	a, err = Route(prefix, prefix+"/set/color", []byte("cyan"))
	require.NoError(t, err)
	assert.Equal(t, Action{Kind: KindColor, R: 0, G: 255, B: 255}, a)

	_, err = Route(prefix, prefix+"/set/color", []byte("1,2"))
	require.Error(t, err)

	_, err = Route(prefix, prefix+"/set/color", []byte("a,b,c"))
	require.Error(t, err)
}

func TestRouteLevels(t *testing.T) {
	a, err := Route(prefix, prefix+"/set/brightness", []byte("75"))
	require.NoError(t, err)
	assert.Equal(t, Action{Kind: KindBrightness, Level: 75}, a)

	a, err = Route(prefix, prefix+"/set/speed", []byte("20"))
	require.NoError(t, err)
	assert.Equal(t, Action{Kind: KindSpeed, Level: 20}, a)

	_, err = Route(prefix, prefix+"/set/brightness", []byte("bright"))
	require.Error(t, err)
}

func TestRouteMode(t *testing.T) {
	a, err := Route(prefix, prefix+"/set/mode", []byte("143"))
	require.NoError(t, err)
	assert.Equal(t, Action{Kind: KindMode, Mode: 143}, a)

	// A non-numeric payload is a name search; the first hit wins.
	a, err = Route(prefix, prefix+"/set/mode", []byte("W-R-W Flow"))
	require.NoError(t, err)
	assert.Equal(t, 143, a.Mode)

	_, err = Route(prefix, prefix+"/set/mode", []byte("no such animation"))
	require.Error(t, err)
}

func TestRouteRejectsForeignTopics(t *testing.T) {
	_, err := Route(prefix, "other/topic", []byte("on"))
	require.Error(t, err)

	_, err = Route(prefix, prefix+"/set/volume", []byte("11"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}
