// Package bridge exposes one lamp session over MQTT. Command topics live
// under <prefix>/set/..., payload parsing is pure so it can be tested
// without a broker.
package bridge

import (
	"fmt"
	"strconv"
	"strings"

	"lotuslamp/internal/modes"
	"lotuslamp/internal/protocol"
)

type Kind int

const (
	KindPower Kind = iota
	KindColor
	KindBrightness
	KindSpeed
	KindMode
)

// Action is one parsed command.
type Action struct {
	Kind    Kind
	On      bool
	R, G, B int
	Level   int
	Mode    int
}

// Route parses a command topic and payload into an Action. The topic must be
// <prefix>/set/<command>; anything else is an error.
func Route(prefix, topic string, payload []byte) (Action, error) {
	command, ok := strings.CutPrefix(topic, prefix+"/set/")
	if !ok {
		return Action{}, fmt.Errorf("topic %q not under %s/set/", topic, prefix)
	}

	value := strings.TrimSpace(string(payload))
	switch command {
	case "power":
		return routePower(value)
	case "color":
		return routeColor(value)
	case "brightness":
		return routeLevel(KindBrightness, value)
	case "speed":
		return routeLevel(KindSpeed, value)
	case "mode":
		return routeMode(value)
	default:
		return Action{}, fmt.Errorf("unknown command %q", command)
	}
}

func routePower(value string) (Action, error) {
	switch strings.ToLower(value) {
	case "on", "true", "1":
		return Action{Kind: KindPower, On: true}, nil
	case "off", "false", "0":
		return Action{Kind: KindPower, On: false}, nil
	}
	return Action{}, fmt.Errorf("power payload %q: want on or off", value)
}

func routeColor(value string) (Action, error) {
	if parts := strings.Split(value, ","); len(parts) == 3 {
		channels := [3]int{}
		for i, part := range parts {
			n, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return Action{}, fmt.Errorf("color payload %q: %w", value, err)
			}
			channels[i] = n
		}
		return Action{Kind: KindColor, R: channels[0], G: channels[1], B: channels[2]}, nil
	}

	r, g, b, err := protocol.NamedColor(value)
	if err != nil {
		return Action{}, fmt.Errorf("color payload %q: %w", value, err)
	}
	return Action{Kind: KindColor, R: r, G: g, B: b}, nil
}

func routeLevel(kind Kind, value string) (Action, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return Action{}, fmt.Errorf("level payload %q: %w", value, err)
	}
	return Action{Kind: kind, Level: n}, nil
}

func routeMode(value string) (Action, error) {
	if n, err := strconv.Atoi(value); err == nil {
		return Action{Kind: KindMode, Mode: n}, nil
	}

	// Not a number: treat the payload as a mode-name search, first hit wins.
	results := modes.Search(value)
	if len(results) == 0 {
		return Action{}, fmt.Errorf("no mode matching %q", value)
	}
	return Action{Kind: KindMode, Mode: results[0].Mode}, nil
}
