package protocol

import (
	"fmt"
	"sort"
	"strings"
)

// namedColors are the color names the original Lotus Lamp X app exposes.
var namedColors = map[string][3]int{
	"red":     {255, 0, 0},
	"green":   {0, 255, 0},
	"blue":    {0, 0, 255},
	"white":   {255, 255, 255},
	"yellow":  {255, 255, 0},
	"cyan":    {0, 255, 255},
	"magenta": {255, 0, 255},
	"orange":  {255, 165, 0},
	"purple":  {128, 0, 128},
	"pink":    {255, 192, 203},
	"off":     {0, 0, 0},
}

// NamedColor resolves a color name (case-insensitive) to its RGB channels.
func NamedColor(name string) (r, g, b int, err error) {
	c, ok := namedColors[strings.ToLower(name)]
	if !ok {
		return 0, 0, 0, fmt.Errorf("unknown color %q (one of: %s)", name, strings.Join(ColorNames(), ", "))
	}
	return c[0], c[1], c[2], nil
}

// ColorNames lists the known color names in alphabetical order.
func ColorNames() []string {
	names := make([]string, 0, len(namedColors))
	for name := range namedColors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
