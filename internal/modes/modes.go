// Package modes is the catalog of the 213 built-in animation modes
// (numbers 0-212) and the eight categories the Lotus Lamp X app groups them
// into. Pure data and lookups, no state.
package modes

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrIndexOutOfRange = errors.New("index out of range")
)

// Match is one search result.
type Match struct {
	Mode     int
	Name     string
	Category string
}

// Name returns the app name for a mode. Unknown numbers yield a synthesized
// placeholder rather than an error.
func Name(mode int) string {
	if name, ok := modeNames[mode]; ok {
		return name
	}
	return fmt.Sprintf("Unknown Mode %d", mode)
}

// Category returns the category owning a mode, or "unknown" if no category
// contains it.
func Category(mode int) string {
	for _, c := range categoryTable {
		for _, m := range c.modes {
			if m == mode {
				return c.name
			}
		}
	}
	return "unknown"
}

// Search finds modes whose name contains the query, case-insensitively,
// sorted ascending by mode number. An empty query matches nothing.
func Search(query string) []Match {
	if query == "" {
		return nil
	}
	query = strings.ToLower(query)

	var matches []Match
	for mode, name := range modeNames {
		if strings.Contains(strings.ToLower(name), query) {
			matches = append(matches, Match{Mode: mode, Name: name, Category: Category(mode)})
		}
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].Mode < matches[j].Mode })
	return matches
}

// ByCategoryIndex translates a 1-based position within a category (as shown
// in the app UI) into the absolute mode number.
func ByCategoryIndex(name string, index int) (int, error) {
	c, ok := lookupCategory(name)
	if !ok {
		return 0, fmt.Errorf("%w: %q (valid: %s)", ErrUnknownCategory, name, strings.Join(Categories(), ", "))
	}
	if index < 1 || index > len(c.modes) {
		return 0, fmt.Errorf("%w: %d for category %s (1-%d)", ErrIndexOutOfRange, index, c.name, len(c.modes))
	}
	return c.modes[index-1], nil
}

// Categories lists the category names in the app's display order.
func Categories() []string {
	names := make([]string, len(categoryTable))
	for i, c := range categoryTable {
		names[i] = c.name
	}
	return names
}

// CategoryModes returns the mode numbers of a category in display order, or
// ErrUnknownCategory.
func CategoryModes(name string) ([]int, error) {
	c, ok := lookupCategory(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q (valid: %s)", ErrUnknownCategory, name, strings.Join(Categories(), ", "))
	}
	return append([]int(nil), c.modes...), nil
}

func lookupCategory(name string) (category, bool) {
	name = strings.ToLower(name)
	for _, c := range categoryTable {
		if c.name == name {
			return c, true
		}
	}
	return category{}, false
}
