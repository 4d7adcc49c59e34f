package shatter

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseColor parses a "#rrggbb" or "#rgb" hex string into an opaque Color.
func ParseColor(hex string) (Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("shatter: parse color %q: %w", hex, err)
	}
	return Color{R: c.R, G: c.G, B: c.B, A: 1}, nil
}

// MustParseColor is like ParseColor but panics on malformed input. Intended
// for package-level literals.
func MustParseColor(hex string) Color {
	c, err := ParseColor(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// ParsePalette parses every entry of hexes. An empty palette is an error.
func ParsePalette(hexes []string) ([]Color, error) {
	if len(hexes) == 0 {
		return nil, fmt.Errorf("shatter: empty palette")
	}
	out := make([]Color, len(hexes))
	for i, h := range hexes {
		c, err := ParseColor(h)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}
