// Package colors resolves hex color strings into RGBA values. It is the
// shared leaf utility behind the renderer's color cache.
package colors

import "strconv"

// DefaultHex is the fallback used whenever a color string cannot be parsed
// or a style sheet has no entry for a feature.
const DefaultHex = "#808080"

// RGBA is a resolved 8-bit color.
type RGBA struct {
	R, G, B, A uint8
}

// Default is DefaultHex resolved.
var Default = RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}

// Parse decodes a "#RRGGBB" or "RRGGBB" string, case-insensitive. The
// second return is false when the input is not a 6-digit hex color.
func Parse(hex string) (RGBA, bool) {
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}
	if len(hex) != 6 {
		return RGBA{}, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return RGBA{}, false
	}
	return RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xff,
	}, true
}

// ParseOrDefault is the total form of Parse: bad input yields Default
// instead of failing the draw.
func ParseOrDefault(hex string) RGBA {
	if c, ok := Parse(hex); ok {
		return c
	}
	return Default
}

// WithAlpha returns the color with its alpha channel replaced.
func (c RGBA) WithAlpha(a uint8) RGBA {
	c.A = a
	return c
}

// Darken scales the color channels toward black by factor f in (0,1],
// keeping alpha. Used to derive a stroke color from a fill color.
func (c RGBA) Darken(f float64) RGBA {
	if f < 0 {
		f = 0
	} else if f > 1 {
		f = 1
	}
	return RGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: c.A,
	}
}
