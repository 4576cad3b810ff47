package termisu

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ColorMode tags the variant a Color holds.
type ColorMode uint8

const (
	// ColorModeDefault is the terminal's default foreground/background.
	ColorModeDefault ColorMode = iota
	// ColorModeANSI is one of the 8 standard ANSI colors (index 0..7).
	ColorModeANSI
	// ColorMode256 is an ANSI-256 palette index (0..255).
	ColorMode256
	// ColorModeRGB is a 24-bit true color.
	ColorModeRGB
)

// Color is a tagged variant over {Default, ANSI-8, ANSI-256, RGB}. It is a
// value type: two Colors are equal iff their mode and payload match.
type Color struct {
	mode       ColorMode
	index      uint8
	r, g, b    uint8
}

// Default is the terminal's default foreground/background color.
var Default = Color{mode: ColorModeDefault}

// ANSI constructs an 8-color ANSI variant. Index is clamped to 0..7.
func ANSI(index int) Color {
	if index < 0 {
		index = 0
	}
	if index > 7 {
		index = 7
	}
	return Color{mode: ColorModeANSI, index: uint8(index)}
}

// ANSI256 constructs a 256-color palette variant. Index is clamped to 0..255.
func ANSI256(index int) Color {
	if index < 0 {
		index = 0
	}
	if index > 255 {
		index = 255
	}
	return Color{mode: ColorMode256, index: uint8(index)}
}

// RGB constructs a 24-bit true-color variant.
func RGB(r, g, b uint8) Color {
	return Color{mode: ColorModeRGB, r: r, g: g, b: b}
}

// Gray returns one of the 24 grayscale ramp colors (ANSI-256 indices
// 232..255), level clamped to 0..23.
func Gray(level int) Color {
	if level < 0 {
		level = 0
	}
	if level > 23 {
		level = 23
	}
	return ANSI256(232 + level)
}

// FromHex parses a "#rrggbb" or "rrggbb" string into an RGB Color. On
// malformed input it returns Default and a non-nil error. Hex decoding is
// delegated to go-colorful rather than hand-rolled, so that the same
// component values it reports (0..1 floats) are quantized identically to
// its own RGB255 rounding rather than a second, possibly divergent,
// rounding rule.
func FromHex(s string) (Color, error) {
	s = strings.TrimPrefix(s, "#")
	c, err := colorful.Hex("#" + s)
	if err != nil {
		return Default, fmt.Errorf("termisu: invalid hex color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGB(r, g, b), nil
}

// Mode reports which variant the Color holds.
func (c Color) Mode() ColorMode { return c.mode }

// Index returns the ANSI or ANSI-256 palette index. Only meaningful when
// Mode is ColorModeANSI or ColorMode256.
func (c Color) Index() int { return int(c.index) }

// RGB255 returns the 24-bit RGB components. Only meaningful when Mode is
// ColorModeRGB.
func (c Color) RGB255() (uint8, uint8, uint8) { return c.r, c.g, c.b }

// Equal reports whether two colors have the same tag and payload.
func (c Color) Equal(o Color) bool {
	if c.mode != o.mode {
		return false
	}
	switch c.mode {
	case ColorModeDefault:
		return true
	case ColorModeANSI, ColorMode256:
		return c.index == o.index
	case ColorModeRGB:
		return c.r == o.r && c.g == o.g && c.b == o.b
	}
	return false
}

func (c Color) String() string {
	switch c.mode {
	case ColorModeDefault:
		return "default"
	case ColorModeANSI:
		return fmt.Sprintf("ansi(%d)", c.index)
	case ColorMode256:
		return fmt.Sprintf("ansi256(%d)", c.index)
	case ColorModeRGB:
		return fmt.Sprintf("#%02x%02x%02x", c.r, c.g, c.b)
	}
	return "unknown"
}
