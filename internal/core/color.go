package core

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// Color is an 8-bit-per-channel RGB value.
// Every constructor and arithmetic operation keeps channels within [0, 255].
type Color struct {
	R, G, B uint8
}

// Predefined colors. White doubles as the "alive" state for color-mode life.
var (
	Black = Color{0, 0, 0}
	White = Color{255, 255, 255}
)

// NewColor creates a color, clamping each channel independently to [0, 255].
func NewColor(r, g, b int) Color {
	return Color{
		R: uint8(Clamp(r, 0, 255)),
		G: uint8(Clamp(g, 0, 255)),
		B: uint8(Clamp(b, 0, 255)),
	}
}

// ColorFromHex unpacks a 24-bit 0xRRGGBB value. Bits above 23 are ignored.
func ColorFromHex(hex uint32) Color {
	return Color{
		R: uint8(hex >> 16),
		G: uint8(hex >> 8),
		B: uint8(hex),
	}
}

// Hex packs the color back into 0xRRGGBB.
func (c Color) Hex() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Add returns the per-channel saturating sum of two colors.
func (c Color) Add(other Color) Color {
	return NewColor(
		int(c.R)+int(other.R),
		int(c.G)+int(other.G),
		int(c.B)+int(other.B),
	)
}

// Scale multiplies every channel by factor, rounding to the nearest integer
// and clamping to [0, 255].
func (c Color) Scale(factor float64) Color {
	return Color{
		R: scaleChannel(c.R, factor),
		G: scaleChannel(c.G, factor),
		B: scaleChannel(c.B, factor),
	}
}

func scaleChannel(v uint8, factor float64) uint8 {
	scaled := math.Round(float64(v) * factor)
	if math.IsNaN(scaled) {
		return 0
	}
	return uint8(ClampF(scaled, 0, 255))
}

// RGBA converts the color to an opaque image/color value.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return fmt.Sprintf("Color(r: %d, g: %d, b: %d)", c.R, c.G, c.B)
}

// ParseHex parses "#RRGGBB", "RRGGBB" or "0xRRGGBB" into a color.
func ParseHex(s string) (Color, error) {
	trimmed := strings.TrimSpace(s)
	trimmed = strings.TrimPrefix(trimmed, "#")
	if strings.HasPrefix(trimmed, "0x") || strings.HasPrefix(trimmed, "0X") {
		trimmed = trimmed[2:]
	}
	if len(trimmed) != 6 {
		return Color{}, fmt.Errorf("core: invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(trimmed, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("core: invalid hex color %q: %w", s, err)
	}
	return ColorFromHex(uint32(v)), nil
}
