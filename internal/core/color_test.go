package core

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewColorClamps(t *testing.T) {
	tests := []struct {
		name     string
		r, g, b  int
		expected Color
	}{
		{"in range", 255, 100, 50, Color{255, 100, 50}},
		{"over and under", 300, -50, 256, Color{255, 0, 255}},
		{"all negative", -1, -1000, -256, Color{0, 0, 0}},
		{"boundaries", 0, 255, 128, Color{0, 255, 128}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, NewColor(tc.r, tc.g, tc.b))
		})
	}
}

func TestColorFromHex(t *testing.T) {
	assert.Equal(t, Color{255, 100, 50}, ColorFromHex(0xFF6432))
	// Bits above the low 24 are ignored
	assert.Equal(t, Color{0, 0, 1}, ColorFromHex(0xAB000001))
}

func TestColorHex(t *testing.T) {
	assert.Equal(t, uint32(0xFF6432), NewColor(255, 100, 50).Hex())
}

func TestColorHexRoundTrip(t *testing.T) {
	// Every channel value appears in each position; stride keeps the test fast.
	for h := uint32(0); h <= 0xFFFFFF; h += 97 {
		require.Equal(t, h, ColorFromHex(h).Hex(), "hex %#06x", h)
	}
	for _, h := range []uint32{0x000000, 0xFFFFFF, 0x010203, 0xFEDCBA} {
		assert.Equal(t, h, ColorFromHex(h).Hex(), "hex %#06x", h)
	}
}

func TestColorAdd(t *testing.T) {
	tests := []struct {
		a, b     Color
		expected Color
	}{
		{NewColor(100, 150, 200), NewColor(60, 100, 80), Color{160, 250, 255}},
		{NewColor(200, 200, 200), NewColor(100, 100, 100), Color{255, 255, 255}},
		{Black, Black, Black},
		{White, White, White},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, tc.a.Add(tc.b), "%v.Add(%v)", tc.a, tc.b)
	}
}

func TestColorScale(t *testing.T) {
	tests := []struct {
		c        Color
		factor   float64
		expected Color
	}{
		{NewColor(100, 150, 200), 1.5, Color{150, 225, 255}},
		{NewColor(200, 200, 200), 1.5, Color{255, 255, 255}},
		{NewColor(100, 150, 200), 0.5, Color{50, 75, 100}},
		{NewColor(100, 150, 200), -2, Color{0, 0, 0}},
		{NewColor(3, 5, 7), 0.5, Color{2, 3, 4}}, // round half away from zero
		{NewColor(10, 20, 30), 0, Color{0, 0, 0}},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, tc.c.Scale(tc.factor), "%v.Scale(%v)", tc.c, tc.factor)
	}
}

func TestColorString(t *testing.T) {
	assert.Equal(t, "Color(r: 100, g: 150, b: 200)", fmt.Sprint(NewColor(100, 150, 200)))
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in       string
		expected Color
		wantErr  bool
	}{
		{"#333355", Color{0x33, 0x33, 0x55}, false},
		{"ffdddd", Color{0xFF, 0xDD, 0xDD}, false},
		{"0xFFFFFF", White, false},
		{" #000000 ", Black, false},
		{"#fff", Color{}, true},
		{"zzzzzz", Color{}, true},
		{"", Color{}, true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseHex(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}
