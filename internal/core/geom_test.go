package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectContains(t *testing.T) {
	r := NewRect(5, 5, 10, 10)

	tests := []struct {
		x, y     int
		expected bool
	}{
		{5, 5, true},    // Top-left corner
		{14, 14, true},  // Bottom-right inside
		{15, 15, false}, // Just outside
		{4, 5, false},   // Left of rect
		{10, 10, true},  // Center
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, r.Contains(tc.x, tc.y), "Contains(%d, %d)", tc.x, tc.y)
	}
}

func TestPointAdd(t *testing.T) {
	assert.Equal(t, P(5, 1), P(2, 3).Add(3, -2))
	assert.Equal(t, P(2, 3), P(2, 3).Add(0, 0))
}

func TestVertexPointTruncates(t *testing.T) {
	tests := []struct {
		v        Vertex
		expected Point
	}{
		{V(1.9, 2.1), P(1, 2)},
		{V(-1.5, 0.5), P(-1, 0)},
		{Vertex{X: 3, Y: 4, Z: 99}, P(3, 4)},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, tc.v.Point(), "%+v.Point()", tc.v)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, Clamp(tc.val, tc.min, tc.max), "Clamp(%d, %d, %d)", tc.val, tc.min, tc.max)
	}
}

func TestAbs(t *testing.T) {
	assert.Equal(t, 5, Abs(-5))
	assert.Equal(t, 5, Abs(5))
	assert.Equal(t, 0, Abs(0))
}
