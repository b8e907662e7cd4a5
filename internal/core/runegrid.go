package core

import (
	"strings"
)

// RuneGrid is a fixed-size character buffer for plain-text previews of
// cell layouts, one rune per cell.
type RuneGrid struct {
	width  int
	height int
	blank  rune
	cells  [][]rune
}

// NewRuneGrid creates a width x height grid filled with blank.
// Non-positive sizes give an empty grid.
func NewRuneGrid(width, height int, blank rune) *RuneGrid {
	width, height = max(width, 0), max(height, 0)
	g := &RuneGrid{
		width:  width,
		height: height,
		blank:  blank,
		cells:  make([][]rune, height),
	}
	for y := range g.cells {
		g.cells[y] = make([]rune, width)
	}
	g.Clear()
	return g
}

// Width returns the grid width in characters.
func (g *RuneGrid) Width() int {
	return g.width
}

// Height returns the grid height in characters.
func (g *RuneGrid) Height() int {
	return g.height
}

// Clear resets every cell to the blank rune.
func (g *RuneGrid) Clear() {
	for y := range g.cells {
		for x := range g.cells[y] {
			g.cells[y][x] = g.blank
		}
	}
}

// Set places a rune at the given position.
// Out-of-bounds coordinates are silently ignored.
func (g *RuneGrid) Set(x, y int, r rune) {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return
	}
	g.cells[y][x] = r
}

// Get returns the rune at the given position, or blank outside the grid.
func (g *RuneGrid) Get(x, y int) rune {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return g.blank
	}
	return g.cells[y][x]
}

// Plot sets r at every point.
func (g *RuneGrid) Plot(points []Point, r rune) {
	for _, p := range points {
		g.Set(p.X, p.Y, r)
	}
}

// String renders the grid with every row terminated by a newline.
func (g *RuneGrid) String() string {
	var sb strings.Builder
	sb.Grow((g.width + 1) * g.height)

	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			sb.WriteRune(g.cells[y][x])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Row returns the specified row as a string, blank outside the grid.
func (g *RuneGrid) Row(y int) string {
	if y < 0 || y >= g.height {
		return strings.Repeat(string(g.blank), g.width)
	}
	return string(g.cells[y])
}
