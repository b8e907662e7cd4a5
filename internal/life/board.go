// Package life implements Conway's Game of Life on bounded grids.
//
// Board keeps cell state as booleans and is the source of truth for a running
// simulation; colors are painted from it. StepFramebuffer applies the same rule
// directly to a framebuffer, treating pure white pixels as alive, for buffers
// that were drawn on by other means.
package life

import (
	"github.com/vovakirdan/framelife/internal/core"
)

// Board is a fixed-size grid of cells stored row-major (index = y*W + x).
// Cells outside the grid are permanently dead; there is no wraparound.
type Board struct {
	width      int
	height     int
	cells      []bool
	next       []bool
	generation uint64
}

// NewBoard creates an all-dead board.
func NewBoard(width, height int) (*Board, error) {
	if width <= 0 || height <= 0 {
		return nil, core.ErrInvalidSize
	}
	return &Board{
		width:  width,
		height: height,
		cells:  make([]bool, width*height),
		next:   make([]bool, width*height),
	}, nil
}

// Width returns the board width in cells.
func (b *Board) Width() int {
	return b.width
}

// Height returns the board height in cells.
func (b *Board) Height() int {
	return b.height
}

// Generation returns the number of steps taken since creation or Clear.
func (b *Board) Generation() uint64 {
	return b.generation
}

// Alive reports whether the cell at (x, y) is alive.
// Out-of-bounds cells are dead.
func (b *Board) Alive(x, y int) bool {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return false
	}
	return b.cells[y*b.width+x]
}

// Set changes the state of the cell at (x, y).
// Out-of-bounds coordinates are silently ignored.
func (b *Board) Set(x, y int, alive bool) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	b.cells[y*b.width+x] = alive
}

// Clear kills every cell and resets the generation counter.
func (b *Board) Clear() {
	for i := range b.cells {
		b.cells[i] = false
	}
	b.generation = 0
}

// Population returns the number of live cells.
func (b *Board) Population() int {
	n := 0
	for _, alive := range b.cells {
		if alive {
			n++
		}
	}
	return n
}

// Step advances the board one generation on the calling goroutine.
func (b *Board) Step() {
	b.stepRows(0, b.height)
	b.swap()
}

// stepRows writes the next state of rows [y0, y1) into b.next, reading only
// b.cells. Distinct row ranges can run concurrently.
func (b *Board) stepRows(y0, y1 int) {
	for y := y0; y < y1; y++ {
		for x := 0; x < b.width; x++ {
			n := 0
			for _, d := range neighbours {
				if b.Alive(x+d[0], y+d[1]) {
					n++
				}
			}
			i := y*b.width + x
			b.next[i] = nextState(b.cells[i], n)
		}
	}
}

func (b *Board) swap() {
	b.cells, b.next = b.next, b.cells
	b.generation++
}

// Paint writes the board into fb, alive cells in alive and dead cells in dead.
// Cells beyond fb's bounds are skipped.
func (b *Board) Paint(fb *core.Framebuffer, alive, dead core.Color) {
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			c := dead
			if b.cells[y*b.width+x] {
				c = alive
			}
			fb.SetPixel(x, y, c)
		}
	}
}

// Equal reports whether two boards have the same size and live cells.
func (b *Board) Equal(other *Board) bool {
	if b.width != other.width || b.height != other.height {
		return false
	}
	for i, alive := range b.cells {
		if alive != other.cells[i] {
			return false
		}
	}
	return true
}
