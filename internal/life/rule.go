package life

import (
	"context"

	"github.com/vovakirdan/framelife/internal/core"
	"github.com/vovakirdan/framelife/internal/raster"
)

// neighbours are the Moore neighbourhood offsets.
var neighbours = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// nextState applies B3/S23.
func nextState(alive bool, n int) bool {
	if alive {
		return n == 2 || n == 3
	}
	return n == 3
}

// StepFramebuffer advances fb one generation in color mode: a pixel is alive
// iff it is exactly white. Dying cells become black, born cells become white
// and every other pixel keeps its color. Neighbour counts are taken from a
// snapshot, so no cell sees another cell's new state within the same step.
// It runs on the calling goroutine; use Engine.StepFramebuffer for bands.
func StepFramebuffer(fb *core.Framebuffer) error {
	return NewEngine(1).StepFramebuffer(context.Background(), fb)
}

// stepColorRows writes rows [y0, y1) of the generation after snapshot into
// dst. It reads only snapshot, so distinct row ranges can run concurrently.
func stepColorRows(snapshot, dst []core.Color, width, y0, y1 int) {
	height := len(snapshot) / width
	alive := func(x, y int) bool {
		if x < 0 || x >= width || y < 0 || y >= height {
			return false
		}
		return snapshot[y*width+x] == core.White
	}

	for y := y0; y < y1; y++ {
		for x := 0; x < width; x++ {
			n := 0
			for _, d := range neighbours {
				if alive(x+d[0], y+d[1]) {
					n++
				}
			}
			i := y*width + x
			wasAlive := snapshot[i] == core.White
			switch {
			case wasAlive && !nextState(true, n):
				dst[i] = core.Black
			case !wasAlive && nextState(false, n):
				dst[i] = core.White
			default:
				dst[i] = snapshot[i]
			}
		}
	}
}

// BoardFromCanvas builds a board the size of src with a live cell wherever
// src holds a pure white pixel.
func BoardFromCanvas(src raster.Canvas) (*Board, error) {
	b, err := NewBoard(src.Width(), src.Height())
	if err != nil {
		return nil, err
	}
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			if c, ok := src.Pixel(x, y); ok && c == core.White {
				b.cells[y*b.width+x] = true
			}
		}
	}
	return b, nil
}
