// Package raster draws lines and polygon outlines onto any pixel surface that
// exposes its size and per-pixel access. It knows nothing about how pixels are
// stored; *core.Framebuffer is the usual target.
package raster

import "github.com/vovakirdan/framelife/internal/core"

// Canvas is the narrow surface the rasterizer draws on.
// SetPixel must ignore coordinates outside [0,Width)x[0,Height).
type Canvas interface {
	Width() int
	Height() int
	Pixel(x, y int) (core.Color, bool)
	SetPixel(x, y int, c core.Color)
}

// Line draws a line from start to end, both endpoints included, using integer
// Bresenham stepping. Vertex coordinates are truncated onto the pixel grid and
// Z is ignored. Pixels outside the canvas are skipped.
func Line(dst Canvas, start, end core.Vertex, c core.Color) {
	w, h := dst.Width(), dst.Height()
	walk(start.Point(), end.Point(), func(x, y int) {
		if x < 0 || x >= w || y < 0 || y >= h {
			return
		}
		dst.SetPixel(x, y, c)
	})
}

// Points returns the pixels Line would plot between start and end, in
// plotting order.
func Points(start, end core.Point) []core.Point {
	n := core.Abs(end.X-start.X) + core.Abs(end.Y-start.Y) + 1
	pts := make([]core.Point, 0, n)
	walk(start, end, func(x, y int) {
		pts = append(pts, core.P(x, y))
	})
	return pts
}

// Polygon draws the closed outline through points: one line per consecutive
// pair plus a closing line from the last point back to the first.
// Fewer than three points draws nothing.
func Polygon(dst Canvas, points []core.Vertex, c core.Color) {
	if len(points) < 3 {
		return
	}
	Polyline(dst, points, c)
	Line(dst, points[len(points)-1], points[0], c)
}

// Polyline draws an open chain of lines through points without closing it.
// Fewer than two points draws nothing.
func Polyline(dst Canvas, points []core.Vertex, c core.Color) {
	for i := 1; i < len(points); i++ {
		Line(dst, points[i-1], points[i], c)
	}
}

// walk visits every pixel on the Bresenham line from a to b.
func walk(a, b core.Point, plot func(x, y int)) {
	x, y := a.X, a.Y
	dx := core.Abs(b.X - x)
	dy := -core.Abs(b.Y - y)
	sx, sy := -1, -1
	if x < b.X {
		sx = 1
	}
	if y < b.Y {
		sy = 1
	}
	err := dx + dy

	for {
		plot(x, y)
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}
