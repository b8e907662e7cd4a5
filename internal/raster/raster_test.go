package raster

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/framelife/internal/core"
)

// plotted returns every coordinate of fb that is not black, sorted.
func plotted(fb *core.Framebuffer) []core.Point {
	var pts []core.Point
	for y := 0; y < fb.Height(); y++ {
		for x := 0; x < fb.Width(); x++ {
			if c, _ := fb.Pixel(x, y); c != core.Black {
				pts = append(pts, core.P(x, y))
			}
		}
	}
	return pts
}

func sortPoints(pts []core.Point) []core.Point {
	out := append([]core.Point(nil), pts...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

func TestLineHorizontalBothDirections(t *testing.T) {
	expected := []core.Point{core.P(0, 0), core.P(1, 0), core.P(2, 0)}

	forward := core.MustFramebuffer(5, 5)
	Line(forward, core.V(0, 0), core.V(2, 0), core.White)

	backward := core.MustFramebuffer(5, 5)
	Line(backward, core.V(2, 0), core.V(0, 0), core.White)

	assert.Equal(t, expected, plotted(forward), "Line((0,0),(2,0))")
	assert.Equal(t, expected, plotted(backward), "Line((2,0),(0,0))")
}

func TestLineSymmetricCases(t *testing.T) {
	tests := []struct {
		name   string
		a, b   core.Point
		length int
	}{
		{"vertical", core.P(3, 1), core.P(3, 6), 6},
		{"diagonal", core.P(0, 0), core.P(4, 4), 5},
		{"anti-diagonal", core.P(0, 4), core.P(4, 0), 5},
		{"single point", core.P(2, 2), core.P(2, 2), 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			forward := sortPoints(Points(tc.a, tc.b))
			backward := sortPoints(Points(tc.b, tc.a))
			assert.Equal(t, forward, backward, "points differ by direction")
			assert.Len(t, forward, tc.length)
		})
	}
}

func TestPointsIncludesEndpoints(t *testing.T) {
	pts := Points(core.P(1, 1), core.P(7, 4))
	assert.Equal(t, core.P(1, 1), pts[0])
	assert.Equal(t, core.P(7, 4), pts[len(pts)-1])
	// x-major line: one pixel per column
	assert.Len(t, pts, 7)
}

func TestPointsShallowSlope(t *testing.T) {
	expected := []core.Point{core.P(0, 0), core.P(1, 1), core.P(2, 1), core.P(3, 2), core.P(4, 2)}
	assert.Equal(t, expected, Points(core.P(0, 0), core.P(4, 2)))
}

func TestLineClipsOutOfBounds(t *testing.T) {
	fb := core.MustFramebuffer(4, 4)
	Line(fb, core.V(-3, 1), core.V(6, 1), core.White)

	expected := []core.Point{core.P(0, 1), core.P(1, 1), core.P(2, 1), core.P(3, 1)}
	assert.Equal(t, expected, plotted(fb))

	// Entirely outside: nothing drawn, no panic
	other := core.MustFramebuffer(4, 4)
	Line(other, core.V(-10, -10), core.V(-1, -5), core.White)
	assert.Empty(t, plotted(other))
}

func TestLineIgnoresZAndTruncates(t *testing.T) {
	fb := core.MustFramebuffer(5, 5)
	Line(fb, core.Vertex{X: 0.9, Y: 1.7, Z: 42}, core.Vertex{X: 2.2, Y: 1.1, Z: -3}, core.White)

	expected := []core.Point{core.P(0, 1), core.P(1, 1), core.P(2, 1)}
	assert.Equal(t, expected, plotted(fb))
}

func TestPolygonTooFewPoints(t *testing.T) {
	for _, pts := range [][]core.Vertex{
		nil,
		{core.V(1, 1)},
		{core.V(0, 0), core.V(4, 4)},
	} {
		fb := core.MustFramebuffer(5, 5)
		fb.SetPixel(2, 3, core.NewColor(7, 7, 7))
		before := fb.Clone()

		Polygon(fb, pts, core.White)

		assert.True(t, fb.Equal(before), "Polygon with %d points should not change the framebuffer", len(pts))
	}
}

func TestPolygonClosesOutline(t *testing.T) {
	fb := core.MustFramebuffer(6, 6)
	square := []core.Vertex{core.V(1, 1), core.V(4, 1), core.V(4, 4), core.V(1, 4)}
	Polygon(fb, square, core.White)

	// Every border pixel of the square is set, the interior is not
	for y := 1; y <= 4; y++ {
		for x := 1; x <= 4; x++ {
			c, _ := fb.Pixel(x, y)
			if x == 1 || x == 4 || y == 1 || y == 4 {
				assert.Equal(t, core.White, c, "border pixel (%d, %d)", x, y)
			} else {
				assert.Equal(t, core.Black, c, "interior pixel (%d, %d)", x, y)
			}
		}
	}
	assert.Len(t, plotted(fb), 12)
}

func TestPolylineDoesNotClose(t *testing.T) {
	fb := core.MustFramebuffer(6, 6)
	Polyline(fb, []core.Vertex{core.V(0, 0), core.V(3, 0), core.V(3, 3)}, core.White)

	c, _ := fb.Pixel(1, 1)
	assert.Equal(t, core.Black, c, "Polyline should not draw a closing diagonal")
	assert.Len(t, plotted(fb), 7)
}
