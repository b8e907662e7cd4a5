// Package core provides the pixel types shared by the drawing, encoding and
// simulation packages. It has no external dependencies (especially no Bubble
// Tea) so everything built on it stays pure and testable.
package core

import "fmt"

// Point is an integer pixel coordinate.
// X increases to the right, Y increases downward.
type Point struct {
	X, Y int
}

// P is a convenience constructor for Point.
func P(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns a new Point offset by (dx, dy).
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// String returns a string representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Vertex is a 3D point as produced by model or scene data.
// Only X and Y matter for rasterization; Z is carried but ignored.
type Vertex struct {
	X, Y, Z float64
}

// V is a convenience constructor for a Vertex on the z=0 plane.
func V(x, y float64) Vertex {
	return Vertex{X: x, Y: y}
}

// Point truncates the vertex toward zero onto the pixel grid.
func (v Vertex) Point() Point {
	return Point{X: int(v.X), Y: int(v.Y)}
}

// Rect represents an axis-aligned box of pixels.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
