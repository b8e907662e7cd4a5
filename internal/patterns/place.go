package patterns

import (
	"math/rand"

	"github.com/vovakirdan/framelife/internal/core"
	"github.com/vovakirdan/framelife/internal/raster"
)

// Grid is a surface whose cells can be switched on and off by coordinate.
// Set must ignore coordinates outside the grid.
type Grid interface {
	Width() int
	Height() int
	Set(x, y int, alive bool)
}

// Place switches on the cells of p with its top-left corner at (x, y).
// Cells falling outside dst are clipped.
func Place(dst Grid, p Pattern, x, y int) {
	for _, c := range p.Cells {
		at := c.Add(x, y)
		dst.Set(at.X, at.Y, true)
	}
}

type canvasGrid struct {
	raster.Canvas
	alive core.Color
	dead  core.Color
}

func (g canvasGrid) Set(x, y int, alive bool) {
	c := g.dead
	if alive {
		c = g.alive
	}
	g.SetPixel(x, y, c)
}

// OnCanvas adapts a pixel canvas to a Grid that paints live cells in alive
// and dead cells in dead. Use core.White for alive to seed color-mode life.
func OnCanvas(c raster.Canvas, alive, dead core.Color) Grid {
	return canvasGrid{Canvas: c, alive: alive, dead: dead}
}

// Placement records where a pattern was put.
type Placement struct {
	Pattern string
	X, Y    int
}

// Seeder scatters random patterns from a fixed set using a seeded RNG, so
// the same seed always produces the same layout.
type Seeder struct {
	rng      *rand.Rand
	patterns []Pattern
}

// NewSeeder creates a seeder drawing from set, or from the whole catalog
// when set is empty.
func NewSeeder(seed int64, set []Pattern) *Seeder {
	if len(set) == 0 {
		set = List()
	}
	return &Seeder{
		rng:      rand.New(rand.NewSource(seed)),
		patterns: set,
	}
}

// Scatter places count random patterns at random origins in
// [0, width-3) x [0, height-3). Larger patterns may be clipped at the right
// and bottom edges. Grids of three or fewer cells in either dimension are
// left untouched.
func (s *Seeder) Scatter(dst Grid, count int) []Placement {
	maxX, maxY := dst.Width()-3, dst.Height()-3
	if maxX <= 0 || maxY <= 0 || len(s.patterns) == 0 {
		return nil
	}

	placed := make([]Placement, 0, count)
	for i := 0; i < count; i++ {
		x := s.rng.Intn(maxX)
		y := s.rng.Intn(maxY)
		p := s.patterns[s.rng.Intn(len(s.patterns))]
		Place(dst, p, x, y)
		placed = append(placed, Placement{Pattern: p.Name, X: x, Y: y})
	}
	return placed
}
