package life

import (
	"context"

	"github.com/vovakirdan/framelife/internal/core"
	"github.com/vovakirdan/framelife/internal/patterns"
	"github.com/vovakirdan/framelife/internal/raster"
)

// Palette maps cell states to colors.
type Palette struct {
	Alive core.Color
	Dead  core.Color
}

// DefaultPalette paints live cells white on black.
func DefaultPalette() Palette {
	return Palette{Alive: core.White, Dead: core.Black}
}

// Simulation ties a board to the framebuffer it is displayed on.
// The board is stepped and the framebuffer repainted after every change.
type Simulation struct {
	board   *Board
	fb      *core.Framebuffer
	engine  *Engine
	palette Palette
}

// NewSimulation creates an empty simulation of the given size.
// A nil engine steps sequentially.
func NewSimulation(width, height int, palette Palette, engine *Engine) (*Simulation, error) {
	board, err := NewBoard(width, height)
	if err != nil {
		return nil, err
	}
	fb, err := core.NewFramebuffer(width, height)
	if err != nil {
		return nil, err
	}
	if engine == nil {
		engine = NewEngine(1)
	}
	s := &Simulation{board: board, fb: fb, engine: engine, palette: palette}
	s.Repaint()
	return s, nil
}

func (s *Simulation) Board() *Board                  { return s.board }
func (s *Simulation) Framebuffer() *core.Framebuffer { return s.fb }
func (s *Simulation) Palette() Palette               { return s.palette }
func (s *Simulation) Generation() uint64             { return s.board.Generation() }
func (s *Simulation) Population() int                { return s.board.Population() }

// Tick advances one generation and repaints.
func (s *Simulation) Tick(ctx context.Context) error {
	if err := s.engine.Step(ctx, s.board); err != nil {
		return err
	}
	s.Repaint()
	return nil
}

// Seed clears the board and scatters count random patterns drawn from set
// (the whole catalog when set is empty).
func (s *Simulation) Seed(seed int64, count int, set []patterns.Pattern) []patterns.Placement {
	s.board.Clear()
	placed := patterns.NewSeeder(seed, set).Scatter(s.board, count)
	s.Repaint()
	return placed
}

// LoadCanvas replaces the board with the white pixels of src, which is
// aligned to the top-left corner and clipped to the board.
func (s *Simulation) LoadCanvas(src raster.Canvas) {
	s.board.Clear()
	for y := 0; y < min(src.Height(), s.board.height); y++ {
		for x := 0; x < min(src.Width(), s.board.width); x++ {
			if c, ok := src.Pixel(x, y); ok && c == core.White {
				s.board.Set(x, y, true)
			}
		}
	}
	s.Repaint()
}

// Place stamps p with its top-left corner at (x, y).
func (s *Simulation) Place(p patterns.Pattern, x, y int) {
	patterns.Place(s.board, p, x, y)
	s.Repaint()
}

// Toggle flips a single cell.
func (s *Simulation) Toggle(x, y int) {
	s.board.Set(x, y, !s.board.Alive(x, y))
	s.Repaint()
}

// Clear kills every cell.
func (s *Simulation) Clear() {
	s.board.Clear()
	s.Repaint()
}

// Repaint redraws the framebuffer from the board.
func (s *Simulation) Repaint() {
	s.fb.SetBackground(s.palette.Dead.Hex())
	s.board.Paint(s.fb, s.palette.Alive, s.palette.Dead)
}
