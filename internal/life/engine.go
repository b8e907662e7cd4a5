package life

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/framelife/internal/core"
)

// Engine steps boards and framebuffers, optionally splitting each generation
// into horizontal bands computed on separate goroutines. Every band reads the
// same immutable snapshot and writes disjoint rows, so the result is identical
// to the sequential step.
type Engine struct {
	workers int
}

// NewEngine creates an engine that uses up to workers goroutines per step.
// Values below 2 step on the calling goroutine.
func NewEngine(workers int) *Engine {
	if workers < 1 {
		workers = 1
	}
	return &Engine{workers: workers}
}

// Workers returns the configured band count.
func (e *Engine) Workers() int {
	return e.workers
}

// Step advances b one generation. It returns ctx.Err() if the context is
// cancelled before every band has started, in which case b is unchanged.
func (e *Engine) Step(ctx context.Context, b *Board) error {
	if err := e.run(ctx, b.height, b.stepRows); err != nil {
		return err
	}
	b.swap()
	return nil
}

// StepFramebuffer advances fb one generation in color mode.
// See the package-level StepFramebuffer for the rule.
func (e *Engine) StepFramebuffer(ctx context.Context, fb *core.Framebuffer) error {
	snapshot := fb.Pixels()
	next := make([]core.Color, len(snapshot))
	err := e.run(ctx, fb.Height(), func(y0, y1 int) {
		stepColorRows(snapshot, next, fb.Width(), y0, y1)
	})
	if err != nil {
		return err
	}
	return fb.Replace(next)
}

// run calls rows over [0, height) split into at most e.workers contiguous bands.
func (e *Engine) run(ctx context.Context, height int, rows func(y0, y1 int)) error {
	if e.workers < 2 || height < 2 {
		if err := ctx.Err(); err != nil {
			return err
		}
		rows(0, height)
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, band := range splitRows(height, e.workers) {
		band := band
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rows(band[0], band[1])
			return nil
		})
	}
	return g.Wait()
}

// splitRows divides [0, height) into n near-equal bands, larger bands first.
func splitRows(height, n int) [][2]int {
	if n > height {
		n = height
	}
	bands := make([][2]int, 0, n)
	size, extra := height/n, height%n
	y := 0
	for i := 0; i < n; i++ {
		h := size
		if i < extra {
			h++
		}
		bands = append(bands, [2]int{y, y + h})
		y += h
	}
	return bands
}
