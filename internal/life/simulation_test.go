package life

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/framelife/internal/core"
	"github.com/vovakirdan/framelife/internal/patterns"
)

func TestSimulationStartsBlank(t *testing.T) {
	pal := Palette{Alive: core.White, Dead: core.ColorFromHex(0x333355)}
	sim, err := NewSimulation(6, 4, pal, nil)
	require.NoError(t, err)

	assert.Zero(t, sim.Population())
	assert.Equal(t, pal.Dead, sim.Framebuffer().Background())
	got, _ := sim.Framebuffer().Pixel(5, 3)
	assert.Equal(t, pal.Dead, got)
}

func TestSimulationTickRepaints(t *testing.T) {
	sim, err := NewSimulation(5, 5, DefaultPalette(), NewEngine(2))
	require.NoError(t, err)

	blinker, err := patterns.Get("blinker")
	require.NoError(t, err)
	sim.Place(blinker, 1, 2)
	assert.Equal(t, 3, sim.Population())

	require.NoError(t, sim.Tick(context.Background()))
	assert.Equal(t, uint64(1), sim.Generation())

	top, _ := sim.Framebuffer().Pixel(2, 1)
	left, _ := sim.Framebuffer().Pixel(1, 2)
	assert.Equal(t, core.White, top)
	assert.Equal(t, core.Black, left)
}

func TestSimulationSeedDeterministic(t *testing.T) {
	a, err := NewSimulation(40, 30, DefaultPalette(), nil)
	require.NoError(t, err)
	b, err := NewSimulation(40, 30, DefaultPalette(), nil)
	require.NoError(t, err)

	pa := a.Seed(42, 10, nil)
	pb := b.Seed(42, 10, nil)

	assert.Len(t, pa, 10)
	assert.Equal(t, pa, pb)
	assert.True(t, a.Board().Equal(b.Board()))
	assert.True(t, a.Framebuffer().Equal(b.Framebuffer()))
	assert.Positive(t, a.Population())
}

func TestSimulationToggleAndClear(t *testing.T) {
	sim, err := NewSimulation(3, 3, DefaultPalette(), nil)
	require.NoError(t, err)

	sim.Toggle(1, 1)
	assert.True(t, sim.Board().Alive(1, 1))
	sim.Toggle(1, 1)
	assert.False(t, sim.Board().Alive(1, 1))

	sim.Toggle(0, 0)
	sim.Clear()
	assert.Zero(t, sim.Population())
}

func TestSimulationLoadCanvas(t *testing.T) {
	src := core.MustFramebuffer(10, 10)
	src.SetPixel(1, 1, core.White)
	src.SetPixel(2, 1, core.NewColor(255, 0, 0))
	src.SetPixel(8, 8, core.White) // outside the 5x5 board

	sim, err := NewSimulation(5, 5, DefaultPalette(), nil)
	require.NoError(t, err)
	sim.Toggle(4, 4)

	sim.LoadCanvas(src)

	assert.Equal(t, 1, sim.Population())
	assert.True(t, sim.Board().Alive(1, 1))
	assert.Zero(t, sim.Generation())
}
