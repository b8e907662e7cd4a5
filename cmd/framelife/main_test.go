package main

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/framelife/internal/bitmap"
	"github.com/vovakirdan/framelife/internal/core"
	"github.com/vovakirdan/framelife/internal/life"
	"github.com/vovakirdan/framelife/internal/patterns"
	"github.com/vovakirdan/framelife/internal/scene"
	"github.com/vovakirdan/framelife/internal/storage"
)

func newTestSim(t *testing.T) *life.Simulation {
	t.Helper()
	sim, err := life.NewSimulation(16, 16, life.DefaultPalette(), life.NewEngine(2))
	require.NoError(t, err)
	glider, err := patterns.Get("glider")
	require.NoError(t, err)
	sim.Place(glider, 2, 2)
	return sim
}

func frames(t *testing.T, dir string) []string {
	t.Helper()
	names, err := filepath.Glob(filepath.Join(dir, "frame_*.bmp"))
	require.NoError(t, err)
	for i, n := range names {
		names[i] = filepath.Base(n)
	}
	return names
}

func TestHeadlessRunSnapshots(t *testing.T) {
	dir := t.TempDir()
	h := &headlessRun{sim: newTestSim(t), every: 2, outDir: dir, logger: log.New(io.Discard)}

	done, err := h.run(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 5, done)
	assert.Equal(t, []string{
		"frame_000000.bmp",
		"frame_000002.bmp",
		"frame_000004.bmp",
		"frame_000005.bmp",
	}, frames(t, dir))

	fb, err := bitmap.Load(filepath.Join(dir, "frame_000004.bmp"))
	require.NoError(t, err)
	assert.Equal(t, 16, fb.Width())
}

func TestHeadlessRunFinalFrameOnly(t *testing.T) {
	dir := t.TempDir()
	h := &headlessRun{sim: newTestSim(t), every: 0, outDir: dir, logger: log.New(io.Discard)}

	done, err := h.run(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 3, done)
	assert.Equal(t, []string{"frame_000003.bmp"}, frames(t, dir))
}

func TestHeadlessRunCancelledKeepsLastFrame(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	h := &headlessRun{sim: newTestSim(t), every: 10, outDir: dir, logger: log.New(io.Discard)}
	done, err := h.run(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, done)
	assert.Equal(t, []string{"frame_000000.bmp"}, frames(t, dir))
}

func TestHeadlessRunRecordsSnapshots(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	id, err := store.CreateRun(ctx, storage.Run{Source: "render", Width: 16, Height: 16})
	require.NoError(t, err)

	h := &headlessRun{sim: newTestSim(t), store: store, runID: id, every: 4, logger: log.New(io.Discard)}
	_, err = h.run(ctx, 4)
	require.NoError(t, err)

	snaps, err := store.Snapshots(ctx, id)
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	assert.Equal(t, 0, snaps[0].Generation)
	assert.Equal(t, 4, snaps[1].Generation)
	assert.Equal(t, 5, snaps[1].Population)
	assert.Equal(t, bitmap.PixelOffset+16*16*3, snaps[1].Size)
}

func TestHeadlessRunRecordsAfterCancel(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer store.Close()

	id, err := store.CreateRun(context.Background(), storage.Run{Source: "render", Width: 16, Height: 16})
	require.NoError(t, err)
	h := &headlessRun{sim: newTestSim(t), store: store, runID: id, every: 3, logger: log.New(io.Discard)}

	// Interrupted after one generation was computed
	require.NoError(t, h.sim.Tick(context.Background()))
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, h.snapshot(cancelled))

	done, err := h.run(cancelled, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, done)

	snaps, err := store.Snapshots(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, snaps, 1, "the frame is stored despite cancellation")
	assert.Equal(t, 1, snaps[0].Generation)
	assert.Equal(t, h.sim.Population(), snaps[0].Population)
}

func TestDrawSceneEvolvesWhitePixels(t *testing.T) {
	s := &scene.Scene{
		Width:      8,
		Height:     8,
		Background: "#000000",
		Color:      "#FFFFFF",
		Shapes: []scene.Shape{
			{Kind: scene.KindLine, Points: [][]float64{{2, 4}, {4, 4}}},
		},
	}

	fb, err := drawScene(context.Background(), s, 1, 2)
	require.NoError(t, err)

	// A horizontal blinker turns vertical
	for y := 3; y <= 5; y++ {
		c, _ := fb.Pixel(3, y)
		assert.Equal(t, core.White, c, "y=%d", y)
	}
	c, _ := fb.Pixel(2, 4)
	assert.NotEqual(t, core.White, c)
}

func TestDrawSceneDemo(t *testing.T) {
	fb, err := drawScene(context.Background(), scene.Demo(100, 100), 0, 1)
	require.NoError(t, err)
	c, ok := fb.Pixel(20, 40)
	require.True(t, ok)
	assert.Equal(t, core.ColorFromHex(0xFFDDDD), c)
}

func TestPatternGrid(t *testing.T) {
	glider, err := patterns.Get("glider")
	require.NoError(t, err)
	assert.Equal(t, ".O.\n..O\nOOO\n", patternGrid(glider))
}

func TestResolveRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	id, err := store.CreateRun(ctx, storage.Run{Source: "run", Width: 4, Height: 4})
	require.NoError(t, err)

	r, err := resolveRun(ctx, store, id)
	require.NoError(t, err)
	assert.Equal(t, id, r.ID)

	r, err = resolveRun(ctx, store, id[:6])
	require.NoError(t, err)
	assert.Equal(t, id, r.ID)

	_, err = resolveRun(ctx, store, "zzzz")
	assert.ErrorIs(t, err, storage.ErrRunNotFound)
}
