package patterns

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/framelife/internal/core"
)

// cellGrid is a minimal Grid for placement tests.
type cellGrid struct {
	w, h  int
	alive map[core.Point]bool
}

func newCellGrid(w, h int) *cellGrid {
	return &cellGrid{w: w, h: h, alive: make(map[core.Point]bool)}
}

func (g *cellGrid) Width() int  { return g.w }
func (g *cellGrid) Height() int { return g.h }
func (g *cellGrid) Set(x, y int, alive bool) {
	if x < 0 || x >= g.w || y < 0 || y >= g.h {
		return
	}
	g.alive[core.P(x, y)] = alive
}

func TestBuiltinPatternsRegistered(t *testing.T) {
	names := []string{
		"block", "beehive", "loaf", "boat", "tub",
		"blinker", "toad", "beacon", "pulsar", "pentadecathlon",
		"glider", "lwss", "mwss", "hwss",
	}
	for _, name := range names {
		assert.True(t, Exists(name), "pattern %q should be registered", name)
	}
}

func TestListSorted(t *testing.T) {
	list := List()
	require.GreaterOrEqual(t, len(list), 14)
	for i := 1; i < len(list); i++ {
		assert.Less(t, list[i-1].Name, list[i].Name)
	}
}

func TestGetUnknown(t *testing.T) {
	_, err := Get("no-such-shape")
	assert.ErrorIs(t, err, ErrUnknownPattern)
}

func TestBuiltinCellCounts(t *testing.T) {
	tests := []struct {
		name  string
		cells int
		w, h  int
	}{
		{"block", 4, 2, 2},
		{"blinker", 3, 3, 1},
		{"glider", 5, 3, 3},
		{"pulsar", 48, 13, 13},
		{"pentadecathlon", 20, 5, 8},
		{"hwss", 16, 7, 4},
	}
	for _, tt := range tests {
		p, err := Get(tt.name)
		require.NoError(t, err)
		assert.Len(t, p.Cells, tt.cells, tt.name)
		b := p.Bounds()
		assert.Equal(t, tt.w, b.W, "%s width", tt.name)
		assert.Equal(t, tt.h, b.H, "%s height", tt.name)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	assert.Panics(t, func() {
		Register(Pattern{Name: "glider", Cells: []core.Point{{}}})
	})
	assert.Panics(t, func() {
		Register(Pattern{Cells: []core.Point{{}}})
	})
}

func TestSelect(t *testing.T) {
	all, err := Select(nil)
	require.NoError(t, err)
	assert.Equal(t, List(), all)

	some, err := Select([]string{"glider", "block"})
	require.NoError(t, err)
	require.Len(t, some, 2)
	assert.Equal(t, "glider", some[0].Name)

	_, err = Select([]string{"glider", "nope"})
	assert.ErrorIs(t, err, ErrUnknownPattern)
}

func TestPlaceClips(t *testing.T) {
	g := newCellGrid(3, 3)
	glider, err := Get("glider")
	require.NoError(t, err)

	Place(g, glider, 1, 1)

	assert.True(t, g.alive[core.P(2, 1)])
	assert.True(t, g.alive[core.P(2, 2)])
	assert.Len(t, g.alive, 2, "cells beyond the grid are dropped")
}

func TestOnCanvas(t *testing.T) {
	fb := core.MustFramebuffer(4, 4)
	dead := core.ColorFromHex(0x333355)
	fb.Fill(dead)
	block, err := Get("block")
	require.NoError(t, err)

	Place(OnCanvas(fb, core.White, dead), block, 2, 2)

	got, _ := fb.Pixel(3, 3)
	assert.Equal(t, core.White, got)
	got, _ = fb.Pixel(1, 1)
	assert.Equal(t, dead, got)
}

func TestSeederDeterministic(t *testing.T) {
	a, b := newCellGrid(100, 100), newCellGrid(100, 100)
	pa := NewSeeder(7, nil).Scatter(a, 10)
	pb := NewSeeder(7, nil).Scatter(b, 10)

	require.Len(t, pa, 10)
	assert.Equal(t, pa, pb)
	assert.Equal(t, a.alive, b.alive)
	for _, p := range pa {
		assert.GreaterOrEqual(t, p.X, 0)
		assert.Less(t, p.X, 97)
		assert.GreaterOrEqual(t, p.Y, 0)
		assert.Less(t, p.Y, 97)
	}
}

func TestSeederRestrictedSet(t *testing.T) {
	block, err := Get("block")
	require.NoError(t, err)
	placed := NewSeeder(1, []Pattern{block}).Scatter(newCellGrid(20, 20), 5)
	for _, p := range placed {
		assert.Equal(t, "block", p.Pattern)
	}
}

func TestSeederTinyGrid(t *testing.T) {
	g := newCellGrid(3, 10)
	assert.Nil(t, NewSeeder(1, nil).Scatter(g, 4))
	assert.Empty(t, g.alive)
}

func TestParseRowsAndCells(t *testing.T) {
	p, err := Parse([]byte(`
name: diehard-ish
rows:
  - "......O."
  - "OO......"
cells:
  - [7, 2]
`))
	require.NoError(t, err)
	assert.Equal(t, "diehard-ish", p.Title)
	assert.Equal(t, []core.Point{{X: 6, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 7, Y: 2}}, p.Cells)

	// Multi-byte filler characters count as one column each
	p, err = Parse([]byte("name: dotted\nrows: [\"··O\", \"O·\"]\n"))
	require.NoError(t, err)
	assert.Equal(t, []core.Point{{X: 2, Y: 0}, {X: 0, Y: 1}}, p.Cells)
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"no name":  "rows: [\"OO\"]",
		"no cells": "name: empty\nrows: [\"..\"]",
		"bad pair": "name: bad\ncells: [[1]]",
		"negative": "name: neg\ncells: [[-1, 0]]",
		"not yaml": "name: [unterminated",
	}
	for name, doc := range tests {
		_, err := Parse([]byte(doc))
		assert.Error(t, err, name)
	}
}

func TestRegisterDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"),
		[]byte("name: test-dir-a\nrows: [\"OOO\"]\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "b.yml"),
		[]byte("name: test-dir-b\ncells: [[0, 0], [1, 1]]\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("ignored"), 0o644))

	n, err := RegisterDir(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.True(t, Exists("test-dir-a"))
	assert.True(t, Exists("test-dir-b"))

	_, err = RegisterDir(dir)
	assert.Error(t, err, "loading the same names twice must fail")
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadBundledPatterns(t *testing.T) {
	loaded, err := LoadDir(filepath.Join("..", "..", "configs", "patterns"))
	require.NoError(t, err)

	counts := make(map[string]int)
	for _, p := range loaded {
		counts[p.Name] = len(p.Cells)
	}
	assert.Equal(t, map[string]int{"acorn": 7, "diehard": 7, "r-pentomino": 5}, counts)
}
