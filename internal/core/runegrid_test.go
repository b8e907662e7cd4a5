package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRuneGrid(t *testing.T) {
	g := NewRuneGrid(5, 3, '.')

	assert.Equal(t, 5, g.Width())
	assert.Equal(t, 3, g.Height())
	assert.Equal(t, ".....\n.....\n.....\n", g.String())
}

func TestRuneGridSetGet(t *testing.T) {
	g := NewRuneGrid(10, 10, ' ')

	g.Set(5, 5, 'X')
	assert.Equal(t, 'X', g.Get(5, 5))

	// Out of bounds should be silent
	assert.NotPanics(t, func() {
		g.Set(-1, 0, 'A')
		g.Set(100, 0, 'A')
		g.Set(0, -1, 'A')
		g.Set(0, 100, 'A')
	})

	assert.Equal(t, ' ', g.Get(-1, 0))
	assert.Equal(t, ' ', g.Get(100, 0))
}

func TestRuneGridPlotAndClear(t *testing.T) {
	g := NewRuneGrid(3, 2, '.')
	g.Plot([]Point{P(0, 0), P(2, 1), P(5, 5)}, 'O')

	assert.Equal(t, "O..", g.Row(0))
	assert.Equal(t, "..O", g.Row(1))
	assert.Equal(t, "...", g.Row(7))

	g.Clear()
	assert.Equal(t, "...\n...\n", g.String())
}

func TestRuneGridEmpty(t *testing.T) {
	assert.Empty(t, NewRuneGrid(-1, 0, '.').String())
}
