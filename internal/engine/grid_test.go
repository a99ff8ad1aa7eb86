package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilefall/tilefall/internal/model"
)

func TestBuildGrid_DenseAndBounds(t *testing.T) {
	cells := map[string]model.Block{
		"R2C3":  {Filled: true, Color: model.ColorRed},
		"R5C9":  {Filled: true, Color: model.ColorBlue},
		"R4C1":  {Filled: true, Color: model.ColorGreen},
		"R10C2": {Filled: false, Color: model.ColorRed}, // not a target
	}

	g, b := buildGrid(cells)

	assert.Equal(t, 3, g.filled)
	assert.True(t, g.cells[1][2].Filled)
	assert.Equal(t, model.ColorRed, g.cells[1][2].Color)
	assert.False(t, g.cells[9][1].Filled)

	assert.Equal(t, 1, b.minRow)
	assert.Equal(t, 4, b.maxRow)
	assert.Equal(t, 0, b.minCol)
	assert.Equal(t, 8, b.maxCol)
}

func TestBuildGrid_SkipsMalformedAndOutOfRange(t *testing.T) {
	cells := map[string]model.Block{
		"R1C1":   {Filled: true, Color: model.ColorRed},
		"bogus":  {Filled: true, Color: model.ColorRed},
		"R0C5":   {Filled: true, Color: model.ColorRed},
		"R5C0":   {Filled: true, Color: model.ColorRed},
		"R21C1":  {Filled: true, Color: model.ColorRed},
		"R1C21":  {Filled: true, Color: model.ColorRed},
		"R-2C-3": {Filled: true, Color: model.ColorRed},
	}

	g, b := buildGrid(cells)

	assert.Equal(t, 1, g.filled)
	assert.Equal(t, 0, b.minRow)
	assert.Equal(t, 0, b.maxRow)
	assert.Equal(t, 0, b.minCol)
	assert.Equal(t, 0, b.maxCol)
}

func TestFirstFilled_RowMajor(t *testing.T) {
	g, b := buildGrid(map[string]model.Block{
		"R3C7": {Filled: true, Color: model.ColorRed},
		"R3C2": {Filled: true, Color: model.ColorRed},
		"R5C1": {Filled: true, Color: model.ColorRed},
	})

	pos, ok := g.firstFilled(b)
	require.True(t, ok)
	assert.Equal(t, model.Offset{Row: 2, Col: 1}, pos)
}

func TestFirstFilled_EmptyGrid(t *testing.T) {
	g, b := buildGrid(map[string]model.Block{
		"R3C3": {Filled: true, Color: model.ColorRed},
	})
	g.cells[2][2] = model.Block{}

	_, ok := g.firstFilled(b)
	assert.False(t, ok)
}

func TestTrappedCells(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want int
	}{
		{"isolated cell", []string{"R5C5"}, 1},
		{"domino, both ends trapped", []string{"R5C5", "R5C6"}, 2},
		{"square, nothing trapped", []string{"R5C5", "R5C6", "R6C5", "R6C6"}, 0},
		{"L tromino, two ends trapped", []string{"R5C5", "R6C5", "R6C6"}, 2},
		{"line of three, ends trapped", []string{"R5C5", "R5C6", "R5C7"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cells := map[string]model.Block{}
			for _, k := range tt.keys {
				cells[k] = model.Block{Filled: true, Color: model.ColorRed}
			}
			g, b := buildGrid(cells)
			assert.Equal(t, tt.want, g.trappedCells(b))
		})
	}
}

func TestTrappedCells_BoardCorner(t *testing.T) {
	// Corner cells must not read outside the array.
	g, b := buildGrid(map[string]model.Block{
		"R1C1":   {Filled: true, Color: model.ColorRed},
		"R20C20": {Filled: true, Color: model.ColorRed},
	})
	assert.Equal(t, 2, g.trappedCells(b))
}
