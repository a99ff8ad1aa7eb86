package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilefall/tilefall/internal/engine"
	"github.com/tilefall/tilefall/internal/model"
)

// buildSolvedChallenge produces a realistic challenge and its solution
// by running the actual solver.
func buildSolvedChallenge(t *testing.T) (model.Challenge, model.Solution) {
	t.Helper()

	ch := model.NewChallenge("2026-08-24", 20260824)
	colors := []model.Color{model.ColorRed, model.ColorBlue, model.ColorGreen, model.ColorYellow}
	i := 0
	for r := 4; r <= 7; r++ {
		for c := 6; c <= 9; c++ {
			ch.Cells[model.CellKey(r, c)] = model.Block{Filled: true, Color: colors[i%len(colors)]}
			i++
		}
	}

	sol, err := engine.New(engine.DefaultConfig()).Solve(ch.Cells, ch.Seed)
	require.NoError(t, err)
	return ch, sol
}

func TestExportPDF_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solution.pdf")

	ch, sol := buildSolvedChallenge(t)
	require.NoError(t, ExportPDF(path, ch, sol))

	info, err := os.Stat(path)
	require.NoError(t, err, "PDF file was not created")
	// Two pages plus an embedded QR PNG should be a few KB at least.
	assert.Greater(t, info.Size(), int64(1000))
}

func TestExportPDF_EmptySolution(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")

	ch := model.NewChallenge("empty", 1)
	err := ExportPDF(path, ch, model.Solution{Seed: 1})
	assert.Error(t, err)
}

func TestPieceUsage_SortedByCount(t *testing.T) {
	sol := model.Solution{Placements: []model.Placement{
		{Template: "O"}, {Template: "1x1"}, {Template: "O"}, {Template: "O"}, {Template: "1x1"},
	}}

	usage := pieceUsage(sol)
	require.Len(t, usage, 2)
	assert.Equal(t, templateUsage{template: "O", count: 3}, usage[0])
	assert.Equal(t, templateUsage{template: "1x1", count: 2}, usage[1])
}

func TestBoardExtent(t *testing.T) {
	_, sol := buildSolvedChallenge(t)
	minRow, minCol, maxRow, maxCol := boardExtent(sol)
	assert.Equal(t, 4, minRow)
	assert.Equal(t, 6, minCol)
	assert.Equal(t, 7, maxRow)
	assert.Equal(t, 9, maxCol)
}
