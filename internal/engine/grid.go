package engine

import "github.com/tilefall/tilefall/internal/model"

// grid is a dense snapshot of the remaining target cells. Fixed-size
// value arrays keep child snapshots a plain struct copy.
type grid struct {
	cells  [model.BoardSize][model.BoardSize]model.Block
	filled int
}

// bounds is the tight bounding box over the originally filled cells,
// 0-indexed and inclusive. Every grid scan stays inside it.
type bounds struct {
	minRow, minCol int
	maxRow, maxCol int
}

// buildGrid converts a sparse challenge cell map into a dense grid and
// its bounding box. Malformed keys and out-of-range coordinates are
// skipped silently; only entries with Filled set count as targets.
func buildGrid(cells map[string]model.Block) (grid, bounds) {
	var g grid
	b := bounds{minRow: model.BoardSize, minCol: model.BoardSize, maxRow: -1, maxCol: -1}

	for key, block := range cells {
		if !block.Filled {
			continue
		}
		row, col, ok := model.ParseCellKey(key)
		if !ok {
			continue
		}
		if row < 1 || row > model.BoardSize || col < 1 || col > model.BoardSize {
			continue
		}
		r, c := row-1, col-1
		if !g.cells[r][c].Filled {
			g.filled++
		}
		g.cells[r][c] = block

		if r < b.minRow {
			b.minRow = r
		}
		if r > b.maxRow {
			b.maxRow = r
		}
		if c < b.minCol {
			b.minCol = c
		}
		if c > b.maxCol {
			b.maxCol = c
		}
	}
	return g, b
}

// firstFilled returns the first still-filled cell in row-major order
// within the bounding box, or ok=false when the grid is fully covered.
func (g *grid) firstFilled(b bounds) (model.Offset, bool) {
	for r := b.minRow; r <= b.maxRow; r++ {
		for c := b.minCol; c <= b.maxCol; c++ {
			if g.cells[r][c].Filled {
				return model.Offset{Row: r, Col: c}, true
			}
		}
	}
	return model.Offset{}, false
}

// trappedCells counts still-filled cells with at most one filled
// 4-directional neighbor. Such fragments are hard to cover without
// resorting to the small filler pieces.
func (g *grid) trappedCells(b bounds) int {
	trapped := 0
	for r := b.minRow; r <= b.maxRow; r++ {
		for c := b.minCol; c <= b.maxCol; c++ {
			if !g.cells[r][c].Filled {
				continue
			}
			neighbors := 0
			if r > 0 && g.cells[r-1][c].Filled {
				neighbors++
			}
			if r < model.BoardSize-1 && g.cells[r+1][c].Filled {
				neighbors++
			}
			if c > 0 && g.cells[r][c-1].Filled {
				neighbors++
			}
			if c < model.BoardSize-1 && g.cells[r][c+1].Filled {
				neighbors++
			}
			if neighbors <= 1 {
				trapped++
			}
		}
	}
	return trapped
}
