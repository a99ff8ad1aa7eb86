package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tilefall/tilefall/internal/model"
)

// placementWithCells returns a placement whose shape has n filled
// cells, n <= 4.
func placementWithCells(n int) model.Placement {
	var s model.Shape
	for i := 0; i < n; i++ {
		s[0][i] = model.Block{Filled: true, Color: model.ColorRed}
	}
	return model.Placement{Shape: s}
}

func emptyBounds() bounds {
	return bounds{minRow: 0, minCol: 0, maxRow: 0, maxCol: 0}
}

func TestDefaultWeights(t *testing.T) {
	w := DefaultWeights()
	assert.Equal(t, 15, w.SingleCellPenalty)
	assert.Equal(t, 8, w.DominoPenalty)
	assert.Equal(t, 4, w.TriominoPenalty)
	assert.Equal(t, 10, w.EfficientReward)
	assert.Equal(t, 5, w.LargePieceBonus)
	assert.Equal(t, 12, w.TrappedPenalty)
	assert.Equal(t, 3, w.ProgressReward)
}

func TestScore_SmallPiecePenalties(t *testing.T) {
	w := DefaultWeights()

	n := &node{placements: []model.Placement{placementWithCells(1)}}
	n.smallCounts[1] = 1
	// -15 for the 1x1, +3 progress.
	assert.Equal(t, -12, w.score(n, emptyBounds()))

	n = &node{placements: []model.Placement{placementWithCells(2), placementWithCells(3)}}
	n.smallCounts[2] = 1
	n.smallCounts[3] = 1
	// -8 -4, +6 progress.
	assert.Equal(t, -6, w.score(n, emptyBounds()))
}

func TestScore_EfficientPieceRewards(t *testing.T) {
	w := DefaultWeights()

	n := &node{placements: []model.Placement{placementWithCells(4)}}
	// +10 efficient, +3 progress.
	assert.Equal(t, 13, w.score(n, emptyBounds()))

	six := model.Placement{}
	for i := 0; i < 3; i++ {
		six.Shape[0][i] = model.Block{Filled: true}
		six.Shape[1][i] = model.Block{Filled: true}
	}
	n = &node{placements: []model.Placement{six}}
	// +10 efficient, +5 large bonus, +3 progress.
	assert.Equal(t, 18, w.score(n, emptyBounds()))
}

func TestScore_RewardsAccumulateAcrossPlacements(t *testing.T) {
	w := DefaultWeights()

	n := &node{placements: []model.Placement{placementWithCells(4), placementWithCells(4)}}
	// 2 * (+10), 2 * (+3).
	assert.Equal(t, 26, w.score(n, emptyBounds()))
}

func TestScore_TrappedCellPenalty(t *testing.T) {
	w := DefaultWeights()

	g, b := buildGrid(map[string]model.Block{
		"R1C1": {Filled: true, Color: model.ColorRed},
	})
	n := &node{grid: g}
	// One isolated remaining cell, no placements yet.
	assert.Equal(t, -12, w.score(n, b))
}
