package engine

// Weights holds the heuristic scoring constants. They are hand-tuned:
// changing them changes which candidates the search explores, and
// therefore which seeds solve. Treat them as configuration, not as
// invariants to improve.
type Weights struct {
	SingleCellPenalty int `json:"single_cell_penalty"` // per 1x1 piece used
	DominoPenalty     int `json:"domino_penalty"`      // per 2x1 piece used
	TriominoPenalty   int `json:"triomino_penalty"`    // per 3-cell piece used
	EfficientReward   int `json:"efficient_reward"`    // per placement with >= 4 cells
	LargePieceBonus   int `json:"large_piece_bonus"`   // extra per placement with >= 6 cells
	TrappedPenalty    int `json:"trapped_penalty"`     // per trapped remaining cell
	ProgressReward    int `json:"progress_reward"`     // per placement made
}

// DefaultWeights returns the constants shipped with the game.
func DefaultWeights() Weights {
	return Weights{
		SingleCellPenalty: 15,
		DominoPenalty:     8,
		TriominoPenalty:   4,
		EfficientReward:   10,
		LargePieceBonus:   5,
		TrappedPenalty:    12,
		ProgressReward:    3,
	}
}

// score rates a frontier node after a tentative placement. Higher is
// better. The heuristic is non-admissible: it biases the search, it
// does not certify optimality or completeness.
func (w Weights) score(n *node, b bounds) int {
	s := 0

	// Discourage burning the small filler pieces early.
	s -= w.SingleCellPenalty * n.smallCounts[1]
	s -= w.DominoPenalty * n.smallCounts[2]
	s -= w.TriominoPenalty * n.smallCounts[3]

	// Reward efficient pieces, cumulatively over the whole line.
	for _, p := range n.placements {
		if cells := p.Shape.CellCount(); cells >= 4 {
			s += w.EfficientReward
			if cells >= 6 {
				s += w.LargePieceBonus
			}
		}
	}

	// Penalize fragments that only a filler piece can still cover.
	s -= w.TrappedPenalty * n.grid.trappedCells(b)

	// Monotonic progress reward.
	s += w.ProgressReward * len(n.placements)

	return s
}
