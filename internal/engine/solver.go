// Package engine implements the daily-challenge board solver: a
// best-first search that covers a target pattern of colored cells with
// piece placements, reproducibly for a given seed.
package engine

import (
	"errors"
	"sort"

	"github.com/tilefall/tilefall/internal/model"
	"github.com/tilefall/tilefall/internal/pieces"
	"github.com/tilefall/tilefall/internal/rng"
)

// ErrNoSolution is returned when the step budget runs out before a
// full cover is found. The search is heuristic, so this can happen on
// solvable boards; callers must degrade gracefully.
var ErrNoSolution = errors.New("no solution found")

// Config bounds the search. The caps shape which candidates get
// explored, so they are part of the determinism contract: the same
// config, cells and seed always produce the same outcome.
type Config struct {
	StepBudget   int `json:"step_budget"`   // top-level expansions before giving up
	BranchLimit  int `json:"branch_limit"`  // candidates kept per expansion, after the seeded shuffle
	FrontierMax  int `json:"frontier_max"`  // frontier size that triggers truncation
	FrontierKeep int `json:"frontier_keep"` // nodes kept when truncating
}

// DefaultConfig returns the budgets the game ships with.
func DefaultConfig() Config {
	return Config{
		StepBudget:   50000,
		BranchLimit:  30,
		FrontierMax:  1000,
		FrontierKeep: 500,
	}
}

// Solver runs the best-first placement search. It is stateless between
// calls and safe for concurrent use; the shared piece catalog is
// read-only.
type Solver struct {
	cfg     Config
	weights Weights
	catalog []model.PieceVariant
}

func New(cfg Config) *Solver {
	return NewWithWeights(cfg, DefaultWeights())
}

func NewWithWeights(cfg Config, w Weights) *Solver {
	return &Solver{
		cfg:     cfg,
		weights: w,
		catalog: pieces.Catalog(),
	}
}

// node is one search-frontier entry. Nodes are never mutated in place;
// expansion copies the parent state into each child.
type node struct {
	grid        grid
	placements  []model.Placement
	score       int
	smallCounts [4]int // pieces used so far, bucketed by cell count 1..3
}

// Solve computes a placement sequence that exactly covers every filled
// cell in the challenge map. The same cells and seed always yield the
// same solution, including placement order. Returns ErrNoSolution when
// the step budget is exhausted first.
func (s *Solver) Solve(cells map[string]model.Block, seed int64) (model.Solution, error) {
	g, b := buildGrid(cells)
	if g.filled == 0 {
		engLog.Debug().Int64("seed", seed).Msg("empty target, trivial solution")
		return model.Solution{Placements: []model.Placement{}, Seed: seed}, nil
	}

	engLog.Debug().
		Int64("seed", seed).
		Int("targets", g.filled).
		Msg("starting solve")

	r := rng.New(seed)
	frontier := []*node{{grid: g}}

	for step := 0; step < s.cfg.StepBudget; step++ {
		if len(frontier) == 0 {
			break
		}

		sortByScore(frontier)
		best := frontier[0]
		frontier = frontier[1:]

		target, ok := best.grid.firstFilled(b)
		if !ok {
			placements := rng.Shuffle(r, best.placements)
			engLog.Debug().
				Int64("seed", seed).
				Int("steps", step+1).
				Int("placements", len(placements)).
				Msg("solved")
			return model.Solution{Placements: placements, Seed: seed, Steps: step + 1}, nil
		}

		candidates := s.candidates(best, target)
		candidates = rng.Shuffle(r, candidates)
		if len(candidates) > s.cfg.BranchLimit {
			candidates = candidates[:s.cfg.BranchLimit]
		}

		for _, placement := range candidates {
			frontier = append(frontier, s.expand(best, placement, b))
		}

		if len(frontier) > s.cfg.FrontierMax {
			sortByScore(frontier)
			frontier = frontier[:s.cfg.FrontierKeep]
		}
	}

	engLog.Debug().Int64("seed", seed).Int("budget", s.cfg.StepBudget).Msg("step budget exhausted")
	return model.Solution{Seed: seed}, ErrNoSolution
}

// sortByScore orders the frontier by descending score. The sort is
// stable so tied nodes keep their prior relative order, which the
// determinism contract depends on.
func sortByScore(frontier []*node) {
	sort.SliceStable(frontier, func(i, j int) bool {
		return frontier[i].score > frontier[j].score
	})
}

// candidates enumerates every piece variant and filled offset anchored
// so that the variant covers the target cell. A candidate survives
// only if every one of its filled cells lands on a still-filled grid
// cell; one disqualifying cell rejects the whole candidate. Kept
// candidates are colored from the cells they cover.
func (s *Solver) candidates(n *node, target model.Offset) []model.Placement {
	var out []model.Placement
	for _, variant := range s.catalog {
		offsets := variant.Shape.FilledOffsets()
		for _, anchorOff := range offsets {
			anchorRow := target.Row - anchorOff.Row
			anchorCol := target.Col - anchorOff.Col

			shape := variant.Shape
			valid := true
			for _, off := range offsets {
				r := anchorRow + off.Row
				c := anchorCol + off.Col
				if r < 0 || r >= model.BoardSize || c < 0 || c >= model.BoardSize || !n.grid.cells[r][c].Filled {
					valid = false
					break
				}
				shape[off.Row][off.Col].Color = n.grid.cells[r][c].Color
			}
			if !valid {
				continue
			}

			out = append(out, model.Placement{
				Shape:    shape,
				Anchor:   model.Anchor{Row: anchorRow + 1, Col: anchorCol + 1},
				Template: variant.Template,
			})
		}
	}
	return out
}

// expand builds the child node for one tentative placement: the parent
// grid with the covered cells cleared, the extended placement list,
// updated small-piece counters and the child's heuristic score.
func (s *Solver) expand(parent *node, placement model.Placement, b bounds) *node {
	child := &node{
		grid:        parent.grid,
		smallCounts: parent.smallCounts,
	}

	child.placements = make([]model.Placement, len(parent.placements)+1)
	copy(child.placements, parent.placements)
	child.placements[len(parent.placements)] = placement

	for _, cell := range placement.CoveredCells() {
		child.grid.cells[cell.Row-1][cell.Col-1] = model.Block{}
		child.grid.filled--
	}

	if cells := placement.Shape.CellCount(); cells <= 3 {
		child.smallCounts[cells]++
	}

	child.score = s.weights.score(child, b)
	return child
}
