// Package model defines the shared data types for the Tilefall daily
// challenge: board cells, piece shapes, placements, and challenge files.
package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// BoardSize is the maximum supported board dimension. Challenge cells
// outside the 1..BoardSize range are ignored by every consumer.
const BoardSize = 20

// ShapeSize is the fixed bounding box side for piece shapes.
const ShapeSize = 4

// Color identifies the tile color of a filled cell.
type Color string

const (
	ColorNone   Color = ""
	ColorRed    Color = "red"
	ColorOrange Color = "orange"
	ColorYellow Color = "yellow"
	ColorGreen  Color = "green"
	ColorCyan   Color = "cyan"
	ColorBlue   Color = "blue"
	ColorPurple Color = "purple"
)

// Block is one cell of a piece shape or of a challenge target.
type Block struct {
	Filled bool  `json:"filled"`
	Color  Color `json:"color,omitempty"`
}

// Offset is the position of a filled cell relative to its shape's
// top-left corner.
type Offset struct {
	Row int
	Col int
}

// Shape is the canonical ShapeSize x ShapeSize fill/color grid that
// represents one piece rotation.
type Shape [ShapeSize][ShapeSize]Block

// FilledOffsets returns the offsets of all filled cells in row-major order.
func (s Shape) FilledOffsets() []Offset {
	var offs []Offset
	for r := 0; r < ShapeSize; r++ {
		for c := 0; c < ShapeSize; c++ {
			if s[r][c].Filled {
				offs = append(offs, Offset{Row: r, Col: c})
			}
		}
	}
	return offs
}

// CellCount returns the number of filled cells.
func (s Shape) CellCount() int {
	n := 0
	for r := 0; r < ShapeSize; r++ {
		for c := 0; c < ShapeSize; c++ {
			if s[r][c].Filled {
				n++
			}
		}
	}
	return n
}

// Mask returns the boolean fill mask as a bit set, colors ignored.
// Two rotations of a piece are the same variant iff their masks match.
func (s Shape) Mask() uint16 {
	var m uint16
	for r := 0; r < ShapeSize; r++ {
		for c := 0; c < ShapeSize; c++ {
			if s[r][c].Filled {
				m |= 1 << uint(r*ShapeSize+c)
			}
		}
	}
	return m
}

// RotateCW returns the shape rotated 90 degrees clockwise, with the
// filled cells normalized back to the top-left of the bounding box.
// Normalization keeps symmetric rotations mask-identical so that
// duplicate variants can be discarded.
func (s Shape) RotateCW() Shape {
	var rotated Shape
	for r := 0; r < ShapeSize; r++ {
		for c := 0; c < ShapeSize; c++ {
			if s[r][c].Filled {
				rotated[c][ShapeSize-1-r] = s[r][c]
			}
		}
	}
	return rotated.Normalize()
}

// Normalize shifts the filled cells so the tight bounding box starts at
// row 0, column 0.
func (s Shape) Normalize() Shape {
	minRow, minCol := ShapeSize, ShapeSize
	for r := 0; r < ShapeSize; r++ {
		for c := 0; c < ShapeSize; c++ {
			if s[r][c].Filled {
				if r < minRow {
					minRow = r
				}
				if c < minCol {
					minCol = c
				}
			}
		}
	}
	if minRow == ShapeSize || (minRow == 0 && minCol == 0) {
		return s
	}
	var out Shape
	for r := 0; r < ShapeSize; r++ {
		for c := 0; c < ShapeSize; c++ {
			if s[r][c].Filled {
				out[r-minRow][c-minCol] = s[r][c]
			}
		}
	}
	return out
}

// PieceVariant is one deduplicated rotation of a base piece template.
type PieceVariant struct {
	Shape    Shape
	Template string
}

// Anchor is a 1-indexed board position: the top-left of a placed
// shape's bounding box on the real board.
type Anchor struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Placement is one unit of solver output: a piece shape colored to
// match the target cells it covers, anchored on the board.
type Placement struct {
	Shape    Shape  `json:"shape"`
	Anchor   Anchor `json:"anchor"`
	Template string `json:"template"`
}

// CoveredCells returns the 1-indexed board positions covered by the
// placement's filled cells.
func (p Placement) CoveredCells() []Anchor {
	var cells []Anchor
	for _, off := range p.Shape.FilledOffsets() {
		cells = append(cells, Anchor{Row: p.Anchor.Row + off.Row, Col: p.Anchor.Col + off.Col})
	}
	return cells
}

// Solution is a complete covering of a challenge's target cells.
type Solution struct {
	Placements []Placement `json:"placements"`
	Seed       int64       `json:"seed"`
	Steps      int         `json:"steps"`
}

// Challenge is one daily-challenge board definition. Cells maps
// "R{row}C{col}" keys (1-indexed) to target blocks; only entries with
// Filled set are targets.
type Challenge struct {
	ID    string           `json:"id"`
	Name  string           `json:"name"`
	Seed  int64            `json:"seed"`
	Cells map[string]Block `json:"cells"`
}

func NewChallenge(name string, seed int64) Challenge {
	return Challenge{
		ID:    uuid.New().String()[:8],
		Name:  name,
		Seed:  seed,
		Cells: map[string]Block{},
	}
}

// FilledCount returns the number of target cells.
func (ch Challenge) FilledCount() int {
	n := 0
	for _, b := range ch.Cells {
		if b.Filled {
			n++
		}
	}
	return n
}

// CellKey formats a 1-indexed board position as a challenge cell key.
func CellKey(row, col int) string {
	return fmt.Sprintf("R%dC%d", row, col)
}

// ParseCellKey parses an "R{row}C{col}" key. Returns ok=false for
// malformed keys; callers skip those silently per the lenient-parsing
// policy, they are never an error.
func ParseCellKey(key string) (row, col int, ok bool) {
	if len(key) < 4 || key[0] != 'R' {
		return 0, 0, false
	}
	rest := key[1:]
	sep := strings.IndexByte(rest, 'C')
	if sep <= 0 {
		return 0, 0, false
	}
	row, err := strconv.Atoi(rest[:sep])
	if err != nil {
		return 0, 0, false
	}
	col, err = strconv.Atoi(rest[sep+1:])
	if err != nil {
		return 0, 0, false
	}
	return row, col, true
}
