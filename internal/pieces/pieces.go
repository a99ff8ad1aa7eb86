// Package pieces holds the immutable catalog of piece shapes the
// solver can place: the seven classic tetromino templates plus the
// supplemental small pieces the daily challenge uses.
package pieces

import (
	"sync"

	"github.com/tilefall/tilefall/internal/model"
)

// template is a base piece in its canonical orientation. Rows use 'x'
// for filled cells; rows may be shorter than the shape box.
type template struct {
	name  string
	color model.Color
	rows  []string
}

// The template colors are cosmetic defaults; placed pieces always take
// the color of the target cells they cover.
var templates = []template{
	{name: "I", color: model.ColorCyan, rows: []string{"xxxx"}},
	{name: "O", color: model.ColorYellow, rows: []string{"xx", "xx"}},
	{name: "T", color: model.ColorPurple, rows: []string{"xxx", ".x."}},
	{name: "S", color: model.ColorGreen, rows: []string{".xx", "xx."}},
	{name: "Z", color: model.ColorRed, rows: []string{"xx.", ".xx"}},
	{name: "J", color: model.ColorBlue, rows: []string{".x", ".x", "xx"}},
	{name: "L", color: model.ColorOrange, rows: []string{"x.", "x.", "xx"}},
	{name: "3x3", color: model.ColorGreen, rows: []string{"xxx", "xxx", "xxx"}},
	{name: "3x2", color: model.ColorBlue, rows: []string{"xxx", "xxx"}},
	{name: "3x1", color: model.ColorOrange, rows: []string{"xxx"}},
	{name: "2x1", color: model.ColorYellow, rows: []string{"xx"}},
	{name: "1x1", color: model.ColorPurple, rows: []string{"x"}},
	{name: "evenL", color: model.ColorCyan, rows: []string{"x..", "x..", "xxx"}},
}

var (
	catalogOnce sync.Once
	catalog     []model.PieceVariant
)

// Catalog returns every distinct rotation of the template set. The
// slice is built on first use and shared read-only across all solve
// calls; callers must not modify it.
func Catalog() []model.PieceVariant {
	catalogOnce.Do(func() {
		catalog = buildCatalog()
	})
	return catalog
}

func buildCatalog() []model.PieceVariant {
	var variants []model.PieceVariant
	for _, tpl := range templates {
		shape := parseShape(tpl.rows, tpl.color).Normalize()
		seen := map[uint16]bool{}
		for i := 0; i < 4; i++ {
			if !seen[shape.Mask()] {
				seen[shape.Mask()] = true
				variants = append(variants, model.PieceVariant{Shape: shape, Template: tpl.name})
			}
			shape = shape.RotateCW()
		}
	}
	return variants
}

func parseShape(rows []string, color model.Color) model.Shape {
	var s model.Shape
	for r, row := range rows {
		for c, ch := range row {
			if ch == 'x' {
				s[r][c] = model.Block{Filled: true, Color: color}
			}
		}
	}
	return s
}
