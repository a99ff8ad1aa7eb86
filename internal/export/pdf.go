// Package export renders solved challenges into shareable files:
// a printable PDF solution sheet with the board diagram, the placement
// list, and a QR code carrying the challenge share payload.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/tilefall/tilefall/internal/model"
)

// SharePayload is the data encoded into the solution sheet's QR code.
type SharePayload struct {
	Challenge  string `json:"challenge"`
	Name       string `json:"name"`
	Seed       int64  `json:"seed"`
	Cells      int    `json:"cells"`
	Placements int    `json:"placements"`
}

// rgb is a render color for one tile.
type rgb struct {
	R, G, B int
}

// tileColors mirrors the color scheme of the game board.
var tileColors = map[model.Color]rgb{
	model.ColorRed:    {R: 244, G: 67, B: 54},
	model.ColorOrange: {R: 255, G: 152, B: 0},
	model.ColorYellow: {R: 255, G: 235, B: 59},
	model.ColorGreen:  {R: 76, G: 175, B: 80},
	model.ColorCyan:   {R: 0, G: 188, B: 212},
	model.ColorBlue:   {R: 33, G: 150, B: 243},
	model.ColorPurple: {R: 156, G: 39, B: 176},
}

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 8.0
	qrSize       = 28.0
)

// ExportPDF generates the solution sheet for a solved challenge: the
// board diagram with numbered placements on the first page and the
// placement table on the second.
func ExportPDF(path string, ch model.Challenge, sol model.Solution) error {
	if len(sol.Placements) == 0 {
		return fmt.Errorf("no placements to export")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderBoardPage(pdf, ch, sol)
	if err := renderShareQR(pdf, ch, sol); err != nil {
		return err
	}

	pdf.AddPage()
	renderPlacementsPage(pdf, sol)

	return pdf.OutputFileAndClose(path)
}

// renderBoardPage draws the title, run statistics, and the board
// diagram with every placement numbered in solve order.
func renderBoardPage(pdf *fpdf.Fpdf, ch model.Challenge, sol model.Solution) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Daily Challenge %s", ch.Name)
	if ch.Name == "" {
		title = fmt.Sprintf("Challenge %s", ch.ID)
	}
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Seed: %d | Target cells: %d | Placements: %d | Search steps: %d",
		sol.Seed, ch.FilledCount(), len(sol.Placements), sol.Steps)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	minRow, minCol, maxRow, maxCol := boardExtent(sol)

	rows := float64(maxRow - minRow + 1)
	cols := float64(maxCol - minCol + 1)

	drawWidth := pageWidth - marginLeft - marginRight - qrSize - 10
	drawHeight := pageHeight/2 - drawAreaTop
	cell := math.Min(drawWidth/cols, drawHeight/rows)

	offsetX := marginLeft
	offsetY := drawAreaTop

	// Board background.
	pdf.SetFillColor(245, 245, 245)
	pdf.SetDrawColor(120, 120, 120)
	pdf.SetLineWidth(0.4)
	pdf.Rect(offsetX, offsetY, cols*cell, rows*cell, "FD")

	// Covered cells, colored as in the game.
	pdf.SetLineWidth(0.2)
	for _, p := range sol.Placements {
		for _, off := range p.Shape.FilledOffsets() {
			col := tileColors[p.Shape[off.Row][off.Col].Color]
			x := offsetX + float64(p.Anchor.Col+off.Col-minCol)*cell
			y := offsetY + float64(p.Anchor.Row+off.Row-minRow)*cell
			pdf.SetFillColor(col.R, col.G, col.B)
			pdf.SetDrawColor(60, 60, 60)
			pdf.Rect(x, y, cell, cell, "FD")
		}
	}

	// Placement order numbers at each anchor cell.
	pdf.SetFont("Helvetica", "B", numberFontSize(cell))
	pdf.SetTextColor(0, 0, 0)
	for i, p := range sol.Placements {
		first := p.Shape.FilledOffsets()[0]
		x := offsetX + float64(p.Anchor.Col+first.Col-minCol)*cell
		y := offsetY + float64(p.Anchor.Row+first.Row-minRow)*cell
		label := fmt.Sprintf("%d", i+1)
		labelW := pdf.GetStringWidth(label)
		pdf.SetXY(x+(cell-labelW)/2, y+cell/2-2)
		pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
	}

	// Footer.
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by Tilefall - Daily Challenge Solver", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// renderShareQR draws the QR code with the challenge share payload in
// the top-right corner of the current page.
func renderShareQR(pdf *fpdf.Fpdf, ch model.Challenge, sol model.Solution) error {
	payload := SharePayload{
		Challenge:  ch.ID,
		Name:       ch.Name,
		Seed:       sol.Seed,
		Cells:      ch.FilledCount(),
		Placements: len(sol.Placements),
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal share payload: %w", err)
	}

	png, err := qrcode.Encode(string(data), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%s_%d", ch.ID, sol.Seed)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))
	pdf.ImageOptions(imgName, pageWidth-marginRight-qrSize, drawAreaTop, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(pageWidth-marginRight-qrSize, drawAreaTop+qrSize+1)
	pdf.CellFormat(qrSize, 3, "Scan to open challenge", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	return nil
}

// renderPlacementsPage draws the placement table and the piece usage
// summary.
func renderPlacementsPage(pdf *fpdf.Fpdf, sol model.Solution) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Placements", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	colWidths := []float64{15, 40, 35, 25}
	headers := []string{"#", "Piece", "Anchor", "Cells"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, p := range sol.Placements {
		if y > pageHeight-marginBottom-10 {
			pdf.AddPage()
			y = marginTop
		}

		xPos = marginLeft
		rowData := []string{
			fmt.Sprintf("%d", i+1),
			p.Template,
			fmt.Sprintf("R%dC%d", p.Anchor.Row, p.Anchor.Col),
			fmt.Sprintf("%d", p.Shape.CellCount()),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		for j, cellText := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cellText, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	y += 8
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Pieces used", "", 0, "L", false, 0, "")
	y += 9

	pdf.SetFont("Helvetica", "", 10)
	for _, usage := range pieceUsage(sol) {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(50, 5, usage.template+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(20, 5, fmt.Sprintf("%d", usage.count), "", 0, "L", false, 0, "")
		y += 5
	}
}

type templateUsage struct {
	template string
	count    int
}

// pieceUsage counts placements per template, most used first.
func pieceUsage(sol model.Solution) []templateUsage {
	counts := map[string]int{}
	for _, p := range sol.Placements {
		counts[p.Template]++
	}
	usage := make([]templateUsage, 0, len(counts))
	for tpl, n := range counts {
		usage = append(usage, templateUsage{template: tpl, count: n})
	}
	sort.Slice(usage, func(i, j int) bool {
		if usage[i].count != usage[j].count {
			return usage[i].count > usage[j].count
		}
		return usage[i].template < usage[j].template
	})
	return usage
}

// boardExtent returns the 1-indexed bounding box over all covered
// cells.
func boardExtent(sol model.Solution) (minRow, minCol, maxRow, maxCol int) {
	minRow, minCol = model.BoardSize, model.BoardSize
	maxRow, maxCol = 1, 1
	for _, p := range sol.Placements {
		for _, cell := range p.CoveredCells() {
			if cell.Row < minRow {
				minRow = cell.Row
			}
			if cell.Row > maxRow {
				maxRow = cell.Row
			}
			if cell.Col < minCol {
				minCol = cell.Col
			}
			if cell.Col > maxCol {
				maxCol = cell.Col
			}
		}
	}
	return minRow, minCol, maxRow, maxCol
}

// numberFontSize returns a font size that fits inside one board cell.
func numberFontSize(cell float64) float64 {
	switch {
	case cell > 12:
		return 9
	case cell > 8:
		return 7
	default:
		return 5
	}
}
