// Package importer provides CSV and Excel import of challenge
// target-cell lists. Challenge designers maintain boards as
// spreadsheets with one row per target cell; the importer supports
// automatic delimiter detection, flexible column mapping, and
// case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/tilefall/tilefall/internal/model"
)

// ImportResult holds the results of an import operation. Bad rows are
// collected as errors or warnings without aborting the import,
// matching the solver's lenient treatment of challenge input.
type ImportResult struct {
	Cells    map[string]model.Block
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Row   int
	Col   int
	Color int
}

// headerAliases maps canonical column names to their accepted aliases
// (all lowercase).
var headerAliases = map[string][]string{
	"row":   {"row", "r", "y"},
	"col":   {"col", "column", "c", "x"},
	"color": {"color", "colour", "tile", "tint"},
}

// DetectCSVDelimiter reads the file content and determines the most
// likely CSV delimiter. It tries comma, semicolon, tab, and pipe. The
// delimiter that produces the most consistent column count across
// lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping. It
// performs case-insensitive matching against known aliases for each
// column role. Returns the mapping and true if a header was detected,
// or a default positional mapping (row, col, color) and false if not.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Row: -1, Col: -1, Color: -1}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				switch role {
				case "row":
					if mapping.Row == -1 {
						mapping.Row = i
					}
				case "col":
					if mapping.Col == -1 {
						mapping.Col = i
					}
				case "color":
					if mapping.Color == -1 {
						mapping.Color = i
					}
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{Row: 0, Col: 1, Color: 2}, false
	}
	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow extracts a target cell from a data row. Returns the cell
// key, the block, and any error or warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (string, model.Block, string, string) {
	rowStr := getCell(row, mapping.Row)
	if rowStr == "" {
		return "", model.Block{}, fmt.Sprintf("%s: Missing row value", rowLabel), ""
	}
	boardRow, err := strconv.Atoi(rowStr)
	if err != nil {
		return "", model.Block{}, fmt.Sprintf("%s: Invalid row '%s'", rowLabel, rowStr), ""
	}

	colStr := getCell(row, mapping.Col)
	if colStr == "" {
		return "", model.Block{}, fmt.Sprintf("%s: Missing column value", rowLabel), ""
	}
	boardCol, err := strconv.Atoi(colStr)
	if err != nil {
		return "", model.Block{}, fmt.Sprintf("%s: Invalid column '%s'", rowLabel, colStr), ""
	}

	if boardRow < 1 || boardRow > model.BoardSize || boardCol < 1 || boardCol > model.BoardSize {
		warning := fmt.Sprintf("%s: Cell (%d,%d) outside the %dx%d board, skipping",
			rowLabel, boardRow, boardCol, model.BoardSize, model.BoardSize)
		return "", model.Block{}, "", warning
	}

	color := model.Color(strings.ToLower(getCell(row, mapping.Color)))
	if color == model.ColorNone {
		color = model.ColorBlue
	}

	key := model.CellKey(boardRow, boardCol)
	return key, model.Block{Filled: true, Color: color}, "", ""
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports challenge cells from a CSV file. It automatically
// detects the delimiter and maps columns by header names.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports challenge cells from a CSV reader with a
// specific delimiter. Useful for testing or when the delimiter is
// already known.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports challenge cells from an Excel (.xlsx) file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel
// data. It detects headers, maps columns, and parses each row into a
// target cell.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Cells:    map[string]model.Block{},
		Warnings: initialWarnings,
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.Row == -1 {
			missing = append(missing, "Row")
		}
		if mapping.Col == -1 {
			missing = append(missing, "Col")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 2 {
		if _, err := strconv.Atoi(strings.TrimSpace(rows[0][0])); err != nil {
			// Unrecognized header: skip it but keep positional mapping.
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		key, block, errMsg, warning := parseRow(row, mapping, rowLabel)

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
			continue
		}

		if _, dup := result.Cells[key]; dup {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: Duplicate cell %s, keeping last", rowLabel, key))
		}
		result.Cells[key] = block
	}

	return result
}
