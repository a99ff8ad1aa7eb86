// Tilefall — Daily Challenge Solver
//
// Loads a challenge board (JSON, CSV or XLSX), computes a piece
// placement sequence that exactly covers the target cells for the
// given seed, and optionally exports a printable solution sheet.
//
// Build:
//   go build -o tilefall ./cmd/tilefall
//
// Usage:
//   tilefall -challenge daily.json
//   tilefall -challenge board.csv -seed 20260824 -pdf solution.pdf

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tilefall/tilefall/internal/challenge"
	"github.com/tilefall/tilefall/internal/engine"
	"github.com/tilefall/tilefall/internal/export"
	"github.com/tilefall/tilefall/internal/importer"
	"github.com/tilefall/tilefall/internal/model"
)

func main() {
	challengePath := flag.String("challenge", "", "challenge file (.json, .csv or .xlsx)")
	seed := flag.Int64("seed", 0, "seed override (defaults to the challenge file's seed)")
	name := flag.String("name", "", "challenge name for imported spreadsheets")
	budget := flag.Int("budget", engine.DefaultConfig().StepBudget, "search step budget")
	pdfPath := flag.String("pdf", "", "write a PDF solution sheet to this path")
	savePath := flag.String("save", "", "write the normalized challenge JSON to this path")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if *challengePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	ch, err := loadChallenge(*challengePath, *name)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load challenge")
	}
	if *seed != 0 {
		ch.Seed = *seed
	}

	cfg := engine.DefaultConfig()
	cfg.StepBudget = *budget

	log.Info().
		Str("challenge", ch.Name).
		Int64("seed", ch.Seed).
		Int("targets", ch.FilledCount()).
		Msg("Solving challenge")

	sol, err := engine.New(cfg).Solve(ch.Cells, ch.Seed)
	if err != nil {
		if errors.Is(err, engine.ErrNoSolution) {
			log.Error().Int64("seed", ch.Seed).Int("budget", cfg.StepBudget).Msg("No solution found within the step budget")
			os.Exit(1)
		}
		log.Fatal().Err(err).Msg("Solve failed")
	}

	log.Info().Int("placements", len(sol.Placements)).Int("steps", sol.Steps).Msg("Solved")
	printSolution(sol)

	if *savePath != "" {
		if err := challenge.Save(*savePath, ch); err != nil {
			log.Fatal().Err(err).Msg("Failed to save challenge")
		}
		log.Info().Str("path", *savePath).Msg("Challenge saved")
	}

	if *pdfPath != "" {
		if err := export.ExportPDF(*pdfPath, ch, sol); err != nil {
			log.Fatal().Err(err).Msg("Failed to export solution sheet")
		}
		log.Info().Str("path", *pdfPath).Msg("Solution sheet written")
	}
}

// loadChallenge reads a challenge from JSON, or imports one from a
// spreadsheet. Import row problems are logged and skipped; only an
// empty result is fatal.
func loadChallenge(path, name string) (model.Challenge, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		return challenge.Load(path)
	case ".csv", ".xlsx":
		var result importer.ImportResult
		if ext == ".csv" {
			result = importer.ImportCSV(path)
		} else {
			result = importer.ImportExcel(path)
		}
		for _, w := range result.Warnings {
			log.Warn().Msg(w)
		}
		for _, e := range result.Errors {
			log.Warn().Msg(e)
		}
		if len(result.Cells) == 0 {
			return model.Challenge{}, fmt.Errorf("no target cells imported from %s", path)
		}
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(path), ext)
		}
		ch := model.NewChallenge(name, 0)
		ch.Cells = result.Cells
		return ch, nil
	default:
		return model.Challenge{}, fmt.Errorf("unsupported challenge format %q", ext)
	}
}

func printSolution(sol model.Solution) {
	for i, p := range sol.Placements {
		fmt.Printf("%3d. %-6s at R%dC%d (%d cells)\n",
			i+1, p.Template, p.Anchor.Row, p.Anchor.Col, p.Shape.CellCount())
	}
}
