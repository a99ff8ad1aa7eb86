// Package challenge persists daily-challenge definitions as JSON
// files. The game client and the challenge designers exchange these
// files; the solver CLI reads them and can write back normalized
// copies.
package challenge

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tilefall/tilefall/internal/model"
)

// Save writes a challenge to the given path as indented JSON. Missing
// parent directories are created automatically.
func Save(path string, ch model.Challenge) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create challenge directory: %w", err)
	}
	data, err := json.MarshalIndent(ch, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal challenge: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Load reads a challenge from the given path. The cell map is never
// nil on a successful load.
func Load(path string) (model.Challenge, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Challenge{}, fmt.Errorf("read challenge: %w", err)
	}
	var ch model.Challenge
	if err := json.Unmarshal(data, &ch); err != nil {
		return model.Challenge{}, fmt.Errorf("parse challenge %s: %w", filepath.Base(path), err)
	}
	if ch.Cells == nil {
		ch.Cells = map[string]model.Block{}
	}
	return ch, nil
}
