// Package filestore persists run artifacts as write-once JSON files: the
// raw payload goes to a bronze directory, the cleaned batch to a gold one.
package filestore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"listlens/internal/model"
)

// Paths holds the resolved bronze and gold file locations for one run.
type Paths struct {
	Bronze string
	Gold   string
}

// EnsureDirs creates the bronze/gold directories if needed and resolves the
// output paths for fileName.
func EnsureDirs(bronzeDir, goldDir, fileName string) (Paths, error) {
	for _, dir := range []string{bronzeDir, goldDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Paths{}, fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return Paths{
		Bronze: filepath.Join(bronzeDir, fileName),
		Gold:   filepath.Join(goldDir, fileName),
	}, nil
}

// SaveJSON writes v as indented JSON. Writes happen only after a run fully
// succeeds, so a file is never partially meaningful.
func SaveJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// ReadCleaned loads a previously saved cleaned batch (either wire shape).
func ReadCleaned(path string) (model.CleanedData, error) {
	var data model.CleanedData
	b, err := os.ReadFile(path)
	if err != nil {
		return data, err
	}
	if err := json.Unmarshal(b, &data); err != nil {
		return data, err
	}
	return data, nil
}
