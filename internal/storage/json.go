package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"microtest/internal/config"
	"microtest/internal/domain"
)

// JSONStorage stores the last run in a JSON file under the configured output path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}

// Save writes the run report to the configured JSON output file.
func (s *JSONStorage) Save(report *domain.RunReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}

	path := s.cfg.GetOutputPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}

// Load reads the last run from the configured JSON output file.
func (s *JSONStorage) Load() (*domain.RunReport, error) {
	path := s.cfg.GetOutputPath()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoResults
	}
	if err != nil {
		return nil, fmt.Errorf("read results file: %w", err)
	}
	var report domain.RunReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}
	return &report, nil
}

// SaveResolved rewrites the whole file; the JSON file only ever holds one run.
func (s *JSONStorage) SaveResolved(report *domain.RunReport) error {
	return s.Save(report)
}
