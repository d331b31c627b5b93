package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"ebt/internal/domain"
)

// Save writes the results of a run to the configured JSON output file and
// returns the stored record.
func (s *JSONStorage) Save(results []domain.TestResult, duration time.Duration, manifestPath string) (*domain.RunRecord, error) {
	passed := 0
	failed := 0
	for _, r := range results {
		if r.Passed() {
			passed++
		} else {
			failed++
		}
	}

	if results == nil {
		results = []domain.TestResult{}
	}

	record := &domain.RunRecord{
		Meta: domain.RunMeta{
			RunID:           uuid.New().String(),
			Manifest:        manifestPath,
			TotalExamples:   len(results),
			PassedExamples:  passed,
			FailedExamples:  failed,
			Duration:        duration.String(),
			DurationSeconds: duration.Seconds(),
			Timestamp:       s.now().Format(time.RFC3339),
		},
		Results: results,
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal results: %w", err)
	}

	if err := atomicWrite(s.cfg.GetOutputPath(), data); err != nil {
		return nil, fmt.Errorf("write results: %w", err)
	}
	return record, nil
}

// Load reads the last run record from the configured JSON output file.
func (s *JSONStorage) Load() (*domain.RunRecord, error) {
	path := s.cfg.GetOutputPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results file: %w", err)
	}
	var record domain.RunRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}
	return &record, nil
}

// atomicWrite writes data to a temp file in the target directory and renames
// it over path, so readers never see a partial record.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
