package storage

import (
	"time"

	"ebt/internal/config"
	"ebt/internal/domain"
)

// Storage persists and loads harness run records (e.g. for the failures viewer).
type Storage interface {
	Save(results []domain.TestResult, duration time.Duration, manifestPath string) (*domain.RunRecord, error)
	Load() (*domain.RunRecord, error)
}

// JSONStorage stores run records in a JSON file under the configured output path.
type JSONStorage struct {
	cfg *config.Config
	now func() time.Time
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg, now: time.Now}
}
