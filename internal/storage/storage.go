package storage

import (
	"errors"
	"fmt"

	"microtest/internal/config"
	"microtest/internal/domain"
)

// ErrNoResults is returned by Load when no run has been saved yet.
var ErrNoResults = errors.New("no saved test run")

// Storage persists and loads the last run (e.g. for the faills viewer).
type Storage interface {
	Save(report *domain.RunReport) error
	Load() (*domain.RunReport, error)
	// SaveResolved persists the resolved markers of an already saved run.
	SaveResolved(report *domain.RunReport) error
}

// New returns the storage selected by the config's Storage driver.
func New(cfg *config.Config) (Storage, error) {
	switch cfg.Storage {
	case config.StorageJSON:
		return NewJSONStorage(cfg), nil
	case config.StorageMySQL:
		return NewMySQLStorage(cfg)
	case config.StorageNone:
		return NopStorage{}, nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage)
}

// NopStorage discards saved runs.
type NopStorage struct{}

func (NopStorage) Save(*domain.RunReport) error         { return nil }
func (NopStorage) Load() (*domain.RunReport, error)     { return nil, ErrNoResults }
func (NopStorage) SaveResolved(*domain.RunReport) error { return nil }
