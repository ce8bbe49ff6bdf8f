// Package backend selects and assembles the snapshot store the rest of
// the system persists through.
package backend

import (
	"fmt"
	"log/slog"

	"github.com/Ramon98292347/financeiro-igreja/internal/config"
	"github.com/Ramon98292347/financeiro-igreja/internal/ledger"
	"github.com/Ramon98292347/financeiro-igreja/internal/ledger/memory"
	"github.com/Ramon98292347/financeiro-igreja/internal/storage"
)

type BackendType string

const (
	SQLiteBackend BackendType = "sqlite"
	MemoryBackend BackendType = "memory"
)

func (bt BackendType) String() string {
	return string(bt)
}

func (bt BackendType) IsValid() bool {
	switch bt {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// CleanupFunc releases resources held by a backend.
type CleanupFunc func() error

// Result carries the assembled blob store and its cleanup.
type Result struct {
	Store   ledger.BlobStore
	Cleanup CleanupFunc
}

// Create builds the blob store named by the configuration.
func Create(cfg *config.Config, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	backendType := BackendType(cfg.DataBackend)
	switch backendType {
	case SQLiteBackend:
		store, err := storage.NewSQLiteStore(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		logger.Info("Initialized SQLite backend", "db_path", cfg.SQLiteDBPath)
		return &Result{Store: store, Cleanup: store.Close}, nil
	case MemoryBackend:
		logger.Info("Initialized memory backend")
		return &Result{Store: memory.New(), Cleanup: nil}, nil
	default:
		return nil, fmt.Errorf("invalid backend type: %s", cfg.DataBackend)
	}
}
