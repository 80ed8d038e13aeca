// Package backend constructs the configured ledger store.
package backend

import (
	"fmt"

	"fintrack/internal/config"
	applog "fintrack/internal/log"
	"fintrack/internal/storage"
)

// CleanupFunc releases backend resources on shutdown.
type CleanupFunc func() error

// Result contains the constructed store and an optional cleanup function.
type Result struct {
	Store   storage.Store
	Cleanup CleanupFunc
}

// New builds the store selected by the configuration. The config is
// assumed to have passed Validate.
func New(cfg *config.Config, logger *applog.Logger) (*Result, error) {
	switch cfg.DataBackend {
	case "sqlite":
		store, err := storage.NewSQLiteStore(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		logger.Info("Initialized SQLite ledger store", "db_path", cfg.SQLiteDBPath)
		return &Result{Store: store, Cleanup: store.Close}, nil

	case "supabase":
		store, err := storage.NewSupabaseStore(cfg.SupabaseURL, cfg.SupabaseKey)
		if err != nil {
			return nil, fmt.Errorf("initialize supabase store: %w", err)
		}
		logger.Info("Initialized Supabase ledger store", "url", cfg.SupabaseURL)
		return &Result{Store: store}, nil

	case "memory":
		logger.Info("Initialized in-memory ledger store")
		return &Result{Store: storage.NewMemoryStore()}, nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.DataBackend)
	}
}
