// Package store provides expense persistence over database/sql, with a
// SQLite backend (default) and a PostgreSQL backend selected by config.
package store

import (
	"context"
	"fmt"
	"time"

	"expenses/internal/config"
	"expenses/internal/core"
)

// Store is the persistence port for expenses. Lookups of missing ids
// return core.ErrNoExpense; every other failure is passed through.
type Store interface {
	Add(ctx context.Context, amount core.Money, memo string, createdOn time.Time) (core.Expense, error)
	List(ctx context.Context) ([]core.Expense, error)
	Search(ctx context.Context, query string) ([]core.Expense, error)
	Get(ctx context.Context, id int64) (core.Expense, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
	Close() error
}

// Open creates the store selected by the configuration and ensures the
// expenses schema exists.
func Open(cfg *config.Config) (Store, error) {
	switch cfg.StoreBackend {
	case "sqlite":
		return openSQLite(cfg.SQLiteDBPath)
	case "postgres":
		return openPostgres(cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", cfg.StoreBackend)
	}
}
