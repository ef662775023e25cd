// Package storage contains storage-agnostic contracts and the backend
// factory. Concrete backends (sqlite, postgres) register themselves at init
// time; callers open a Repository through New without importing any backend
// directly.
package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// RowError reports a single rejected row from an InsertRows call. Index is
// the position of the row in the rows slice passed to InsertRows.
type RowError struct {
	Index int
	Err   error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Index, e.Err)
}

// Repository is the write-side contract every backend implements.
//
// InsertRows inserts rows (aligned to the columns order) into table. Backends
// insert what they can: a row rejected by the database (constraint violation,
// type error) is reported in the returned RowError slice, while the remaining
// rows are still inserted. The error return is reserved for failures that
// prevent the whole call (bad connection, missing table).
type Repository interface {
	InsertRows(ctx context.Context, table string, columns []string, rows [][]any) (int64, []RowError, error)
	Exec(ctx context.Context, sql string) error
	Close()
}

// Config is the backend-agnostic storage configuration handed to factories.
type Config struct {
	Kind string // backend selector, e.g. "sqlite", "postgres"
	DSN  string // backend connection string or file path
}

// Factory constructs a Repository for a Config. Implementations are
// registered per storage kind via Register.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	regMu     sync.RWMutex
	factories = map[string]Factory{}
)

// Register registers (or replaces) a Factory for the given storage kind. It
// is typically called from backend packages' init() functions.
func Register(kind string, fn Factory) {
	regMu.Lock()
	defer regMu.Unlock()
	factories[kind] = fn
}

// New opens a Repository for cfg.Kind using the registered factory.
func New(ctx context.Context, cfg Config) (Repository, error) {
	regMu.RLock()
	fn, ok := factories[cfg.Kind]
	regMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unsupported storage.kind=%s", cfg.Kind)
	}
	return fn(ctx, cfg)
}

// ListKinds returns a sorted snapshot of the registered storage kinds.
func ListKinds() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	kinds := make([]string, 0, len(factories))
	for k := range factories {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
