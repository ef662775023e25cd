package storage

import (
	"context"
	"fmt"
	"sync"

	"ecometl/internal/schema"
)

// DDLBootstrapper is a backend-specific function that renders the table
// definitions for the given entities and applies the resulting DDL via
// repo.Exec (DROP/CREATE TABLE plus indexes).
//
// Backends (sqlite, postgres) register their implementation for a given
// storage kind at init time.
type DDLBootstrapper func(ctx context.Context, repo Repository, entities []schema.Entity) error

var (
	ddlMu  sync.RWMutex
	ddlFns = map[string]DDLBootstrapper{}
)

// RegisterDDL registers (or replaces) a DDLBootstrapper for the given storage
// kind. It is typically called from backend packages' init() functions.
func RegisterDDL(kind string, fn DDLBootstrapper) {
	ddlMu.Lock()
	defer ddlMu.Unlock()
	ddlFns[kind] = fn
}

// EnsureSchema locates the DDLBootstrapper for kind and invokes it with the
// given entities. Callers do not need to know which backend they are using;
// they pass the already-open Repository and the entity set to materialize.
//
// If no DDL bootstrapper has been registered for the storage kind, an error
// is returned.
func EnsureSchema(ctx context.Context, kind string, repo Repository, entities []schema.Entity) error {
	ddlMu.RLock()
	fn, ok := ddlFns[kind]
	ddlMu.RUnlock()
	if !ok {
		return fmt.Errorf("no DDL bootstrapper registered for storage.kind=%q", kind)
	}
	return fn(ctx, repo, entities)
}
