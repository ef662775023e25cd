package ddl

import (
	"context"
	"fmt"

	"ecometl/internal/schema"
	"ecometl/internal/storage"
)

// EnsureSchema rebuilds the destination tables for the given entities.
//
// Each run produces a fresh snapshot: existing tables are dropped in reverse
// entity order (so referencing tables go before referenced ones), then tables
// and their secondary indexes are created in forward order. All DDL is issued
// via the repository's Exec method.
func EnsureSchema(ctx context.Context, repo storage.Repository, entities []schema.Entity) error {
	for i := len(entities) - 1; i >= 0; i-- {
		e := entities[i]
		if err := repo.Exec(ctx, "DROP TABLE IF EXISTS "+quoteFQN(e.Table)+";"); err != nil {
			return fmt.Errorf("drop %s: %w", e.Table, err)
		}
	}

	for _, e := range entities {
		td, err := FromEntity(e)
		if err != nil {
			return err
		}
		sql, err := BuildCreateTableSQL(td)
		if err != nil {
			return err
		}
		if err := repo.Exec(ctx, sql); err != nil {
			return fmt.Errorf("create %s: %w", e.Table, err)
		}
		for _, idx := range td.Indexes {
			sql, err := BuildCreateIndexSQL(td.FQN, idx)
			if err != nil {
				return err
			}
			if err := repo.Exec(ctx, sql); err != nil {
				return fmt.Errorf("index %s: %w", e.Table, err)
			}
		}
	}
	return nil
}
