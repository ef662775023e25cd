// Package sqlite implements a SQLite-backed storage.Repository using
// database/sql. It performs per-row INSERTs inside a transaction; a row the
// database rejects (constraint violation, type error) is recorded and skipped
// rather than aborting the load, so one bad row cannot sink a whole table.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"ecometl/internal/storage"

	_ "modernc.org/sqlite" // pure-Go driver, no cgo
)

// Repository is a SQLite-backed implementation of storage.Repository.
type Repository struct {
	db  *sql.DB
	cfg Config
}

// NewRepository opens a SQLite connection using the provided DSN and returns
// a Repository plus a Close function for cleanup.
//
// DSN is passed directly to database/sql; for example:
//
//	"file:ecommerce.db?cache=shared"
//	"ecommerce.db"
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, nil, fmt.Errorf("sqlite: DSN must not be empty")
	}

	db, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("sqlite: open: %w", err)
	}

	// Apply a basic ping with context to fail fast on invalid DSNs.
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("sqlite: ping: %w", err)
	}

	// Foreign keys are off by default in SQLite; the referential integrity
	// backstop depends on them.
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON;"); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("sqlite: enable foreign_keys: %w", err)
	}

	closeFn := func() { db.Close() }
	return &Repository{db: db, cfg: cfg}, closeFn, nil
}

// InsertRows inserts the given rows into table using a single transaction and
// a prepared INSERT statement executed per row.
//
// A statement error on one row does not invalidate the SQLite transaction, so
// the remaining rows are still attempted; each rejected row is returned as a
// storage.RowError. The error return is reserved for failures that prevent
// the whole call (begin, prepare, commit).
func (r *Repository) InsertRows(
	ctx context.Context,
	table string,
	columns []string,
	rows [][]any,
) (int64, []storage.RowError, error) {
	if strings.TrimSpace(table) == "" {
		return 0, nil, fmt.Errorf("sqlite: InsertRows: table must not be empty")
	}
	if len(columns) == 0 {
		return 0, nil, fmt.Errorf("sqlite: InsertRows: columns must not be empty")
	}
	if len(rows) == 0 {
		return 0, nil, nil
	}

	// Build INSERT INTO <table> (<cols>) VALUES (?, ?, ...).
	placeholders := make([]string, len(columns))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	stmtSQL := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		quoteFQN(table),
		strings.Join(quoteAll(columns), ", "),
		strings.Join(placeholders, ", "),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("sqlite: begin tx: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, stmtSQL)
	if err != nil {
		_ = tx.Rollback()
		return 0, nil, fmt.Errorf("sqlite: prepare insert: %w", err)
	}
	defer stmt.Close()

	var (
		inserted int64
		rowErrs  []storage.RowError
	)
	for i, row := range rows {
		if len(row) != len(columns) {
			rowErrs = append(rowErrs, storage.RowError{
				Index: i,
				Err:   fmt.Errorf("row length %d != columns length %d", len(row), len(columns)),
			})
			continue
		}
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			if ctx.Err() != nil {
				_ = tx.Rollback()
				return inserted, rowErrs, ctx.Err()
			}
			rowErrs = append(rowErrs, storage.RowError{Index: i, Err: err})
			continue
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, rowErrs, fmt.Errorf("sqlite: commit: %w", err)
	}
	return inserted, rowErrs, nil
}

// Exec executes an arbitrary SQL statement (typically DDL) using the
// underlying database/sql connection.
func (r *Repository) Exec(ctx context.Context, sql string) error {
	if strings.TrimSpace(sql) == "" {
		return nil
	}
	if _, err := r.db.ExecContext(ctx, sql); err != nil {
		return fmt.Errorf("sqlite: exec: %w", err)
	}
	return nil
}

func quoteIdent(id string) string {
	return `"` + strings.ReplaceAll(id, `"`, `""`) + `"`
}

func quoteAll(ids []string) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = quoteIdent(id)
	}
	return out
}

func quoteFQN(fqn string) string {
	parts := strings.Split(fqn, ".")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, quoteIdent(p))
	}
	return strings.Join(out, ".")
}
