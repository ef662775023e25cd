// Package postgres implements a Postgres-backed storage.Repository using pgx
// v5. Inserts go through the COPY protocol first; when a batch contains rows
// the database rejects, the batch is replayed row by row so the good rows
// still land and the bad ones are reported individually.
package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ecometl/internal/storage"
)

// Config holds Postgres repository configuration.
type Config struct {
	DSN string // connection string for pgxpool
}

// Repository is a Postgres-backed implementation of storage.Repository.
type Repository struct {
	pool *pgxpool.Pool
	cfg  Config
}

// NewRepository constructs a Repository and returns a Close function for
// cleanup.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, nil, fmt.Errorf("postgres: DSN must not be empty")
	}
	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("pgxpool: %w", err)
	}
	closeFn := func() { pool.Close() }
	return &Repository{pool: pool, cfg: cfg}, closeFn, nil
}

// InsertRows inserts the given rows into table.
//
// The fast path is a single CopyFrom. COPY is all-or-nothing: if it fails,
// the rows are replayed one INSERT at a time in autocommit mode, collecting a
// storage.RowError per rejected row while the rest still land. The error
// return is reserved for failures that prevent the whole call.
func (r *Repository) InsertRows(
	ctx context.Context,
	table string,
	columns []string,
	rows [][]any,
) (int64, []storage.RowError, error) {
	if strings.TrimSpace(table) == "" {
		return 0, nil, fmt.Errorf("postgres: InsertRows: table must not be empty")
	}
	if len(columns) == 0 {
		return 0, nil, fmt.Errorf("postgres: InsertRows: columns must not be empty")
	}
	if len(rows) == 0 {
		return 0, nil, nil
	}

	for i, row := range rows {
		if len(row) != len(columns) {
			return 0, nil, fmt.Errorf("postgres: InsertRows: row %d length %d != columns length %d", i, len(row), len(columns))
		}
	}

	n, err := r.pool.CopyFrom(ctx, pgIdentifier(table), columns, pgx.CopyFromRows(rows))
	if err == nil {
		return n, nil, nil
	}
	if ctx.Err() != nil {
		return 0, nil, ctx.Err()
	}

	return r.insertRowByRow(ctx, table, columns, rows)
}

// insertRowByRow is the slow path taken when COPY rejects a batch.
func (r *Repository) insertRowByRow(
	ctx context.Context,
	table string,
	columns []string,
	rows [][]any,
) (int64, []storage.RowError, error) {
	placeholders := make([]string, len(columns))
	for i := range placeholders {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	stmt := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		pgFQN(table),
		strings.Join(mapIdent(columns), ", "),
		strings.Join(placeholders, ", "),
	)

	var (
		inserted int64
		rowErrs  []storage.RowError
	)
	for i, row := range rows {
		if _, err := r.pool.Exec(ctx, stmt, row...); err != nil {
			if ctx.Err() != nil {
				return inserted, rowErrs, ctx.Err()
			}
			rowErrs = append(rowErrs, storage.RowError{Index: i, Err: err})
			continue
		}
		inserted++
	}
	return inserted, rowErrs, nil
}

// Exec executes an arbitrary SQL statement (typically DDL).
func (r *Repository) Exec(ctx context.Context, sql string) error {
	if strings.TrimSpace(sql) == "" {
		return nil
	}
	if _, err := r.pool.Exec(ctx, sql); err != nil {
		return fmt.Errorf("postgres: exec: %w", err)
	}
	return nil
}

// pgIdentifier splits a possibly schema-qualified name into a pgx.Identifier.
func pgIdentifier(name string) pgx.Identifier {
	return pgx.Identifier(strings.Split(name, "."))
}

// pgIdent safely quotes a single identifier segment for Postgres.
func pgIdent(id string) string { return `"` + strings.ReplaceAll(id, `"`, `""`) + `"` }

// pgFQN quotes a possibly schema-qualified name like "public.orders" to
// "public"."orders". If no dot is present, returns a single quoted ident.
func pgFQN(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = pgIdent(p)
	}
	return strings.Join(parts, ".")
}

// mapIdent maps a list of column names to their quoted forms.
func mapIdent(cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = pgIdent(c)
	}
	return out
}
