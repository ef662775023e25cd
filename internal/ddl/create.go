// Package ddl defines a small, backend-agnostic model for SQL DDL and helpers
// to render simple CREATE TABLE and CREATE INDEX statements from that model.
//
// The goal of this package is to stay generic: it does not assume any specific
// SQL dialect. In particular, it:
//
//   - Does not quote identifiers; it emits TableDef.FQN and ColumnDef.Name as-is.
//   - Does not insert dialect-specific clauses such as IF NOT EXISTS.
//   - Treats ColumnDef.Default as raw SQL (the caller is responsible for
//     safety and dialect correctness).
//
// Backend-specific packages (e.g., internal/storage/sqlite/ddl) adapt this
// model to their dialect: they may wrap or reimplement the builders using the
// same TableDef/ColumnDef types.
package ddl

import (
	"fmt"
	"strings"
)

// BuildCreateTableSQL renders a generic CREATE TABLE statement from a TableDef.
//
// Rules:
//
//   - t.FQN must be non-empty; it is emitted verbatim as the table name.
//
//   - Each column must have a non-empty Name and SQLType.
//
//   - A column is rendered as:
//
//     <Name> <SQLType> [NOT NULL] [DEFAULT <Default>]
//
//     where NOT NULL is added when Nullable == false.
//
//   - Columns with PrimaryKey == true are collected and rendered as a separate
//     PRIMARY KEY (<col1>, <col2>, ...) clause at the end of the column list.
//
//   - Each ForeignKeyDef is rendered after the primary key as:
//
//     FOREIGN KEY (<Column>) REFERENCES <RefTable> (<RefColumn>)
//
// Indexes are not part of the CREATE TABLE statement; render them separately
// with BuildCreateIndexSQL.
func BuildCreateTableSQL(t TableDef) (string, error) {
	fqn := strings.TrimSpace(t.FQN)
	if fqn == "" {
		return "", fmt.Errorf("ddl: table FQN must not be empty")
	}
	if len(t.Columns) == 0 {
		return "", fmt.Errorf("ddl: at least one column is required")
	}

	cols := make([]string, 0, len(t.Columns)+1+len(t.ForeignKeys))
	pks := make([]string, 0, len(t.Columns))

	for _, c := range t.Columns {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return "", fmt.Errorf("ddl: column with empty name in table %s", fqn)
		}
		typ := strings.TrimSpace(c.SQLType)
		if typ == "" {
			return "", fmt.Errorf("ddl: column %s missing SQLType", name)
		}

		var sb strings.Builder
		sb.WriteString(name)
		sb.WriteByte(' ')
		sb.WriteString(typ)

		if !c.Nullable {
			sb.WriteString(" NOT NULL")
		}

		if def := strings.TrimSpace(c.Default); def != "" {
			sb.WriteString(" DEFAULT ")
			// Default is emitted as raw SQL expression.
			sb.WriteString(def)
		}

		cols = append(cols, sb.String())

		if c.PrimaryKey {
			pks = append(pks, name)
		}
	}

	if len(pks) > 0 {
		cols = append(cols, fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(pks, ", ")))
	}

	for _, fk := range t.ForeignKeys {
		col := strings.TrimSpace(fk.Column)
		ref := strings.TrimSpace(fk.RefTable)
		refCol := strings.TrimSpace(fk.RefColumn)
		if col == "" || ref == "" || refCol == "" {
			return "", fmt.Errorf("ddl: incomplete foreign key on table %s", fqn)
		}
		cols = append(cols, fmt.Sprintf("FOREIGN KEY (%s) REFERENCES %s (%s)", col, ref, refCol))
	}

	stmt := fmt.Sprintf(
		"CREATE TABLE %s (\n  %s\n);",
		fqn,
		strings.Join(cols, ",\n  "),
	)

	return stmt, nil
}

// BuildCreateIndexSQL renders a generic CREATE INDEX statement for one
// IndexDef of a table. When idx.Name is empty the index is named
// idx_<table>_<col1>_<col2>..., with any schema prefix stripped from the
// table name.
func BuildCreateIndexSQL(table string, idx IndexDef) (string, error) {
	table = strings.TrimSpace(table)
	if table == "" {
		return "", fmt.Errorf("ddl: index table must not be empty")
	}
	if len(idx.Columns) == 0 {
		return "", fmt.Errorf("ddl: index on table %s has no columns", table)
	}
	name := strings.TrimSpace(idx.Name)
	if name == "" {
		base := table
		if i := strings.LastIndexByte(base, '.'); i >= 0 {
			base = base[i+1:]
		}
		name = "idx_" + base + "_" + strings.Join(idx.Columns, "_")
	}
	return fmt.Sprintf("CREATE INDEX %s ON %s (%s);", name, table, strings.Join(idx.Columns, ", ")), nil
}
