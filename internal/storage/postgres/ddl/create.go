// This file renders CREATE TABLE / CREATE INDEX statements in Postgres
// dialect from the generic ddl.TableDef model. Identifiers are double-quoted;
// dotted FQNs are quoted per segment.
package ddl

import (
	"fmt"
	"strings"

	gddl "ecometl/internal/ddl"
)

// BuildCreateTableSQL returns a Postgres CREATE TABLE IF NOT EXISTS statement
// for the given table definition. PRIMARY KEY and FOREIGN KEY constraints are
// rendered as separate table constraints.
func BuildCreateTableSQL(t gddl.TableDef) (string, error) {
	fqn := strings.TrimSpace(t.FQN)
	if fqn == "" {
		return "", fmt.Errorf("postgres ddl: table FQN must not be empty")
	}
	if len(t.Columns) == 0 {
		return "", fmt.Errorf("postgres ddl: at least one column is required")
	}

	cols := make([]string, 0, len(t.Columns)+1+len(t.ForeignKeys))
	pks := make([]string, 0, len(t.Columns))

	for _, c := range t.Columns {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return "", fmt.Errorf("postgres ddl: column with empty name in table %s", fqn)
		}
		typ := strings.TrimSpace(c.SQLType)
		if typ == "" {
			return "", fmt.Errorf("postgres ddl: column %s missing SQLType", name)
		}

		var sb strings.Builder
		sb.WriteString(quoteIdent(name))
		sb.WriteByte(' ')
		sb.WriteString(typ)

		if !c.Nullable {
			sb.WriteString(" NOT NULL")
		}
		if def := strings.TrimSpace(c.Default); def != "" {
			sb.WriteString(" DEFAULT ")
			sb.WriteString(def)
		}

		cols = append(cols, sb.String())

		if c.PrimaryKey {
			pks = append(pks, quoteIdent(name))
		}
	}

	if len(pks) > 0 {
		cols = append(cols, fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(pks, ", ")))
	}

	for _, fk := range t.ForeignKeys {
		if fk.Column == "" || fk.RefTable == "" || fk.RefColumn == "" {
			return "", fmt.Errorf("postgres ddl: incomplete foreign key on table %s", fqn)
		}
		cols = append(cols, fmt.Sprintf(
			"FOREIGN KEY (%s) REFERENCES %s (%s)",
			quoteIdent(fk.Column), quoteFQN(fk.RefTable), quoteIdent(fk.RefColumn),
		))
	}

	stmt := fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (\n  %s\n);",
		quoteFQN(fqn),
		strings.Join(cols, ",\n  "),
	)
	return stmt, nil
}

// BuildCreateIndexSQL returns a Postgres CREATE INDEX IF NOT EXISTS statement
// for one index of the given table. When idx.Name is empty the index is named
// idx_<table>_<col1>_<col2>..., with any schema prefix stripped.
func BuildCreateIndexSQL(table string, idx gddl.IndexDef) (string, error) {
	table = strings.TrimSpace(table)
	if table == "" {
		return "", fmt.Errorf("postgres ddl: index table must not be empty")
	}
	if len(idx.Columns) == 0 {
		return "", fmt.Errorf("postgres ddl: index on table %s has no columns", table)
	}
	name := strings.TrimSpace(idx.Name)
	if name == "" {
		base := table
		if i := strings.LastIndexByte(base, '.'); i >= 0 {
			base = base[i+1:]
		}
		name = "idx_" + base + "_" + strings.Join(idx.Columns, "_")
	}
	cols := make([]string, len(idx.Columns))
	for i, c := range idx.Columns {
		cols[i] = quoteIdent(c)
	}
	return fmt.Sprintf(
		"CREATE INDEX IF NOT EXISTS %s ON %s (%s);",
		quoteIdent(name), quoteFQN(table), strings.Join(cols, ", "),
	), nil
}

func quoteIdent(id string) string {
	return `"` + strings.ReplaceAll(id, `"`, `""`) + `"`
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
