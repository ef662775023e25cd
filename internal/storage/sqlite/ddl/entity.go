// This file derives SQLite table definitions from the canonical entity
// descriptors. It is backend-specific because it maps field kinds using
// SQLite MapType.
package ddl

import (
	"fmt"

	gddl "ecometl/internal/ddl"
	"ecometl/internal/schema"
)

// FromEntity derives a SQLite-oriented TableDef from an entity descriptor.
//
// Rules:
//   - Table name comes from e.Table.
//   - Columns follow the entity's field order; types map via MapType.
//   - The identity field becomes the primary key and is NOT NULL; every other
//     column is nullable (absent values are stored as NULL).
//   - Foreign keys and secondary indexes carry over verbatim.
func FromEntity(e schema.Entity) (gddl.TableDef, error) {
	if e.Table == "" {
		return gddl.TableDef{}, fmt.Errorf("sqlite ddl: entity %q missing table", e.Name)
	}
	if len(e.Fields) == 0 {
		return gddl.TableDef{}, fmt.Errorf("sqlite ddl: entity %q has no fields", e.Name)
	}

	cols := make([]gddl.ColumnDef, 0, len(e.Fields))
	for _, f := range e.Fields {
		pk := f.Name == e.Key
		cols = append(cols, gddl.ColumnDef{
			Name:       f.Name,
			SQLType:    MapType(f.Kind),
			Nullable:   !pk,
			PrimaryKey: pk,
		})
	}

	fks := make([]gddl.ForeignKeyDef, 0, len(e.ForeignKeys))
	for _, fk := range e.ForeignKeys {
		fks = append(fks, gddl.ForeignKeyDef{
			Column:    fk.Field,
			RefTable:  fk.RefTable,
			RefColumn: fk.RefField,
		})
	}

	idxs := make([]gddl.IndexDef, 0, len(e.Indexes))
	for _, cols := range e.Indexes {
		idxs = append(idxs, gddl.IndexDef{Columns: cols})
	}

	return gddl.TableDef{
		FQN:         e.Table,
		Columns:     cols,
		ForeignKeys: fks,
		Indexes:     idxs,
	}, nil
}
