// Package schema defines the canonical target model for the cleaning
// pipeline: one Entity descriptor per destination table, carrying the fixed
// field set, per-field kinds, and the alias tables that map inconsistent
// source column names onto canonical fields.
//
// The descriptors are the single source of truth consumed by the field
// mapper, the type coercer, the reconciler, and the DDL bootstrap. Everything
// downstream of the mapper operates on this fixed, statically known shape.
package schema

// Kind is the target semantic type of a canonical field.
type Kind string

const (
	KindText     Kind = "text"
	KindInt      Kind = "int"
	KindDecimal  Kind = "decimal"
	KindBool     Kind = "bool"
	KindDate     Kind = "date"
	KindDatetime Kind = "datetime"
)

// Field describes one canonical field of an entity.
//
// Aliases lists source column synonyms in priority order; the canonical name
// itself is always the highest-priority candidate and is not repeated here.
type Field struct {
	Name     string
	Kind     Kind
	Aliases  []string
	Required bool // identity fields; a record without any candidate is dropped
}

// ForeignKey declares that a field references another entity's key.
type ForeignKey struct {
	Field    string
	RefTable string
	RefField string
}

// Entity describes one destination table and its canonical field set.
type Entity struct {
	Name  string // logical entity name ("customers", ...)
	Table string // destination table name
	Key   string // identity field

	// Recency lists the fields consulted, in order, when duplicate identity
	// keys must be reconciled: the record with the newest value in the first
	// populated recency field wins.
	Recency []string

	Fields []Field

	// ForeignKeys are rendered as FK constraints by the DDL bootstrap and
	// enforced ahead of the database by the schema writer.
	ForeignKeys []ForeignKey

	// Indexes lists column sets that get a secondary index.
	Indexes [][]string
}

// Columns returns the canonical column names in declaration order.
func (e Entity) Columns() []string {
	cols := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		cols[i] = f.Name
	}
	return cols
}

// Kinds returns a field name to kind lookup for the coercer.
func (e Entity) Kinds() map[string]Kind {
	out := make(map[string]Kind, len(e.Fields))
	for _, f := range e.Fields {
		out[f.Name] = f.Kind
	}
	return out
}

// Field returns the descriptor for a canonical field name.
func (e Entity) Field(name string) (Field, bool) {
	for _, f := range e.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// WithAliases returns a copy of the entity whose alias tables are replaced by
// the provided map (canonical field -> source synonyms). Fields absent from
// the map keep no aliases. This supports sources that feed an entity through
// an entirely different column vocabulary, such as the reconciliation feed.
func (e Entity) WithAliases(aliases map[string][]string) Entity {
	fields := make([]Field, len(e.Fields))
	for i, f := range e.Fields {
		f.Aliases = aliases[f.Name]
		fields[i] = f
	}
	out := e
	out.Fields = fields
	return out
}
