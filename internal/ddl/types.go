package ddl

// ColumnDef describes a single column in a table definition produced or
// consumed by ddl. It intentionally uses simple, database-agnostic fields.
//
// Fields:
//   - Name: logical column name (unquoted; quoting/escaping happens at render time)
//   - SQLType: target SQL type (e.g., TEXT, INTEGER, TIMESTAMPTZ)
//   - Nullable: whether NULL is allowed
//   - PrimaryKey: whether the column is part of the primary key
//   - Default: raw default expression (e.g., 'pending', CURRENT_TIMESTAMP)
type ColumnDef struct {
	Name       string
	SQLType    string
	Nullable   bool
	PrimaryKey bool
	Default    string
}

// ForeignKeyDef describes a single-column foreign key constraint: Column in
// this table references RefColumn in RefTable.
type ForeignKeyDef struct {
	Column    string
	RefTable  string
	RefColumn string
}

// IndexDef describes a secondary index over one or more columns of a table.
// Name may be empty, in which case renderers derive one from the table and
// column names.
type IndexDef struct {
	Name    string
	Columns []string
}

// TableDef holds the table name and an ordered list of columns, plus any
// foreign key constraints and secondary indexes. The name is expected in
// dotted form when schema-qualified (e.g., "schema.table") and will be
// quoted/escaped by renderers as needed.
type TableDef struct {
	FQN         string
	Columns     []ColumnDef
	ForeignKeys []ForeignKeyDef
	Indexes     []IndexDef
}
