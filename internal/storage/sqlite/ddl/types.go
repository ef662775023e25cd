// Package ddl contains SQLite-specific helpers for generating DDL from the
// canonical entity descriptors.
//
// It maps logical field kinds into SQLite column types. The mapping is
// intentionally simple and biased toward common, portable choices.
package ddl

import "ecometl/internal/schema"

// MapType maps a logical field kind into a SQLite column type.
//
// SQLite supports dynamic typing, so this mapping prefers canonical
// affinities:
//   - int      -> INTEGER
//   - bool     -> INTEGER (0/1)
//   - decimal  -> REAL
//   - date/datetime -> TEXT (ISO-8601 strings)
//   - others   -> TEXT
func MapType(kind schema.Kind) string {
	switch kind {
	case schema.KindInt:
		return "INTEGER"
	case schema.KindBool:
		return "INTEGER" // 0/1
	case schema.KindDecimal:
		return "REAL"
	case schema.KindDate, schema.KindDatetime:
		return "TEXT" // store ISO-8601 strings
	default:
		return "TEXT"
	}
}
