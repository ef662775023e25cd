// Package ddl contains Postgres-specific helpers for generating DDL from the
// canonical entity descriptors.
package ddl

import "ecometl/internal/schema"

// MapType maps a logical field kind into a Postgres column type.
func MapType(kind schema.Kind) string {
	switch kind {
	case schema.KindInt:
		return "BIGINT"
	case schema.KindBool:
		return "BOOLEAN"
	case schema.KindDecimal:
		return "NUMERIC"
	case schema.KindDate:
		return "DATE"
	case schema.KindDatetime:
		return "TIMESTAMPTZ"
	default:
		return "TEXT"
	}
}
