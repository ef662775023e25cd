// Package records defines the generic record shape exchanged between parsers
// and the cleaning stages. A Record is a loose key/value map; canonical,
// typed structure is imposed downstream by the schema and clean packages.
package records

// Record is a single parsed row keyed by source column name. Values are raw
// parser output: string, json.Number, bool, nil, or already-coerced Go types
// later in the pipeline.
type Record map[string]any
