// Package config defines the canonical, JSON-serializable configuration model
// for the cleaning pipeline. It is intentionally small, explicit, and
// dependency-free so that run specs can be loaded from disk and passed through
// the program without additional glue code.
//
// Example (trimmed):
//
//	{
//	  "job": "ecom-clean",
//	  "sources": {
//	    "customers":      { "kind": "file", "format": "json", "path": "customers_messy_data.json" },
//	    "orders":         { "kind": "file", "format": "csv",  "path": "orders_unstructured_data.csv" },
//	    "products":       { "kind": "file", "format": "json", "path": "products_inconsistent_data.json" },
//	    "reconciliation": { "kind": "file", "format": "csv",  "path": "reconciliation_challenge_data.csv" }
//	  },
//	  "storage": { "kind": "sqlite", "db": { "dsn": "file:cleaned_data.sqlite?_fk=1", "auto_create_table": true } },
//	  "report":  { "path": "etl_summary_report.json" }
//	}
package config

import "encoding/json"

// Pipeline describes one full cleaning run. It is the top-level object
// decoded from a run spec file.
type Pipeline struct {
	// Job names the run for logs and metrics labeling.
	Job string `json:"job"`

	// Sources locates the four raw feeds.
	Sources Sources `json:"sources"`

	// Storage describes where cleaned records are written.
	Storage Storage `json:"storage"`

	// Report configures the summary artifact.
	Report Report `json:"report"`
}

// Sources holds one Source per raw feed. All four are required.
type Sources struct {
	Customers      Source `json:"customers"`
	Orders         Source `json:"orders"`
	Products       Source `json:"products"`
	Reconciliation Source `json:"reconciliation"`
}

// Source identifies one raw input. Additional kinds can be added over time.
type Source struct {
	// Kind selects the source implementation: "file" or "http".
	Kind string `json:"kind"`

	// Path is the local filesystem path to the input file, or the URL for
	// http sources.
	Path string `json:"path"`

	// Format selects the parser: "json" or "csv".
	Format string `json:"format"`

	// Options is a free-form map interpreted by the parser implementation.
	// For CSV, typical keys include: has_header (bool), comma (string),
	// trim_space (bool), header_map (object). For JSON: allow_arrays (bool).
	Options Options `json:"options"`
}

// Storage selects the sink used to persist cleaned records.
type Storage struct {
	// Kind selects the storage backend registered with the factory
	// (e.g. "sqlite", "postgres").
	Kind string `json:"kind"`

	DB DBConfig `json:"db"`
}

// DBConfig configures the database sink. Table names and column sets are
// fixed by the target schema and are not configurable.
type DBConfig struct {
	// DSN is the backend connection string, e.g. a SQLite file path or a
	// postgresql:// URL.
	DSN string `json:"dsn"`

	// AutoCreateTable recreates the destination tables before loading.
	AutoCreateTable bool `json:"auto_create_table"`
}

// Report configures the summary artifact location.
type Report struct {
	// Path is where the JSON summary is written. Empty defaults to
	// "etl_summary_report.json" in the working directory.
	Path string `json:"path"`
}

// Options is a small helper to fetch typed values from arbitrary JSON maps
// without introducing third-party configuration libraries. It purposefully
// performs only minimal type coercion and returns provided defaults when a
// key is absent or of an unexpected type.
type Options map[string]any

// String returns the string value for key or def if key is missing or not a string.
func (o Options) String(key, def string) string {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// Bool returns the bool value for key or def if key is missing or not a bool.
func (o Options) Bool(key string, def bool) bool {
	if v, ok := o[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// Rune returns the first rune of a string value for key, or def if key is
// missing or empty. This is useful for single-character parser settings such
// as a CSV delimiter.
func (o Options) Rune(key string, def rune) rune {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok && len(s) > 0 {
			return []rune(s)[0]
		}
	}
	return def
}

// Int returns the integer value for key or def if key is missing or not a
// number. JSON numbers decode as float64; fractional values are truncated.
func (o Options) Int(key string, def int) int {
	if v, ok := o[key]; ok {
		switch n := v.(type) {
		case float64:
			return int(n)
		case int:
			return n
		}
	}
	return def
}

// StringMap returns a map[string]string for key when the value is an object
// whose values are strings. Non-string values are ignored. Returns an empty
// map when the key is missing or the value is not an object.
func (o Options) StringMap(key string) map[string]string {
	res := map[string]string{}
	if v, ok := o[key]; ok {
		if m, ok := v.(map[string]any); ok {
			for k, vv := range m {
				if s, ok := vv.(string); ok {
					res[k] = s
				}
			}
		}
	}
	return res
}

// UnmarshalJSON implements json.Unmarshaler so that a missing or null
// "options" object in JSON decodes to a non-nil, empty Options map. This
// simplifies call sites by removing the need to nil-check Options values.
func (o *Options) UnmarshalJSON(b []byte) error {
	var tmp map[string]any
	if len(b) == 0 || string(b) == "null" {
		*o = Options{}
		return nil
	}
	if err := json.Unmarshal(b, &tmp); err != nil {
		return err
	}
	*o = Options(tmp)
	return nil
}
