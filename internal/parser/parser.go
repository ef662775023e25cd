// Package parser defines the record-oriented parsing contract shared by the
// format-specific subpackages.
package parser

import (
	"io"

	"ecometl/pkg/records"
)

// Parser turns a raw byte stream into records. The int return is the number
// of malformed rows skipped along the way.
type Parser interface {
	Parse(r io.Reader) ([]records.Record, int, error)
}
