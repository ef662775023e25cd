// Package json implements a JSON parser that turns JSON documents into
// records.Record maps.
//
// The customer and product feeds arrive as a single top-level array of
// objects; newline-delimited objects after the root value are tolerated as
// well, which keeps the parser usable for NDJSON exports. Numbers are decoded
// as json.Number so the type coercer decides their final representation.
package json

import (
	"encoding/json"
	"fmt"
	"io"

	"ecometl/internal/config"
	"ecometl/pkg/records"
)

// Options configures the JSON parser.
type Options struct {
	// AllowArrays accepts a top-level JSON array of objects. The raw entity
	// feeds use this shape.
	AllowArrays bool
}

// FromConfigOptions constructs JSON Options from a generic config.Options map
// (the same one used by the csv parser).
func FromConfigOptions(o config.Options) Options {
	return Options{
		AllowArrays: o.Bool("allow_arrays", true),
	}
}

// Decoder wraps encoding/json.Decoder to provide a record-oriented API.
type Decoder struct {
	dec *json.Decoder
	opt Options
}

// NewDecoder constructs a Decoder from an io.Reader and JSON Options.
func NewDecoder(r io.Reader, opt Options) *Decoder {
	d := json.NewDecoder(r)
	d.UseNumber()
	return &Decoder{dec: d, opt: opt}
}

// Next reads the next top-level JSON object and converts it into a
// records.Record. Non-object values are skipped. EOF is returned when the
// stream is exhausted.
func (d *Decoder) Next() (records.Record, error) {
	for {
		var raw any
		if err := d.dec.Decode(&raw); err != nil {
			if err == io.EOF {
				return nil, io.EOF
			}
			return nil, fmt.Errorf("json parser: decode: %w", err)
		}
		if m, ok := raw.(map[string]any); ok {
			return records.Record(m), nil
		}
	}
}

// DecodeAll reads all objects from r and returns them as records. When
// opt.AllowArrays is true and r holds a single top-level JSON array of
// objects, the array is expanded into individual records.
func DecodeAll(r io.Reader, opt Options) ([]records.Record, error) {
	d := json.NewDecoder(r)
	d.UseNumber()

	var root any
	if err := d.Decode(&root); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("json parser: decode root: %w", err)
	}

	var out []records.Record
	switch v := root.(type) {
	case map[string]any:
		out = append(out, records.Record(v))

	case []any:
		if !opt.AllowArrays {
			return nil, fmt.Errorf("json parser: top-level array encountered but allow_arrays=false")
		}
		for i, elem := range v {
			obj, ok := elem.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("json parser: element %d in array is not an object", i)
			}
			out = append(out, records.Record(obj))
		}

	default:
		return nil, fmt.Errorf("json parser: unsupported top-level JSON type %T", v)
	}

	// Consume trailing NDJSON content, if any.
	dec := NewDecoder(d.Buffered(), opt)
	for {
		rec, err := dec.Next()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		out = append(out, rec)
	}

	return out, nil
}
