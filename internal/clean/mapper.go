// Package clean implements the normalization core of the pipeline: field
// mapping, null-sentinel normalization, type coercion, enum normalization,
// per-field scrubbing, and record reconciliation. Each stage is a small,
// separately testable value configured from a schema.Entity descriptor; the
// pipeline package chains them per entity.
package clean

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"ecometl/internal/schema"
	"ecometl/pkg/records"
)

// Candidates holds, for every canonical field of an entity, the raw values
// found under the field's source spellings, ordered by alias priority
// (canonical column first). A field with no slice entries is absent; the
// reconciler collapses each slice to a single value.
type Candidates map[string][]any

// MappingError reports a record that carries none of the source spellings of
// a required canonical field and therefore cannot be keyed.
type MappingError struct {
	Entity string
	Field  string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("map %s: no source column for required field %q", e.Entity, e.Field)
}

// Mapper resolves raw source columns onto an entity's canonical field set.
// It is safe for reuse across records; build one per entity per run.
type Mapper struct {
	entity schema.Entity

	// folded source key -> (canonical field, candidate priority)
	index map[string]aliasSlot
}

type aliasSlot struct {
	field    string
	priority int
}

// NewMapper builds a Mapper for the given entity descriptor.
func NewMapper(e schema.Entity) *Mapper {
	idx := make(map[string]aliasSlot)
	for _, f := range e.Fields {
		idx[FoldKey(f.Name)] = aliasSlot{field: f.Name, priority: 0}
		for i, a := range f.Aliases {
			idx[FoldKey(a)] = aliasSlot{field: f.Name, priority: i + 1}
		}
	}
	return &Mapper{entity: e, index: idx}
}

// Map resolves a raw record into per-field candidate lists keyed by the
// entity's canonical field set. Source keys are folded before lookup, so
// header casing, spacing, and diacritics do not matter. Keys that resolve to
// no canonical field are dropped and counted on st.
//
// A record missing every source spelling of a required field is rejected
// with a *MappingError; callers drop it and count the reason.
func (m *Mapper) Map(raw records.Record, st *Stats) (Candidates, error) {
	// Fixed-size scratch per field: slot i holds the candidate at priority i.
	scratch := make(map[string][]any, len(m.entity.Fields))

	for key, val := range raw {
		slot, ok := m.index[FoldKey(key)]
		if !ok {
			st.UnmappedKeys++
			continue
		}
		f, _ := m.entity.Field(slot.field)
		s := scratch[slot.field]
		if s == nil {
			s = make([]any, len(f.Aliases)+1)
			scratch[slot.field] = s
		}
		s[slot.priority] = val
	}

	out := make(Candidates, len(m.entity.Fields))
	for _, f := range m.entity.Fields {
		var cands []any
		for _, v := range scratch[f.Name] {
			if v != nil {
				cands = append(cands, v)
			}
		}
		if f.Required && len(cands) == 0 {
			return nil, &MappingError{Entity: m.entity.Name, Field: f.Name}
		}
		out[f.Name] = cands
	}
	return out, nil
}

// FoldKey normalizes a source column name for alias lookup: Unicode combining
// marks are stripped, the result is lowercased, and runs of spaces become
// single underscores.
func FoldKey(s string) string {
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(strings.TrimSpace(folded))
	return strings.Join(strings.Fields(folded), "_")
}
