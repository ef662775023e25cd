package clean

import (
	"strings"

	"ecometl/pkg/records"
)

// Vocab is the canonical vocabulary for one categorical field: a
// case-insensitive spelling -> canonical value table and the default applied
// to anything outside it. Absent values also receive the default (counted as
// a fill) so every written row carries a canonical category.
type Vocab struct {
	Canon   map[string]string
	Default string
}

// vocab builds a Vocab from canonical values and their accepted alias
// spellings. Every canonical value maps to itself.
func vocab(def string, aliases map[string][]string) Vocab {
	canon := make(map[string]string)
	for value, spellings := range aliases {
		canon[value] = value
		for _, s := range spellings {
			canon[s] = value
		}
	}
	return Vocab{Canon: canon, Default: def}
}

// CustomerEnums, OrderEnums, and ProductEnums are the fixed per-field
// vocabularies for each entity's categorical columns.
var (
	CustomerEnums = map[string]Vocab{
		"status": vocab("inactive", map[string][]string{
			"active":    {"act"},
			"inactive":  {"inact"},
			"suspended": {"sus"},
		}),
		"gender": vocab("other", map[string][]string{
			"male":   {"m"},
			"female": {"f"},
			"other":  {"o"},
		}),
		"segment": vocab("regular", map[string][]string{
			"regular": {"reg"},
			"vip":     {"premium"},
			"new":     {},
		}),
	}

	OrderEnums = map[string]Vocab{
		"status": vocab("pending", map[string][]string{
			"pending":    {"pend"},
			"processing": {"proc"},
			"shipped":    {"ship", "in_transit", "transit"},
			"delivered":  {"deliv"},
			"cancelled":  {"cancel"},
			"returned":   {"ret"},
		}),
		"payment_method": vocab("credit_card", map[string][]string{
			"credit_card":   {"credit"},
			"debit_card":    {"debit"},
			"paypal":        {},
			"bank_transfer": {"transfer"},
			"cash":          {},
		}),
	}

	ProductEnums = map[string]Vocab{
		"category": vocab("other", map[string][]string{
			"electronics": {"elec"},
			"clothing":    {"cloth"},
			"books":       {"book"},
			"sports":      {"sport"},
			"toys":        {"toy"},
			"home":        {},
		}),
	}
)

// Enums canonicalizes categorical fields on a resolved record.
type Enums struct {
	Fields map[string]Vocab
}

// Apply rewrites each configured field to its canonical value. Unrecognized
// spellings fall back to the field default; absent values take the default
// too and are counted as filled.
func (e Enums) Apply(rec records.Record, st *Stats) {
	for field, v := range e.Fields {
		raw, ok := rec[field]
		if !ok || raw == nil {
			rec[field] = v.Default
			st.Filled[field]++
			continue
		}
		s, isStr := raw.(string)
		if !isStr {
			rec[field] = v.Default
			continue
		}
		if canon, hit := v.Canon[strings.ToLower(strings.TrimSpace(s))]; hit {
			rec[field] = canon
			continue
		}
		rec[field] = v.Default
	}
}
