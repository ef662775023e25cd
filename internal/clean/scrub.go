package clean

import (
	"strings"

	"ecometl/pkg/records"
)

// Scrubbers are single-field string normalizers applied after reconciliation:
// the value is already chosen, so the scrub only has to tidy its spelling.
type Scrubbers map[string]func(string) string

// CustomerScrub and ProductScrub list the per-field scrubbers for each entity.
var (
	CustomerScrub = Scrubbers{
		"email": strings.ToLower,
		"phone": phoneDigits,
	}

	ProductScrub = Scrubbers{
		"brand": func(s string) string { return strings.ToLower(strings.TrimSpace(s)) },
	}
)

// Apply runs each configured scrubber against its field when the value is a
// non-absent string.
func (sc Scrubbers) Apply(rec records.Record) {
	for field, fn := range sc {
		if s, ok := rec[field].(string); ok {
			rec[field] = fn(s)
		}
	}
}

// phoneDigits strips everything but digits and a leading-style '+' from a
// phone number.
func phoneDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '+' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
