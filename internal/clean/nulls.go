package clean

import "strings"

// nullSentinels are the recognized "no data" spellings, compared after
// trimming and lowercasing. The empty string is the canonical member.
var nullSentinels = map[string]struct{}{
	"":     {},
	"null": {},
	"n/a":  {},
	"na":   {},
	"none": {},
	"nan":  {},
}

// IsSentinel reports whether v is a null-sentinel: nil, or a string whose
// trimmed, lowercased form is in the sentinel set.
func IsSentinel(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	if !ok {
		return false
	}
	_, hit := nullSentinels[strings.ToLower(strings.TrimSpace(s))]
	return hit
}

// Nulls replaces null-sentinel spellings with the absent marker (nil). It
// runs on raw candidates ahead of coercion so a sentinel can never be
// mis-coerced into a typed value, and it is idempotent: nil maps to nil.
type Nulls struct{}

// Apply scans every candidate of every field, nils out sentinels, and counts
// each replacement on st (nil inputs are already absent and are not counted).
func (Nulls) Apply(c Candidates, st *Stats) {
	for field, cands := range c {
		for i, v := range cands {
			if v == nil {
				continue
			}
			if IsSentinel(v) {
				cands[i] = nil
				st.Sentinels[field]++
			}
		}
	}
}
