package clean

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"ecometl/internal/schema"
)

// DateLayouts is the ordered list of accepted date/datetime formats. The
// first successful parse wins; ISO forms come first, then US, then EU.
var DateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"02/01/2006",
	"02.01.2006",
	"2006/01/02",
}

// Coercer converts raw candidate values to their field's target kind.
// Coercion never fails the record: a value that cannot be typed becomes the
// absent marker and a per-field diagnostic is counted.
type Coercer struct {
	Kinds map[string]schema.Kind

	// Layouts overrides DateLayouts when non-empty.
	Layouts []string
}

// NewCoercer builds a Coercer for an entity using the default layout list.
func NewCoercer(e schema.Entity) Coercer {
	return Coercer{Kinds: e.Kinds()}
}

// Apply coerces every candidate in place. Text fields pass through untouched
// apart from space trimming.
func (c Coercer) Apply(cands Candidates, st *Stats) {
	for field, vals := range cands {
		kind := c.Kinds[field]
		for i, v := range vals {
			if v == nil {
				continue
			}
			coerced, ok := c.coerce(v, kind)
			if !ok {
				vals[i] = nil
				st.CoerceDiags[field]++
				continue
			}
			vals[i] = coerced
		}
	}
}

func (c Coercer) coerce(v any, kind schema.Kind) (any, bool) {
	switch kind {
	case schema.KindInt:
		return coerceInt(v)
	case schema.KindDecimal:
		return coerceDecimal(v)
	case schema.KindBool:
		return coerceBool(v)
	case schema.KindDate, schema.KindDatetime:
		return c.coerceTime(v)
	default:
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s), true
		}
		return v, true
	}
}

func coerceInt(v any) (any, bool) {
	switch t := v.(type) {
	case int64:
		return t, true
	case int:
		return int64(t), true
	case float64:
		return int64(t), true
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n, true
		}
		// 7.0 style numbers still carry an integral value.
		if f, err := t.Float64(); err == nil && f == float64(int64(f)) {
			return int64(f), true
		}
		return nil, false
	case string:
		s := strings.TrimSpace(t)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil && f == float64(int64(f)) {
			return int64(f), true
		}
		return nil, false
	default:
		return nil, false
	}
}

func coerceDecimal(v any) (any, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int64:
		return float64(t), true
	case int:
		return float64(t), true
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return f, true
		}
		return nil, false
	case string:
		s := strings.TrimSpace(t)
		// Tolerate currency-style values like "$19.99" and "1,299.00".
		s = strings.TrimPrefix(s, "$")
		s = strings.ReplaceAll(s, ",", "")
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f, true
		}
		return nil, false
	default:
		return nil, false
	}
}

// coerceBool accepts {1, 0, true, false, yes, no} case-insensitively.
func coerceBool(v any) (any, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case int64:
		if t == 0 || t == 1 {
			return t == 1, true
		}
		return nil, false
	case float64:
		if t == 0 || t == 1 {
			return t == 1, true
		}
		return nil, false
	case json.Number:
		if n, err := t.Int64(); err == nil && (n == 0 || n == 1) {
			return n == 1, true
		}
		return nil, false
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "1", "true", "yes":
			return true, true
		case "0", "false", "no":
			return false, true
		default:
			return nil, false
		}
	default:
		return nil, false
	}
}

func (c Coercer) coerceTime(v any) (any, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		s := strings.TrimSpace(t)
		layouts := c.Layouts
		if len(layouts) == 0 {
			layouts = DateLayouts
		}
		for _, layout := range layouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed, true
			}
		}
		return nil, false
	default:
		return nil, false
	}
}
