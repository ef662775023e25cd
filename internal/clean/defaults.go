package clean

import (
	"sort"

	"ecometl/pkg/records"
)

// OrderDefaults and ProductDefaults fill documented per-field defaults into
// absent values after reconciliation. Each fill is counted so the summary
// report can account for it.
var (
	OrderDefaults = map[string]any{
		"quantity": int64(1),
	}

	ProductDefaults = map[string]any{
		"stock_quantity": int64(0),
		"reorder_level":  int64(10),
		"is_active":      true,
	}
)

// ApplyDefaults fills absent fields with their configured default across all
// records, counting each fill per field.
func ApplyDefaults(recs []records.Record, defaults map[string]any, st *Stats) {
	if len(defaults) == 0 {
		return
	}
	for _, rec := range recs {
		for field, def := range defaults {
			if rec[field] == nil {
				rec[field] = def
				st.Filled[field]++
			}
		}
	}
}

// ImputeMedianAge fills absent customer ages with the dataset median, but
// only when the median falls in the plausible [18, 80] range.
func ImputeMedianAge(recs []records.Record, st *Stats) {
	var ages []int64
	for _, rec := range recs {
		if n, ok := rec["age"].(int64); ok {
			ages = append(ages, n)
		}
	}
	if len(ages) == 0 {
		return
	}
	sort.Slice(ages, func(i, j int) bool { return ages[i] < ages[j] })
	median := ages[len(ages)/2]
	if median < 18 || median > 80 {
		return
	}
	for _, rec := range recs {
		if rec["age"] == nil {
			rec["age"] = median
			st.Filled["age"]++
		}
	}
}
