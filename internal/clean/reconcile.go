package clean

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/zeebo/xxh3"

	"ecometl/internal/schema"
	"ecometl/pkg/records"
)

// Reconciler collapses candidate lists into single field values and removes
// duplicate records sharing an identity key.
//
// Field resolution: the first non-absent candidate in alias priority order
// wins; a field whose non-absent candidates disagree counts as a resolved
// conflict. Deduplication: the record with the newest value in the entity's
// recency fields wins; ties and undated records keep the first encountered.
type Reconciler struct {
	Entity schema.Entity
}

// Resolve collapses cands into a record carrying exactly the entity's
// canonical field set, with nil marking absent values.
func (r Reconciler) Resolve(cands Candidates, st *Stats) records.Record {
	rec := make(records.Record, len(r.Entity.Fields))
	for _, f := range r.Entity.Fields {
		vals := cands[f.Name]
		var chosen any
		distinct := 0
		seen := map[string]struct{}{}
		for _, v := range vals {
			if v == nil {
				continue
			}
			if chosen == nil {
				chosen = v
			}
			key := fmt.Sprint(v)
			if _, dup := seen[key]; !dup {
				seen[key] = struct{}{}
				distinct++
			}
		}
		if distinct > 1 {
			st.ConflictsResolved++
		}
		rec[f.Name] = chosen
	}
	return rec
}

// Dedup returns the winning record per identity key, preserving the input
// order of winners. Keys are tracked as xxh3 hashes of the key's string form.
func (r Reconciler) Dedup(in []records.Record, st *Stats) []records.Record {
	return r.dedup(in, st, func(rec records.Record) (uint64, bool) {
		return xxh3.HashString(fmt.Sprint(rec[r.Entity.Key])), true
	})
}

// DedupBy removes records sharing a non-absent value in field, keeping the
// newest by the entity's recency fields. Records with no value in field are
// never treated as duplicates of each other. Comparison folds case and
// surrounding space because scrubbing runs after deduplication.
func (r Reconciler) DedupBy(in []records.Record, field string, st *Stats) []records.Record {
	return r.dedup(in, st, func(rec records.Record) (uint64, bool) {
		v := rec[field]
		if v == nil {
			return 0, false
		}
		return xxh3.HashString(strings.ToLower(strings.TrimSpace(fmt.Sprint(v)))), true
	})
}

func (r Reconciler) dedup(in []records.Record, st *Stats, keyOf func(records.Record) (uint64, bool)) []records.Record {
	type slot struct {
		rec   records.Record
		index int
		ts    time.Time
		dated bool
	}

	winners := make(map[uint64]slot, len(in))
	var unkeyed []slot

	for i, rec := range in {
		ts, dated := r.recency(rec)
		key, keyed := keyOf(rec)
		if !keyed {
			unkeyed = append(unkeyed, slot{rec: rec, index: i, ts: ts, dated: dated})
			continue
		}

		prev, exists := winners[key]
		if !exists {
			winners[key] = slot{rec: rec, index: i, ts: ts, dated: dated}
			continue
		}
		st.DuplicatesRemoved++
		// Strictly newer wins; equal or missing timestamps keep the first.
		if dated && (!prev.dated || ts.After(prev.ts)) {
			winners[key] = slot{rec: rec, index: i, ts: ts, dated: dated}
		}
	}

	slots := unkeyed
	for _, s := range winners {
		slots = append(slots, s)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].index < slots[j].index })

	out := make([]records.Record, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.rec)
	}
	return out
}

// recency returns the record's effective timestamp from the first populated
// recency field.
func (r Reconciler) recency(rec records.Record) (time.Time, bool) {
	for _, field := range r.Entity.Recency {
		if t, ok := rec[field].(time.Time); ok && !t.IsZero() {
			return t, true
		}
	}
	return time.Time{}, false
}
