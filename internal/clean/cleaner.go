package clean

import (
	"ecometl/internal/schema"
	"ecometl/pkg/records"
)

// Cleaner chains the per-record stages for one entity. Resolve runs the
// record-shaping stages (map, nulls, coerce, reconcile fields); Finish runs
// the set-level stages (dedup, scrub, enums, defaults). The two are split so
// the pipeline can merge records from several sources, as with the
// reconciliation feed, before deduplication.
type Cleaner struct {
	Mapper     *Mapper
	Nulls      Nulls
	Coercer    Coercer
	Reconciler Reconciler
	Scrub      Scrubbers
	Enums      Enums
	Defaults   map[string]any
	DedupAlso  []string
}

// Config carries the entity-specific normalization tables for a Cleaner.
type Config struct {
	Enums    map[string]Vocab
	Scrub    Scrubbers
	Defaults map[string]any

	// DedupAlso lists alternate-identity fields deduplicated before the key
	// pass, as customers are with email.
	DedupAlso []string
}

// NewCleaner builds a Cleaner for the entity with the given tables.
func NewCleaner(e schema.Entity, cfg Config) *Cleaner {
	return &Cleaner{
		Mapper:     NewMapper(e),
		Coercer:    NewCoercer(e),
		Reconciler: Reconciler{Entity: e},
		Scrub:      cfg.Scrub,
		Enums:      Enums{Fields: cfg.Enums},
		Defaults:   cfg.Defaults,
		DedupAlso:  cfg.DedupAlso,
	}
}

// Resolve maps, null-normalizes, coerces, and field-reconciles each raw
// record. Records without a usable identity key are dropped and counted.
func (c *Cleaner) Resolve(in []records.Record, st *Stats) []records.Record {
	out := make([]records.Record, 0, len(in))
	for _, raw := range in {
		st.RowsRead++
		cands, err := c.Mapper.Map(raw, st)
		if err != nil {
			st.DroppedMapping++
			continue
		}
		c.Nulls.Apply(cands, st)
		c.Coercer.Apply(cands, st)
		rec := c.Reconciler.Resolve(cands, st)
		// A key that dissolved into a sentinel or failed coercion leaves the
		// record unidentifiable.
		if rec[c.Reconciler.Entity.Key] == nil {
			st.DroppedMapping++
			continue
		}
		out = append(out, rec)
	}
	return out
}

// Finish deduplicates by any alternate-identity fields and then by identity
// key, then scrubs, canonicalizes enums, and fills defaults on the surviving
// records.
func (c *Cleaner) Finish(recs []records.Record, st *Stats) []records.Record {
	for _, field := range c.DedupAlso {
		recs = c.Reconciler.DedupBy(recs, field, st)
	}
	recs = c.Reconciler.Dedup(recs, st)
	for _, rec := range recs {
		c.Scrub.Apply(rec)
		c.Enums.Apply(rec, st)
	}
	ApplyDefaults(recs, c.Defaults, st)
	return recs
}
