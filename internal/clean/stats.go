package clean

// Stats accumulates per-entity cleaning counters across all stages of a run.
// The pipeline hands one Stats per entity to every stage and the report
// package folds them into the summary artifact.
type Stats struct {
	Entity string

	RowsRead         int // raw records entering the mapper
	DroppedMapping   int // records rejected with a MappingError
	DroppedIntegrity int // orders referencing unknown customers/products
	DroppedWrite     int // row-level storage failures

	UnmappedKeys      int // source columns with no canonical field, dropped
	DuplicatesRemoved int
	ConflictsResolved int // fields where redundant source columns disagreed

	Sentinels   map[string]int // per field: null-sentinel spellings normalized
	Filled      map[string]int // per field: absent values filled with a default
	CoerceDiags map[string]int // per field: values that could not be typed

	RowsWritten int
}

// NewStats returns a Stats with all per-field maps initialized.
func NewStats(entity string) *Stats {
	return &Stats{
		Entity:      entity,
		Sentinels:   map[string]int{},
		Filled:      map[string]int{},
		CoerceDiags: map[string]int{},
	}
}

// Dropped returns the total number of records dropped for any reason.
func (s *Stats) Dropped() int {
	return s.DroppedMapping + s.DroppedIntegrity + s.DroppedWrite
}
