// Package report builds and serializes the summary artifact for one cleaning
// run. The artifact is the single source of truth for what happened: every
// record read, dropped, filled, or written is accounted for here, and it is
// written exactly once at the end of the run even when rows failed.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"ecometl/internal/clean"
)

// newRunID is a test hook that points to uuid.NewString by default.
var newRunID = uuid.NewString

// DropCounts breaks rows_dropped down by reason.
type DropCounts struct {
	Mapping   int `json:"mapping"`
	Integrity int `json:"integrity"`
	Write     int `json:"write"`
}

// EntitySummary carries the per-entity aggregates from one run.
type EntitySummary struct {
	Entity            string         `json:"entity"`
	RowsRead          int            `json:"rows_read"`
	RowsDropped       DropCounts     `json:"rows_dropped"`
	UnmappedKeys      int            `json:"unmapped_keys"`
	DuplicatesRemoved int            `json:"duplicates_removed"`
	ConflictsResolved int            `json:"conflicts_resolved"`
	NullsNormalized   map[string]int `json:"nulls_normalized"`
	NullsFilled       map[string]int `json:"nulls_filled"`
	CoercionDiags     map[string]int `json:"coercion_diagnostics"`
	RowsWritten       int            `json:"rows_written"`
}

// Summary is the run-level artifact serialized to JSON.
type Summary struct {
	RunID      string          `json:"run_id"`
	Job        string          `json:"job"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at"`
	Entities   []EntitySummary `json:"entities"`

	TotalRowsRead    int `json:"total_rows_read"`
	TotalRowsDropped int `json:"total_rows_dropped"`
	TotalRowsWritten int `json:"total_rows_written"`
}

// New starts a Summary for the named job with a fresh run id.
func New(job string, startedAt time.Time) *Summary {
	return &Summary{
		RunID:     newRunID(),
		Job:       job,
		StartedAt: startedAt.UTC(),
	}
}

// Add folds one entity's cleaning counters into the summary.
func (s *Summary) Add(st *clean.Stats) {
	es := EntitySummary{
		Entity:   st.Entity,
		RowsRead: st.RowsRead,
		RowsDropped: DropCounts{
			Mapping:   st.DroppedMapping,
			Integrity: st.DroppedIntegrity,
			Write:     st.DroppedWrite,
		},
		UnmappedKeys:      st.UnmappedKeys,
		DuplicatesRemoved: st.DuplicatesRemoved,
		ConflictsResolved: st.ConflictsResolved,
		NullsNormalized:   st.Sentinels,
		NullsFilled:       st.Filled,
		CoercionDiags:     st.CoerceDiags,
		RowsWritten:       st.RowsWritten,
	}
	s.Entities = append(s.Entities, es)
	s.TotalRowsRead += st.RowsRead
	s.TotalRowsDropped += st.Dropped()
	s.TotalRowsWritten += st.RowsWritten
}

// Finish stamps the completion time.
func (s *Summary) Finish(at time.Time) {
	s.FinishedAt = at.UTC()
}

// MarshalIndent renders the summary as indented JSON. Map keys serialize in
// sorted order, so two runs over unchanged inputs produce identical bytes
// apart from run id and timestamps.
func (s *Summary) MarshalIndent() ([]byte, error) {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("report: marshal: %w", err)
	}
	return append(b, '\n'), nil
}

// WriteFile writes the summary artifact to path.
func (s *Summary) WriteFile(path string) error {
	b, err := s.MarshalIndent()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("report: write %s: %w", path, err)
	}
	return nil
}
