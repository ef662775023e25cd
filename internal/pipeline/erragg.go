package pipeline

import (
	"log"
	"sync"
)

// errAgg aggregates row-level error messages so a noisy run cannot flood the
// log: only the first N messages are retained, with a total count.
type errAgg struct {
	mu    sync.Mutex
	limit int
	count int
	first []string
}

func newErrAgg(limit int) *errAgg {
	return &errAgg{limit: limit}
}

func (a *errAgg) add(msg string) {
	a.mu.Lock()
	if a.count < a.limit {
		a.first = append(a.first, msg)
	}
	a.count++
	a.mu.Unlock()
}

// logSummary prints the aggregated messages under the given heading.
func (a *errAgg) logSummary(heading string) {
	if a.count == 0 {
		return
	}
	log.Printf("%s: %d (showing first %d)", heading, a.count, len(a.first))
	for i, s := range a.first {
		log.Printf("  #%03d: %s", i+1, s)
	}
}
