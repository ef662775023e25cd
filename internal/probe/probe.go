// Package probe profiles a raw feed before it enters the cleaning pipeline:
// which columns exist, how many values are null-sentinels, and what type each
// column looks like. The output is meant for a human deciding how dirty a new
// feed is and which aliases or layouts the schema needs.
package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"ecometl/internal/clean"
	"ecometl/internal/config"
	"ecometl/internal/datasource"
	csvparser "ecometl/internal/parser/csv"
	jsonparser "ecometl/internal/parser/json"
	"ecometl/pkg/records"
)

// sampleCap bounds the distinct raw values retained per column.
const sampleCap = 5

// ColumnStat aggregates one source column across all sampled rows.
type ColumnStat struct {
	Column    string         `json:"column"`
	Present   int            `json:"present"`
	Sentinels int            `json:"sentinels"`
	Kinds     map[string]int `json:"kinds"`
	Samples   []string       `json:"samples"`
}

// Guess returns the most frequently observed kind for the column, breaking
// ties toward "text".
func (c ColumnStat) Guess() string {
	best, n := "text", 0
	for kind, votes := range c.Kinds {
		if votes > n || (votes == n && kind == "text") {
			best, n = kind, votes
		}
	}
	return best
}

// Profile is the result of probing one feed.
type Profile struct {
	Source  string       `json:"source"`
	Rows    int          `json:"rows"`
	Skipped int          `json:"skipped"`
	Columns []ColumnStat `json:"columns"`
}

// openSource is a test hook mirroring the pipeline's extract seam.
var openSource = func(ctx context.Context, cfg config.Source) (io.ReadCloser, error) {
	src, err := datasource.New(cfg)
	if err != nil {
		return nil, err
	}
	return src.Open(ctx)
}

// Feed opens and parses one configured source and profiles its records.
func Feed(ctx context.Context, cfg config.Source) (*Profile, error) {
	rc, err := openSource(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	switch cfg.Format {
	case "json":
		recs, err := jsonparser.DecodeAll(rc, jsonparser.FromConfigOptions(cfg.Options))
		if err != nil {
			return nil, fmt.Errorf("probe: parse json: %w", err)
		}
		return Records(cfg.Path, recs, 0), nil
	case "csv":
		recs, skipped, err := csvparser.NewParser(csvparser.FromConfigOptions(cfg.Options)).Parse(rc)
		if err != nil {
			return nil, fmt.Errorf("probe: parse csv: %w", err)
		}
		return Records(cfg.Path, recs, skipped), nil
	default:
		return nil, fmt.Errorf("probe: unsupported format %q", cfg.Format)
	}
}

// Records profiles an already-parsed record set.
func Records(source string, recs []records.Record, skipped int) *Profile {
	stats := map[string]*ColumnStat{}
	seen := map[string]map[string]struct{}{}

	for _, rec := range recs {
		for col, v := range rec {
			st, ok := stats[col]
			if !ok {
				st = &ColumnStat{Column: col, Kinds: map[string]int{}}
				stats[col] = st
				seen[col] = map[string]struct{}{}
			}
			if v == nil {
				continue
			}
			st.Present++
			if clean.IsSentinel(v) {
				st.Sentinels++
				continue
			}
			raw := rawString(v)
			st.Kinds[guessKind(raw)]++
			if _, dup := seen[col][raw]; !dup && len(st.Samples) < sampleCap {
				seen[col][raw] = struct{}{}
				st.Samples = append(st.Samples, raw)
			}
		}
	}

	p := &Profile{Source: source, Rows: len(recs), Skipped: skipped}
	for _, st := range stats {
		p.Columns = append(p.Columns, *st)
	}
	sort.Slice(p.Columns, func(i, j int) bool { return p.Columns[i].Column < p.Columns[j].Column })
	return p
}

// rawString renders a parsed value back into its approximate source form.
func rawString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	default:
		return fmt.Sprintf("%v", t)
	}
}

// guessKind classifies one raw value. Date layouts follow the cleaning
// pipeline's accepted list so the probe and the coercer agree.
func guessKind(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "text"
	}
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return "int"
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return "decimal"
	}
	switch strings.ToLower(s) {
	case "true", "false", "yes", "no":
		return "bool"
	}
	for _, layout := range clean.DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && !strings.ContainsAny(s, ": T") {
				return "date"
			}
			return "datetime"
		}
	}
	return "text"
}

// WriteTable renders the profile as an aligned text table.
func (p *Profile) WriteTable(w io.Writer) error {
	fmt.Fprintf(w, "source=%s rows=%d skipped=%d\n", p.Source, p.Rows, p.Skipped)
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "COLUMN\tKIND\tPRESENT\tSENTINELS\tSAMPLES")
	for _, c := range p.Columns {
		fmt.Fprintf(tw, "%s\t%s\t%d/%d\t%d\t%s\n",
			c.Column, c.Guess(), c.Present, p.Rows, c.Sentinels, strings.Join(c.Samples, ", "))
	}
	return tw.Flush()
}

// WriteJSON renders the profile as indented JSON.
func (p *Profile) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}
