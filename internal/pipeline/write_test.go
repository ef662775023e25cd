package pipeline

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"ecometl/internal/bitmap"
	"ecometl/internal/clean"
	"ecometl/internal/schema"
	"ecometl/internal/storage"
	"ecometl/pkg/records"
)

// fakeRepo is an in-memory Repository that can reject individual rows.
type fakeRepo struct {
	mu     sync.Mutex
	tables map[string][][]any
	stmts  []string
	reject func(table string, row []any) error
	closed bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{tables: map[string][][]any{}}
}

func (f *fakeRepo) InsertRows(_ context.Context, table string, _ []string, rows [][]any) (int64, []storage.RowError, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	var rowErrs []storage.RowError
	for i, row := range rows {
		if f.reject != nil {
			if err := f.reject(table, row); err != nil {
				rowErrs = append(rowErrs, storage.RowError{Index: i, Err: err})
				continue
			}
		}
		f.tables[table] = append(f.tables[table], row)
		n++
	}
	return n, rowErrs, nil
}

func (f *fakeRepo) Exec(_ context.Context, sql string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stmts = append(f.stmts, sql)
	return nil
}

func (f *fakeRepo) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

func TestFormatValue(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)
	tests := []struct {
		name string
		in   any
		kind schema.Kind
		want any
	}{
		{"date", ts, schema.KindDate, "2024-03-15"},
		{"datetime", ts, schema.KindDatetime, "2024-03-15 09:30:00"},
		{"int passthrough", int64(7), schema.KindInt, int64(7)},
		{"nil passthrough", nil, schema.KindText, nil},
		{"string passthrough", "ok", schema.KindText, "ok"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := formatValue(tt.in, tt.kind); got != tt.want {
				t.Fatalf("formatValue(%v, %v) = %v, want %v", tt.in, tt.kind, got, tt.want)
			}
		})
	}
}

func TestRowsFromRecordsColumnOrder(t *testing.T) {
	t.Parallel()

	recs := []records.Record{{
		"order_id":    "O-1",
		"customer_id": int64(7),
		"product_id":  "P-1",
		"order_date":  time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	}}
	rows := rowsFromRecords(schema.Orders, recs)
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	cols := schema.Orders.Columns()
	if len(rows[0]) != len(cols) {
		t.Fatalf("row width = %d, want %d", len(rows[0]), len(cols))
	}
	byCol := map[string]any{}
	for i, c := range cols {
		byCol[c] = rows[0][i]
	}
	if byCol["order_id"] != "O-1" || byCol["customer_id"] != int64(7) {
		t.Fatalf("identity columns misplaced: %v", byCol)
	}
	if byCol["order_date"] != "2024-01-02" {
		t.Fatalf("order_date = %v, want 2024-01-02", byCol["order_date"])
	}
	if byCol["notes"] != nil {
		t.Fatalf("absent field should stay nil, got %v", byCol["notes"])
	}
}

func TestWriteEntityCountsRejections(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	repo.reject = func(_ string, row []any) error {
		if row[0] == int64(8) {
			return errors.New("constraint failed")
		}
		return nil
	}

	recs := []records.Record{
		{"customer_id": int64(7)},
		{"customer_id": int64(8)},
		{"customer_id": int64(9)},
	}
	st := clean.NewStats("customers")
	agg := newErrAgg(10)

	failed, err := writeEntity(context.Background(), "test-clean", repo, schema.Customers, recs, st, agg)
	if err != nil {
		t.Fatalf("writeEntity: %v", err)
	}
	if st.RowsWritten != 2 || st.DroppedWrite != 1 {
		t.Fatalf("written=%d dropped=%d, want 2/1", st.RowsWritten, st.DroppedWrite)
	}
	if !failed.Has(1) || failed.Count() != 1 {
		t.Fatalf("failed rows = %d set, want index 1 only", failed.Count())
	}
	if agg.count != 1 {
		t.Fatalf("agg.count = %d, want 1", agg.count)
	}
}

func TestWriteEntityAllRowsRejected(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	repo.reject = func(string, []any) error { return errors.New("no") }

	recs := []records.Record{{"customer_id": int64(1)}}
	st := clean.NewStats("customers")

	_, err := writeEntity(context.Background(), "test-clean", repo, schema.Customers, recs, st, newErrAgg(5))
	if err == nil {
		t.Fatal("expected error for a fully rejected entity set")
	}
}

func TestKeySetSkipsFailedRows(t *testing.T) {
	t.Parallel()

	recs := []records.Record{
		{"customer_id": int64(1)},
		{"customer_id": int64(2)},
		{"customer_id": nil},
	}
	failed := bitmap.New(len(recs))
	failed.Add(1)
	keys := keySet(schema.Customers, recs, failed)
	if len(keys) != 1 {
		t.Fatalf("keys = %v, want only customer 1", keys)
	}
	if _, ok := keys[int64(1)]; !ok {
		t.Fatalf("missing key 1: %v", keys)
	}
}

func TestFilterOrdersDropsUnknownReferences(t *testing.T) {
	t.Parallel()

	cust := map[any]struct{}{int64(7): {}}
	prod := map[any]struct{}{"P-1": {}}
	orders := []records.Record{
		{"order_id": "O-1", "customer_id": int64(7), "product_id": "P-1"},
		{"order_id": "O-2", "customer_id": int64(999), "product_id": "P-1"},
		{"order_id": "O-3", "customer_id": int64(7), "product_id": "P-404"},
	}
	st := clean.NewStats("orders")
	agg := newErrAgg(10)

	kept := filterOrders(orders, cust, prod, st, agg)
	if len(kept) != 1 || kept[0]["order_id"] != "O-1" {
		t.Fatalf("kept = %v, want only O-1", kept)
	}
	if st.DroppedIntegrity != 2 {
		t.Fatalf("DroppedIntegrity = %d, want 2", st.DroppedIntegrity)
	}
	for i, want := range []string{"unknown customer 999", "unknown product P-404"} {
		if got := agg.first[i]; !strings.Contains(got, want) {
			t.Fatalf("agg message %d = %q, want substring %q", i, got, want)
		}
	}
}
