package storage

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

// recordingRepo captures InsertRows calls and can inject row-level or
// call-level failures per batch.
type recordingRepo struct {
	calls   [][][]any
	rowErrs map[int][]RowError // keyed by call number
	failOn  int                // 1-based call number that returns an error; 0 = never
}

func (r *recordingRepo) InsertRows(ctx context.Context, table string, columns []string, rows [][]any) (int64, []RowError, error) {
	call := len(r.calls)
	r.calls = append(r.calls, rows)
	if r.failOn > 0 && call+1 == r.failOn {
		return 0, nil, errors.New("connection lost")
	}
	errs := r.rowErrs[call]
	return int64(len(rows) - len(errs)), errs, nil
}
func (r *recordingRepo) Exec(ctx context.Context, sql string) error { return nil }
func (r *recordingRepo) Close()                                     {}

func makeRows(n int) [][]any {
	rows := make([][]any, n)
	for i := range rows {
		rows[i] = []any{fmt.Sprintf("id-%d", i)}
	}
	return rows
}

func TestWriteBatches_SplitsIntoBatches(t *testing.T) {
	t.Parallel()

	repo := &recordingRepo{}
	total, rowErrs, err := WriteBatches(context.Background(), repo, "orders", []string{"order_id"}, makeRows(7), 3)
	if err != nil {
		t.Fatalf("WriteBatches error: %v", err)
	}
	if total != 7 {
		t.Fatalf("total = %d, want 7", total)
	}
	if len(rowErrs) != 0 {
		t.Fatalf("rowErrs = %v, want none", rowErrs)
	}
	if got := len(repo.calls); got != 3 {
		t.Fatalf("InsertRows called %d times, want 3 (batches of 3,3,1)", got)
	}
	if got := len(repo.calls[2]); got != 1 {
		t.Fatalf("last batch size = %d, want 1", got)
	}
}

func TestWriteBatches_ReindexesRowErrors(t *testing.T) {
	t.Parallel()

	// Second batch (rows 3..5) rejects its row at local index 1, which is
	// global index 4.
	repo := &recordingRepo{
		rowErrs: map[int][]RowError{
			1: {{Index: 1, Err: errors.New("constraint")}},
		},
	}
	total, rowErrs, err := WriteBatches(context.Background(), repo, "orders", []string{"order_id"}, makeRows(7), 3)
	if err != nil {
		t.Fatalf("WriteBatches error: %v", err)
	}
	if total != 6 {
		t.Fatalf("total = %d, want 6", total)
	}
	if len(rowErrs) != 1 {
		t.Fatalf("rowErrs = %v, want exactly one", rowErrs)
	}
	if rowErrs[0].Index != 4 {
		t.Fatalf("rowErrs[0].Index = %d, want global index 4", rowErrs[0].Index)
	}
}

func TestWriteBatches_StopsOnCallError(t *testing.T) {
	t.Parallel()

	repo := &recordingRepo{failOn: 2}
	total, _, err := WriteBatches(context.Background(), repo, "orders", []string{"order_id"}, makeRows(9), 3)
	if err == nil {
		t.Fatalf("expected error from failing batch")
	}
	if total != 3 {
		t.Fatalf("total = %d, want 3 (only first batch inserted)", total)
	}
	if got := len(repo.calls); got != 2 {
		t.Fatalf("InsertRows called %d times, want 2 (stop after failure)", got)
	}
}

func TestWriteBatches_InvalidBatchSize(t *testing.T) {
	t.Parallel()

	_, _, err := WriteBatches(context.Background(), &recordingRepo{}, "t", []string{"c"}, makeRows(1), 0)
	if err == nil {
		t.Fatalf("expected error for batchSize 0")
	}
}

func TestWriteBatches_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo := &recordingRepo{}
	_, _, err := WriteBatches(ctx, repo, "t", []string{"c"}, makeRows(5), 2)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if len(repo.calls) != 0 {
		t.Fatalf("InsertRows called %d times on canceled context, want 0", len(repo.calls))
	}
}
