package pipeline

import (
	"context"
	"fmt"
	"time"

	"ecometl/internal/bitmap"
	"ecometl/internal/clean"
	"ecometl/internal/metrics"
	"ecometl/internal/schema"
	"ecometl/internal/storage"
	"ecometl/pkg/records"
)

// writeBatchSize is the number of rows handed to the storage backend per
// insert batch.
const writeBatchSize = 500

// rowsFromRecords projects cleaned records onto the entity's column order,
// formatting time values into the canonical ISO strings stored by every
// backend.
func rowsFromRecords(e schema.Entity, recs []records.Record) [][]any {
	cols := e.Columns()
	kinds := e.Kinds()

	rows := make([][]any, len(recs))
	for i, rec := range recs {
		row := make([]any, len(cols))
		for j, col := range cols {
			row[j] = formatValue(rec[col], kinds[col])
		}
		rows[i] = row
	}
	return rows
}

// formatValue renders coerced time.Time values as ISO strings; dates drop
// the time component. Everything else passes through to the driver.
func formatValue(v any, kind schema.Kind) any {
	t, ok := v.(time.Time)
	if !ok {
		return v
	}
	if kind == schema.KindDate {
		return t.Format("2006-01-02")
	}
	return t.Format("2006-01-02 15:04:05")
}

// writeEntity loads one entity's records and returns the set of record
// indexes the backend rejected. Row-level failures are counted and
// aggregated; the error return fires only when the whole load fails or when
// a non-empty entity set lands zero rows.
func writeEntity(
	ctx context.Context,
	job string,
	repo storage.Repository,
	e schema.Entity,
	recs []records.Record,
	st *clean.Stats,
	agg *errAgg,
) (*bitmap.Bitmap, error) {
	rows := rowsFromRecords(e, recs)

	total, rowErrs, err := storage.WriteBatches(ctx, repo, e.Table, e.Columns(), rows, writeBatchSize)
	st.RowsWritten += int(total)
	st.DroppedWrite += len(rowErrs)
	metrics.RecordBatches(job, int64((len(rows)+writeBatchSize-1)/writeBatchSize))

	failed := bitmap.New(len(recs))
	for _, re := range rowErrs {
		failed.Add(re.Index)
		agg.add(fmt.Sprintf("%s key=%v: %v", e.Name, recs[re.Index][e.Key], re.Err))
	}

	if err != nil {
		return nil, fmt.Errorf("write %s: %w", e.Table, err)
	}
	if len(rows) > 0 && total == 0 {
		return nil, fmt.Errorf("write %s: entire entity set failed", e.Table)
	}
	return failed, nil
}

// keySet collects the identity keys of the records that actually landed,
// excluding the failed indexes.
func keySet(e schema.Entity, recs []records.Record, failed *bitmap.Bitmap) map[any]struct{} {
	keys := make(map[any]struct{}, len(recs))
	for i, rec := range recs {
		if failed.Has(i) {
			continue
		}
		if k := rec[e.Key]; k != nil {
			keys[k] = struct{}{}
		}
	}
	return keys
}

// filterOrders drops orders whose customer or product reference does not
// resolve against the already-written key sets, counting each as an
// integrity failure. The database foreign keys remain as a backstop.
func filterOrders(
	orders []records.Record,
	custKeys, prodKeys map[any]struct{},
	st *clean.Stats,
	agg *errAgg,
) []records.Record {
	out := make([]records.Record, 0, len(orders))
	for _, rec := range orders {
		if _, ok := custKeys[rec["customer_id"]]; !ok {
			st.DroppedIntegrity++
			agg.add(fmt.Sprintf("order %v: unknown customer %v", rec["order_id"], rec["customer_id"]))
			continue
		}
		if _, ok := prodKeys[rec["product_id"]]; !ok {
			st.DroppedIntegrity++
			agg.add(fmt.Sprintf("order %v: unknown product %v", rec["order_id"], rec["product_id"]))
			continue
		}
		out = append(out, rec)
	}
	return out
}
