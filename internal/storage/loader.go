// This file implements a generic, batched writer that slices a full set of
// typed rows into batches and invokes Repository.InsertRows per batch.
//
// Logging: on every flushed batch, a concise progress line is emitted with
// running totals and instantaneous rows/sec since the previous flush.
package storage

import (
	"context"
	"fmt"
	"log"
	"time"
)

// WriteBatches inserts rows (aligned to 'columns' order) into table in
// batches of size 'batchSize'. Row-level rejections reported by the backend
// are collected, re-indexed against the full rows slice, and returned; they
// do not stop the load. The error return carries the first call-level
// failure (bad connection, missing table), at which point the load stops.
//
// Cancellation: returns (total, rowErrs, ctx.Err()) when ctx is done between
// batches.
func WriteBatches(
	ctx context.Context,
	repo Repository,
	table string,
	columns []string,
	rows [][]any,
	batchSize int,
) (int64, []RowError, error) {
	if batchSize <= 0 {
		return 0, nil, fmt.Errorf("batchSize must be > 0")
	}
	if repo == nil {
		return 0, nil, fmt.Errorf("repo must not be nil")
	}

	var (
		total       int64
		rowErrs     []RowError
		batches     int64
		start       = time.Now()
		lastFlushTS = start
		lastTotal   int64
	)

	for off := 0; off < len(rows); off += batchSize {
		if err := ctx.Err(); err != nil {
			return total, rowErrs, err
		}

		end := off + batchSize
		if end > len(rows) {
			end = len(rows)
		}
		batch := rows[off:end]

		n, errs, err := repo.InsertRows(ctx, table, columns, batch)
		total += n
		for _, re := range errs {
			rowErrs = append(rowErrs, RowError{Index: off + re.Index, Err: re.Err})
		}
		if err != nil {
			log.Printf("loader: table=%s insert failed after=%d total=%d err=%v", table, n, total, err)
			return total, rowErrs, err
		}

		batches++
		now := time.Now()
		sinceLast := now.Sub(lastFlushTS)
		insertedSinceLast := total - lastTotal
		rps := float64(0)
		if sinceLast > 0 {
			rps = float64(insertedSinceLast) / sinceLast.Seconds()
		}
		log.Printf(
			"table=%s batch #%d: rps=%.0f inserted=%d rejected=%d total_inserted=%d elapsed=%s",
			table,
			batches,
			rps,
			n,
			len(errs),
			total,
			now.Sub(start).Truncate(time.Millisecond),
		)
		lastFlushTS = now
		lastTotal = total
	}

	return total, rowErrs, nil
}
