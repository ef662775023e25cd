// Package pipeline runs one full cleaning job: extract the four raw feeds,
// clean and reconcile them into canonical records, load them into the
// configured storage backend, and write the JSON summary artifact.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"ecometl/internal/clean"
	"ecometl/internal/config"
	"ecometl/internal/metrics"
	"ecometl/internal/report"
	"ecometl/internal/schema"
	"ecometl/internal/storage"
	"ecometl/pkg/records"
)

// defaultReportPath is used when report.path is absent from the run spec.
const defaultReportPath = "etl_summary_report.json"

// errAggLimit caps how many distinct row failures each aggregate keeps.
const errAggLimit = 25

// newRepo opens the configured storage backend. Overridable in tests.
var newRepo = storage.New

// Run executes one cleaning job described by spec. The summary artifact is
// written even when individual rows are rejected; Run returns an error only
// for failures that invalidate the run (unreadable source, unreachable
// backend, an entity set that landed zero rows).
func Run(ctx context.Context, spec config.Pipeline) (*report.Summary, error) {
	started := time.Now()
	summary := report.New(spec.Job, started)

	// Extract.
	feeds, err := func() (*rawFeeds, error) {
		t := time.Now()
		feeds, err := extract(ctx, spec.Sources)
		metrics.RecordStep(spec.Job, "extract", err, time.Since(t))
		return feeds, err
	}()
	if err != nil {
		return nil, err
	}

	// Clean.
	tClean := time.Now()
	custStats := clean.NewStats(schema.Customers.Name)
	prodStats := clean.NewStats(schema.Products.Name)
	orderStats := clean.NewStats(schema.Orders.Name)

	custCleaner := clean.NewCleaner(schema.Customers, clean.Config{
		Enums:     clean.CustomerEnums,
		Scrub:     clean.CustomerScrub,
		DedupAlso: []string{"email"},
	})
	customers := custCleaner.Finish(custCleaner.Resolve(feeds.customers, custStats), custStats)
	clean.ImputeMedianAge(customers, custStats)

	prodCleaner := clean.NewCleaner(schema.Products, clean.Config{
		Enums:    clean.ProductEnums,
		Scrub:    clean.ProductScrub,
		Defaults: clean.ProductDefaults,
	})
	products := prodCleaner.Finish(prodCleaner.Resolve(feeds.products, prodStats), prodStats)

	// Orders arrive from two feeds with different column vocabularies. Each
	// feed is resolved with its own mapper, then the merged set is
	// deduplicated and finished once.
	orderCfg := clean.Config{
		Enums:    clean.OrderEnums,
		Defaults: clean.OrderDefaults,
	}
	orderCleaner := clean.NewCleaner(schema.Orders, orderCfg)
	reconCleaner := clean.NewCleaner(schema.Orders.WithAliases(schema.ReconciliationAliases), orderCfg)

	orders := orderCleaner.Resolve(feeds.orders, orderStats)
	orders = append(orders, reconCleaner.Resolve(feeds.reconciliation, orderStats)...)
	orders = orderCleaner.Finish(orders, orderStats)
	metrics.RecordStep(spec.Job, "clean", nil, time.Since(tClean))

	log.Printf("cleaned customers=%d products=%d orders=%d", len(customers), len(products), len(orders))

	// Load.
	tWrite := time.Now()
	err = load(ctx, spec, customers, products, orders, custStats, prodStats, orderStats)
	metrics.RecordStep(spec.Job, "write", err, time.Since(tWrite))

	// Report. The summary is written even when the load failed partway so
	// the counters collected up to that point are not lost.
	for _, st := range []*clean.Stats{custStats, prodStats, orderStats} {
		summary.Add(st)
		recordRows(spec.Job, st)
	}
	summary.Finish(time.Now())

	path := spec.Report.Path
	if path == "" {
		path = defaultReportPath
	}
	tReport := time.Now()
	werr := summary.WriteFile(path)
	metrics.RecordStep(spec.Job, "report", werr, time.Since(tReport))
	if werr != nil {
		if err == nil {
			err = fmt.Errorf("write report: %w", werr)
		} else {
			log.Printf("write report: %v", werr)
		}
	} else {
		log.Printf("report written path=%s", path)
	}

	if err != nil {
		return summary, err
	}
	return summary, nil
}

// load writes the three entity sets in dependency order, filtering orders
// against the customer and product keys that actually landed.
func load(
	ctx context.Context,
	spec config.Pipeline,
	customers, products, orders []records.Record,
	custStats, prodStats, orderStats *clean.Stats,
) error {
	repo, err := newRepo(ctx, storage.Config{
		Kind: spec.Storage.Kind,
		DSN:  spec.Storage.DB.DSN,
	})
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer repo.Close()

	if spec.Storage.DB.AutoCreateTable {
		if err := storage.EnsureSchema(ctx, spec.Storage.Kind, repo, schema.Entities); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}

	agg := newErrAgg(errAggLimit)
	defer agg.logSummary("rows rejected")

	custFailed, err := writeEntity(ctx, spec.Job, repo, schema.Customers, customers, custStats, agg)
	if err != nil {
		return err
	}
	prodFailed, err := writeEntity(ctx, spec.Job, repo, schema.Products, products, prodStats, agg)
	if err != nil {
		return err
	}

	orders = filterOrders(orders,
		keySet(schema.Customers, customers, custFailed),
		keySet(schema.Products, products, prodFailed),
		orderStats, agg)

	if _, err := writeEntity(ctx, spec.Job, repo, schema.Orders, orders, orderStats, agg); err != nil {
		return err
	}
	return nil
}

// recordRows emits the per-entity row counters for one finished entity.
func recordRows(job string, st *clean.Stats) {
	metrics.RecordRow(job, st.Entity, "read", int64(st.RowsRead))
	metrics.RecordRow(job, st.Entity, "dropped_mapping", int64(st.DroppedMapping))
	metrics.RecordRow(job, st.Entity, "dropped_integrity", int64(st.DroppedIntegrity))
	metrics.RecordRow(job, st.Entity, "dropped_write", int64(st.DroppedWrite))
	metrics.RecordRow(job, st.Entity, "duplicates_removed", int64(st.DuplicatesRemoved))
	metrics.RecordRow(job, st.Entity, "written", int64(st.RowsWritten))
}
