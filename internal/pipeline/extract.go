package pipeline

import (
	"context"
	"fmt"
	"io"
	"log"

	"golang.org/x/sync/errgroup"

	"ecometl/internal/config"
	"ecometl/internal/datasource"
	csvparser "ecometl/internal/parser/csv"
	jsonparser "ecometl/internal/parser/json"
	"ecometl/pkg/records"
)

// openSource is a test hook; tests replace it to feed raw bytes without
// touching the filesystem or network.
var openSource = func(ctx context.Context, cfg config.Source) (io.ReadCloser, error) {
	src, err := datasource.New(cfg)
	if err != nil {
		return nil, err
	}
	return src.Open(ctx)
}

// rawFeeds holds the parsed but otherwise untouched records of the four
// source files.
type rawFeeds struct {
	customers      []records.Record
	products       []records.Record
	orders         []records.Record
	reconciliation []records.Record
}

// extract reads and parses all four sources concurrently. Any unreadable or
// unparseable file is fatal; malformed individual rows were already skipped
// and logged by the parsers.
func extract(ctx context.Context, srcs config.Sources) (*rawFeeds, error) {
	var feeds rawFeeds

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		feeds.customers, err = readSource(gctx, "customers", srcs.Customers)
		return err
	})
	g.Go(func() (err error) {
		feeds.products, err = readSource(gctx, "products", srcs.Products)
		return err
	})
	g.Go(func() (err error) {
		feeds.orders, err = readSource(gctx, "orders", srcs.Orders)
		return err
	})
	g.Go(func() (err error) {
		feeds.reconciliation, err = readSource(gctx, "reconciliation", srcs.Reconciliation)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &feeds, nil
}

// readSource opens one source and parses it according to its format.
func readSource(ctx context.Context, name string, cfg config.Source) ([]records.Record, error) {
	rc, err := openSource(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("source %s: %w", name, err)
	}
	defer rc.Close()

	switch cfg.Format {
	case "json":
		recs, err := jsonparser.DecodeAll(rc, jsonparser.FromConfigOptions(cfg.Options))
		if err != nil {
			return nil, fmt.Errorf("source %s: parse json: %w", name, err)
		}
		log.Printf("source=%s format=json rows=%d", name, len(recs))
		return recs, nil
	case "csv":
		recs, skipped, err := csvparser.NewParser(csvparser.FromConfigOptions(cfg.Options)).Parse(rc)
		if err != nil {
			return nil, fmt.Errorf("source %s: parse csv: %w", name, err)
		}
		log.Printf("source=%s format=csv rows=%d skipped=%d", name, len(recs), skipped)
		return recs, nil
	default:
		return nil, fmt.Errorf("source %s: unsupported format %q", name, cfg.Format)
	}
}
