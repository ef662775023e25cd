// Package datasource abstracts where raw dataset bytes come from. The
// pipeline only ever sees an io.ReadCloser; whether it is backed by a local
// file or an HTTP download is decided by configuration.
package datasource

import (
	"context"
	"fmt"
	"io"

	"ecometl/internal/config"
	"ecometl/internal/datasource/file"
	"ecometl/internal/datasource/httpds"
)

// Source yields the raw bytes of one input feed.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}

// New constructs a Source from its configuration.
//
// Kinds:
//   - "file": cfg.Path is a local filesystem path.
//   - "http": cfg.Path is a URL fetched with retry/backoff.
func New(cfg config.Source) (Source, error) {
	switch cfg.Kind {
	case "file":
		return file.NewLocal(cfg.Path), nil
	case "http":
		return httpds.NewSource(cfg.Path, httpds.Config{}), nil
	default:
		return nil, fmt.Errorf("unsupported source.kind=%q", cfg.Kind)
	}
}
