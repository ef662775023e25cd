// Package file reads feed files from the local filesystem, the usual home of
// the customers/products JSON exports and the orders CSV drops.
package file

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Local opens one configured feed path for reading.
type Local struct{ path string }

// NewLocal returns a data source bound to path.
func NewLocal(path string) *Local { return &Local{path: path} }

// Open returns the feed file as an io.ReadCloser. A context already canceled
// at call time short-circuits without touching the filesystem. Filesystem
// errors are wrapped with the path and stay errors.Is-checkable, so callers
// can still test for os.ErrNotExist.
func (l *Local) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", l.path, err)
	}
	return f, nil
}
