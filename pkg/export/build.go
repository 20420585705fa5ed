package export

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-fosterdocs/pkg/layout"
)

// BuildFunc produces the i-th document of a batch.
type BuildFunc func(ctx context.Context, i int) (layout.Document, error)

// BuildDocuments runs build for 0..n-1 concurrently and returns the results
// in index order. The first error cancels the remaining builds.
func BuildDocuments(ctx context.Context, n int, build BuildFunc) ([]layout.Document, error) {
	docs := make([]layout.Document, n)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			doc, err := build(gctx, i)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}
