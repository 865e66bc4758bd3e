package mock

import (
	"context"

	"github.com/fwojciec/ingest"
)

var _ ingest.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of ingest.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*ingest.Document, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*ingest.Document, error) {
	return f.FetchFn(ctx, url)
}
