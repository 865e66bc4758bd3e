package mock

import (
	"context"

	"github.com/fwojciec/ingest"
)

var _ ingest.IngestService = (*IngestService)(nil)

// IngestService is a mock implementation of ingest.IngestService.
type IngestService struct {
	IngestFn func(ctx context.Context, rawURL string) (*ingest.Result, error)
}

func (s *IngestService) Ingest(ctx context.Context, rawURL string) (*ingest.Result, error) {
	return s.IngestFn(ctx, rawURL)
}

var _ ingest.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of ingest.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
