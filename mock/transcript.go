package mock

import (
	"context"

	"github.com/fwojciec/ingest"
)

var _ ingest.TranscriptService = (*TranscriptService)(nil)

// TranscriptService is a mock implementation of ingest.TranscriptService.
type TranscriptService struct {
	FetchTranscriptFn func(ctx context.Context, url string) ([]ingest.TranscriptSegment, error)
}

func (s *TranscriptService) FetchTranscript(ctx context.Context, url string) ([]ingest.TranscriptSegment, error) {
	return s.FetchTranscriptFn(ctx, url)
}
