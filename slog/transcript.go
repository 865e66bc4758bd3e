package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/ingest"
)

// Ensure LoggingTranscriptService implements ingest.TranscriptService.
var _ ingest.TranscriptService = (*LoggingTranscriptService)(nil)

// LoggingTranscriptService wraps a TranscriptService with debug logging.
type LoggingTranscriptService struct {
	next   ingest.TranscriptService
	logger *slog.Logger
}

// NewLoggingTranscriptService creates a new LoggingTranscriptService.
func NewLoggingTranscriptService(next ingest.TranscriptService, logger *slog.Logger) *LoggingTranscriptService {
	return &LoggingTranscriptService{next: next, logger: logger}
}

// FetchTranscript delegates to the wrapped service and logs the segment count.
func (s *LoggingTranscriptService) FetchTranscript(ctx context.Context, url string) (segments []ingest.TranscriptSegment, err error) {
	defer func(begin time.Time) {
		s.logger.Info("transcript",
			"url", url,
			"segments", len(segments),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FetchTranscript(ctx, url)
}
