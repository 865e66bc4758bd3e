package slog

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/ingest"
)

// Ensure LoggingIngestService implements ingest.IngestService.
var _ ingest.IngestService = (*LoggingIngestService)(nil)

// LoggingIngestService wraps an IngestService with request logging. The
// returned text is identified by a fingerprint so repeated ingestions of
// the same content can be correlated without logging the content.
type LoggingIngestService struct {
	next   ingest.IngestService
	logger *slog.Logger
}

// NewLoggingIngestService creates a new LoggingIngestService.
func NewLoggingIngestService(next ingest.IngestService, logger *slog.Logger) *LoggingIngestService {
	return &LoggingIngestService{next: next, logger: logger}
}

// Ingest delegates to the wrapped service and logs the outcome.
func (s *LoggingIngestService) Ingest(ctx context.Context, rawURL string) (result *ingest.Result, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", rawURL,
			"duration", time.Since(begin),
		}
		if result != nil {
			attrs = append(attrs,
				"title", result.Title,
				"chars", len(result.Text),
				"fingerprint", Fingerprint(result.Text),
			)
		}
		if err != nil {
			attrs = append(attrs, "code", ingest.ErrorCode(err), "err", err)
		}
		s.logger.Info("ingest", attrs...)
	}(time.Now())
	return s.next.Ingest(ctx, rawURL)
}

// Fingerprint returns the hex xxhash64 digest of text.
func Fingerprint(text string) string {
	return strconv.FormatUint(xxhash.Sum64String(text), 16)
}
