package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/ingest"
)

// Ensure LoggingFetcher implements ingest.Fetcher.
var _ ingest.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   ingest.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next ingest.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (doc *ingest.Document, err error) {
	defer func(begin time.Time) {
		var size int
		var contentType string
		if doc != nil {
			size, contentType = len(doc.HTML), doc.ContentType
		}
		f.logger.Info("fetch",
			"url", url,
			"content_type", contentType,
			"bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}
