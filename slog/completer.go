package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/ingest"
)

// Ensure LoggingCompleter implements ingest.Completer.
var _ ingest.Completer = (*LoggingCompleter)(nil)

// LoggingCompleter wraps a Completer with debug logging. Only sizes are
// logged, never the text itself.
type LoggingCompleter struct {
	next   ingest.Completer
	logger *slog.Logger
}

// NewLoggingCompleter creates a new LoggingCompleter.
func NewLoggingCompleter(next ingest.Completer, logger *slog.Logger) *LoggingCompleter {
	return &LoggingCompleter{next: next, logger: logger}
}

// Complete delegates to the wrapped completer.
func (c *LoggingCompleter) Complete(ctx context.Context, instruction, text string) (out string, err error) {
	defer func(begin time.Time) {
		c.logger.Info("completion",
			"in_chars", len(text),
			"out_chars", len(out),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Complete(ctx, instruction, text)
}
