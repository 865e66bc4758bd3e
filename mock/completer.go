package mock

import (
	"context"

	"github.com/fwojciec/ingest"
)

var _ ingest.Completer = (*Completer)(nil)

// Completer is a mock implementation of ingest.Completer.
type Completer struct {
	CompleteFn func(ctx context.Context, instruction, text string) (string, error)
}

func (c *Completer) Complete(ctx context.Context, instruction, text string) (string, error) {
	return c.CompleteFn(ctx, instruction, text)
}

var _ ingest.Restorer = (*Restorer)(nil)

// Restorer is a mock implementation of ingest.Restorer.
type Restorer struct {
	RestoreFn func(ctx context.Context, text string) string
}

func (r *Restorer) Restore(ctx context.Context, text string) string {
	return r.RestoreFn(ctx, text)
}
