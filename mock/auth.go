package mock

import (
	"context"

	"github.com/fwojciec/ingest"
)

var _ ingest.Authenticator = (*Authenticator)(nil)

// Authenticator is a mock implementation of ingest.Authenticator.
type Authenticator struct {
	AuthenticateFn func(ctx context.Context, token string) (*ingest.Identity, error)
}

func (a *Authenticator) Authenticate(ctx context.Context, token string) (*ingest.Identity, error) {
	return a.AuthenticateFn(ctx, token)
}
