package ingest

import "context"

// Identity is a verified caller.
type Identity struct {
	UserID string
}

// Authenticator verifies caller credentials.
type Authenticator interface {
	// Authenticate validates a bearer token and returns the caller identity.
	// Returns EUNAUTHORIZED if the token is missing or invalid.
	Authenticate(ctx context.Context, token string) (*Identity, error)
}

type contextKey int

const identityContextKey contextKey = iota + 1

// NewContextWithIdentity returns a copy of ctx carrying the given identity.
func NewContextWithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, id)
}

// IdentityFromContext returns the identity stored on ctx, or nil.
func IdentityFromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityContextKey).(*Identity)
	return id
}
