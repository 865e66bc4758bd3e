// Package jwt implements ingest.Authenticator using HMAC-signed JSON Web Tokens.
package jwt

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/ingest"
	"github.com/golang-jwt/jwt/v5"
)

// Ensure Authenticator implements ingest.Authenticator at compile time.
var _ ingest.Authenticator = (*Authenticator)(nil)

// claims carries the caller id. Older tokens only set the registered
// subject, so it is accepted when userId is absent.
type claims struct {
	UserID string `json:"userId,omitempty"`
	jwt.RegisteredClaims
}

// Authenticator verifies HS256 bearer tokens signed with a shared secret.
type Authenticator struct {
	secret []byte
}

// NewAuthenticator creates an Authenticator for the given secret.
func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret)}
}

// Authenticate validates token and returns the caller identity.
func (a *Authenticator) Authenticate(_ context.Context, token string) (*ingest.Identity, error) {
	if len(a.secret) == 0 || token == "" {
		return nil, unauthorized()
	}

	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", unauthorized(), err)
	}

	userID := c.UserID
	if userID == "" {
		userID = c.Subject
	}
	if userID == "" {
		return nil, unauthorized()
	}
	return &ingest.Identity{UserID: userID}, nil
}

// Issue signs a token for userID that expires after ttl. A zero ttl issues a
// token without expiry.
func (a *Authenticator) Issue(userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	c := claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if ttl > 0 {
		c.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(a.secret)
}

func unauthorized() *ingest.Error {
	return ingest.Errorf(ingest.EUNAUTHORIZED, "Authentication required")
}
