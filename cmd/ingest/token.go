package main

import (
	"fmt"

	"github.com/fwojciec/ingest"
	"github.com/fwojciec/ingest/jwt"
)

// Run executes the token command.
func (c *TokenCmd) Run(deps *Dependencies) error {
	if deps.Config.JWTSecret == "" {
		fmt.Fprintln(deps.Stderr, "Hint: set JWT_SECRET to the secret the server verifies with")
		return ingest.Errorf(ingest.EINVALID, "JWT_SECRET not set")
	}

	token, err := jwt.NewAuthenticator(deps.Config.JWTSecret).Issue(c.UserID, c.TTL)
	if err != nil {
		return fmt.Errorf("failed to sign token: %w", err)
	}

	fmt.Fprintln(deps.Stdout, token)
	return nil
}
