package main

import (
	"fmt"

	"github.com/fwojciec/ingest"
	ingesthttp "github.com/fwojciec/ingest/http"
)

// Run executes the serve command. It blocks until the context is cancelled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	if deps.Authenticator == nil {
		fmt.Fprintln(deps.Stderr, "Hint: set JWT_SECRET so callers can authenticate")
		return ingest.Errorf(ingest.EINVALID, "JWT_SECRET not set")
	}

	s := ingesthttp.NewServer()
	s.Addr = deps.Config.Addr
	s.IngestService = deps.Ingest
	s.Authenticator = deps.Authenticator
	s.Logger = deps.Logger

	if err := s.Open(); err != nil {
		return fmt.Errorf("failed to listen on %s: %w", deps.Config.Addr, err)
	}
	deps.Logger.Info("listening", "addr", s.URL())

	<-deps.Ctx.Done()

	deps.Logger.Info("shutting down")
	return s.Close()
}
