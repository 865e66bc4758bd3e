package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/ingest"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx           context.Context
	Stdout        io.Writer
	Stderr        io.Writer
	Logger        *slog.Logger
	Config        Config
	Ingest        ingest.IngestService
	Authenticator ingest.Authenticator
}

// Config holds the settings shared by all commands.
type Config struct {
	Addr              string        `default:":8080" env:"INGEST_ADDR" help:"HTTP listen address"`
	JWTSecret         string        `name:"jwt-secret" env:"JWT_SECRET" help:"Secret used to verify bearer tokens"`
	GeminiAPIKey      string        `name:"gemini-api-key" env:"GEMINI_API_KEY" help:"Gemini API key; punctuation restoration is disabled without it"`
	Model             string        `default:"gemini-2.5-flash" env:"INGEST_MODEL" help:"Gemini model used for punctuation restoration"`
	FetchTimeout      time.Duration `default:"15s" help:"Page fetch timeout"`
	TranscriptTimeout time.Duration `default:"15s" help:"Transcript retrieval timeout"`
	CompletionTimeout time.Duration `default:"60s" help:"Timeout for each punctuation request"`
	Extractor         string        `default:"selectors" enum:"selectors,trafilatura,readability" help:"Prose extraction strategy (${enum})"`
	RateLimit         float64       `default:"0" help:"Requests per second per upstream host (0 disables)"`
	ChunkConcurrency  int           `default:"0" help:"Concurrent punctuation requests per transcript (0 = one per chunk)"`
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  `embed:""`
	Verbose bool `short:"v" help:"Log every upstream call"`

	Serve ServeCmd `cmd:"" help:"Run the HTTP API"`
	Get   GetCmd   `cmd:"" help:"Ingest a single URL and print the result"`
	Token TokenCmd `cmd:"" help:"Issue a bearer token for local testing"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct{}

// GetCmd is the "get" subcommand.
type GetCmd struct {
	URL  string `arg:"" help:"Web page or video URL"`
	JSON bool   `help:"Print the result as JSON"`
}

// TokenCmd is the "token" subcommand.
type TokenCmd struct {
	UserID string        `arg:"" name:"user-id" help:"User id to embed in the token"`
	TTL    time.Duration `default:"24h" help:"Token lifetime"`
}
