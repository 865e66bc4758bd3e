package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/ingest"
	"github.com/fwojciec/ingest/gemini"
	"github.com/fwojciec/ingest/goquery"
	ingesthttp "github.com/fwojciec/ingest/http"
	"github.com/fwojciec/ingest/jwt"
	"github.com/fwojciec/ingest/pipeline"
	"github.com/fwojciec/ingest/readability"
	ingestslog "github.com/fwojciec/ingest/slog"
	"github.com/fwojciec/ingest/trafilatura"
	"github.com/fwojciec/ingest/youtube"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Services for end-to-end testing. Wired from flags when nil.
	IngestService ingest.IngestService
	Authenticator ingest.Authenticator
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("ingest"),
		kong.Description("Turn a web page or video link into plain prose."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'ingest --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Logger = newLogger(stderr, cli.Verbose)
	deps.Config = cli.Config

	if deps.Config.JWTSecret != "" || m.Authenticator != nil {
		deps.Authenticator = m.Authenticator
		if deps.Authenticator == nil {
			deps.Authenticator = jwt.NewAuthenticator(deps.Config.JWTSecret)
		}
	}

	switch command := kongCtx.Command(); command {
	case "serve", "get <url>":
		deps.Ingest = m.IngestService
		if deps.Ingest == nil {
			logger := pipelineLogger(command, cli.Verbose, deps.Logger)
			if deps.Ingest, err = NewIngestService(ctx, cli.Config, logger); err != nil {
				return err
			}
		}
	}

	return kongCtx.Run(deps)
}

// NewIngestService wires the ingestion pipeline from configuration. Every
// collaborator is wrapped with a logging decorator when logger is non-nil.
func NewIngestService(ctx context.Context, cfg Config, logger *slog.Logger) (ingest.IngestService, error) {
	extractor, err := newExtractor(cfg.Extractor)
	if err != nil {
		return nil, err
	}

	var transcripts ingest.TranscriptService = youtube.NewClient(youtube.WithTimeout(cfg.TranscriptTimeout))
	var fetcher ingest.Fetcher = ingesthttp.NewFetcher(ingesthttp.WithTimeout(cfg.FetchTimeout))
	if logger != nil {
		transcripts = ingestslog.NewLoggingTranscriptService(transcripts, logger)
		fetcher = ingestslog.NewLoggingFetcher(fetcher, logger)
	}

	var completer ingest.Completer
	if cfg.GeminiAPIKey != "" {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		completer = gemini.NewCompleter(client,
			gemini.WithModel(cfg.Model),
			gemini.WithTimeout(cfg.CompletionTimeout),
		)
		if logger != nil {
			completer = ingestslog.NewLoggingCompleter(completer, logger)
		}
	} else if logger != nil {
		logger.Warn("GEMINI_API_KEY not set, transcripts will not be punctuated")
	}

	restorer := pipeline.NewRestorer(completer)
	restorer.Concurrency = cfg.ChunkConcurrency
	restorer.Logger = logger

	p := &pipeline.Pipeline{
		Transcripts: transcripts,
		Fetcher:     fetcher,
		Extractor:   extractor,
		Restorer:    restorer,
	}
	if cfg.RateLimit > 0 {
		p.RateLimiter = pipeline.NewDomainLimiter(cfg.RateLimit)
	}

	if logger == nil {
		return p, nil
	}
	return ingestslog.NewLoggingIngestService(p, logger), nil
}

// pipelineLogger returns the logger for pipeline decorators, or nil when the
// command should not log them. One-shot commands only log when verbose.
func pipelineLogger(command string, verbose bool, logger *slog.Logger) *slog.Logger {
	if command == "serve" || verbose {
		return logger
	}
	return nil
}

func newExtractor(name string) (ingest.Extractor, error) {
	switch name {
	case "", "selectors":
		return goquery.NewExtractor(), nil
	case "trafilatura":
		return trafilatura.NewExtractor(), nil
	case "readability":
		return readability.NewExtractor(), nil
	}
	return nil, fmt.Errorf("unknown extractor %q", name)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
