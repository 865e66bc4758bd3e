package ingest

import "context"

// Default titles used when none can be derived from the source.
const (
	DefaultVideoTitle = "YouTube video"
	DefaultPageTitle  = "Imported article"
)

// Result is the outcome of a successful ingestion.
type Result struct {
	Text  string `json:"text"`
	Title string `json:"title"`
}

// IngestService turns a user-supplied source into plain text.
type IngestService interface {
	// Ingest classifies rawURL, retrieves its content and returns the
	// extracted prose. Errors carry one of the application error codes.
	Ingest(ctx context.Context, rawURL string) (*Result, error)
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
