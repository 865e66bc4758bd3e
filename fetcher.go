package ingest

import "context"

// Document is a fetched web page.
type Document struct {
	// URL is the final URL after redirects.
	URL string

	// ContentType is the declared media type of the response, if any.
	ContentType string

	// HTML is the textual response body.
	HTML string
}

// Fetcher retrieves web pages.
type Fetcher interface {
	// Fetch issues a single GET for url and returns the textual body.
	// Returns EFORBIDDEN, ENOTFOUND, EFETCH or ENOTTEXTUAL on failure.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (*Document, error)
}
