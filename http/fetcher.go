// Package http provides the HTTP page fetcher and the HTTP API server.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/ingest"
)

// Fetcher defaults.
const (
	DefaultFetchTimeout = 15 * time.Second
	DefaultMaxRedirects = 5
	DefaultUserAgent    = "Mozilla/5.0 (compatible; SpeechifyLearning/1.0)"
	DefaultMaxBodyBytes = 10 << 20

	acceptHTML = "text/html,application/xhtml+xml"
)

// Ensure Fetcher implements ingest.Fetcher at compile time.
var _ ingest.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves web pages with a single GET request.
type Fetcher struct {
	client       *http.Client
	timeout      time.Duration
	maxRedirects int
	userAgent    string
	maxBodyBytes int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for the whole request, including redirects
// and reading the body. Defaults to DefaultFetchTimeout (15s).
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxRedirects sets how many redirects are followed before giving up.
// Defaults to DefaultMaxRedirects (5).
func WithMaxRedirects(n int) Option {
	return func(f *Fetcher) {
		f.maxRedirects = n
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:      DefaultFetchTimeout,
		maxRedirects: DefaultMaxRedirects,
		userAgent:    DefaultUserAgent,
		maxBodyBytes: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) > f.maxRedirects {
				return fmt.Errorf("stopped after %d redirects", f.maxRedirects)
			}
			return nil
		},
	}

	return f
}

// Fetch retrieves the page at url. Responses outside the 2xx-3xx range are
// rejected: 403 maps to EFORBIDDEN, 404 to ENOTFOUND and everything else,
// including transport failures, to EFETCH. Bodies that are not text map to
// ENOTTEXTUAL.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*ingest.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fetchError(err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", acceptHTML)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fetchError(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusForbidden:
		return nil, ingest.Errorf(ingest.EFORBIDDEN, "Access denied by website")
	case resp.StatusCode == http.StatusNotFound:
		return nil, ingest.Errorf(ingest.ENOTFOUND, "Page not found")
	case resp.StatusCode < 200 || resp.StatusCode >= 400:
		return nil, ingest.Errorf(ingest.EFETCH, "Could not fetch URL")
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodyBytes))
	if err != nil {
		return nil, fetchError(err)
	}

	contentType := resp.Header.Get("Content-Type")
	if !isTextual(contentType, body) {
		return nil, ingest.Errorf(ingest.ENOTTEXTUAL, "URL did not return HTML")
	}

	return &ingest.Document{
		URL:         resp.Request.URL.String(),
		ContentType: contentType,
		HTML:        string(body),
	}, nil
}

// fetchError maps a transport failure to EFETCH, keeping the cause for logs.
func fetchError(err error) error {
	return fmt.Errorf("%w: %v", ingest.Errorf(ingest.EFETCH, "Could not fetch URL"), err)
}

// isTextual reports whether a response body is a text payload. A declared
// media type decides; an undeclared one is sniffed from the body. Malformed
// parameters do not hide a valid media type.
func isTextual(contentType string, body []byte) bool {
	if contentType == "" {
		contentType = http.DetectContentType(body)
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil && !errors.Is(err, mime.ErrInvalidMediaParameter) {
		return false
	}
	switch {
	case strings.HasPrefix(mediaType, "text/"):
		return true
	case mediaType == "application/xhtml+xml", mediaType == "application/xml":
		return true
	}
	return false
}
