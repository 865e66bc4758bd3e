// Package youtube implements ingest.TranscriptService by reading the caption
// tracks advertised on a video's watch page.
package youtube

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fwojciec/ingest"
)

// Client defaults.
const (
	DefaultBaseURL = "https://www.youtube.com"
	DefaultTimeout = 15 * time.Second

	userAgent         = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	maxWatchPageBytes = 6 << 20
	maxTimedTextBytes = 2 << 20
)

// Ensure Client implements ingest.TranscriptService at compile time.
var _ ingest.TranscriptService = (*Client)(nil)

// Client fetches video transcripts over HTTP.
type Client struct {
	client  *http.Client
	baseURL string
	langs   []string
	timeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout. Defaults to DefaultTimeout (15s).
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithBaseURL overrides the video host, e.g. for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithLanguages sets preferred caption languages in priority order.
// Defaults to English.
func WithLanguages(langs ...string) Option {
	return func(c *Client) {
		c.langs = langs
	}
}

// NewClient creates a new Client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		langs:   []string{"en"},
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.client = &http.Client{Timeout: c.timeout}
	return c
}

// FetchTranscript returns the caption segments of the video at rawURL.
func (c *Client) FetchTranscript(ctx context.Context, rawURL string) ([]ingest.TranscriptSegment, error) {
	id, ok := ingest.VideoID(rawURL)
	if !ok {
		return nil, ingest.Errorf(ingest.EINVALID, "Valid URL required")
	}

	page, err := c.get(ctx, c.baseURL+"/watch?v="+url.QueryEscape(id), maxWatchPageBytes)
	if err != nil {
		return nil, err
	}
	if bytes.Contains(page, []byte(`class="g-recaptcha"`)) {
		return nil, errRateLimited()
	}

	player, err := parsePlayerResponse(page)
	if err != nil {
		return nil, transcriptError(err)
	}

	track, err := player.captionTrack(c.langs)
	if err != nil {
		return nil, err
	}

	trackURL, err := c.resolve(track.BaseURL)
	if err != nil {
		return nil, transcriptError(err)
	}

	data, err := c.get(ctx, trackURL, maxTimedTextBytes)
	if err != nil {
		return nil, err
	}

	segments, err := parseTimedText(data)
	if err != nil {
		return nil, transcriptError(err)
	}
	return segments, nil
}

// get issues a GET and returns at most limit bytes of the body.
func (c *Client) get(ctx context.Context, u string, limit int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, transcriptError(err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, transcriptError(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, errRateLimited()
	case resp.StatusCode != http.StatusOK:
		return nil, transcriptError(fmt.Errorf("HTTP %d for %s", resp.StatusCode, u))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return nil, transcriptError(err)
	}
	return body, nil
}

// resolve makes a caption track URL absolute against the base URL.
func (c *Client) resolve(ref string) (string, error) {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return "", err
	}
	u, err := url.Parse(ref)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(u).String(), nil
}

func errRateLimited() error {
	return ingest.Errorf(ingest.ERATELIMITED, "Too many requests. Please try again later.")
}

// transcriptError maps an unexpected failure to ETRANSCRIPT, keeping the
// cause for logs.
func transcriptError(err error) error {
	return fmt.Errorf("%w: %v", ingest.Errorf(ingest.ETRANSCRIPT, "Could not get transcript from this YouTube video."), err)
}
