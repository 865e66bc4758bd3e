// Package pipeline orchestrates ingestion: it classifies a source, retrieves
// its content through the matching channel, extracts prose and, for video
// transcripts, restores punctuation.
package pipeline

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fwojciec/ingest"
)

// Minimum lengths, in characters, of usable extracted text.
const (
	MinTranscriptChars = 20
	MinPageChars       = 50
)

// Ensure Pipeline implements ingest.IngestService at compile time.
var _ ingest.IngestService = (*Pipeline)(nil)

// Pipeline implements ingest.IngestService. Each call is independent; a
// Pipeline may be shared by concurrent requests.
type Pipeline struct {
	Transcripts ingest.TranscriptService
	Fetcher     ingest.Fetcher
	Extractor   ingest.Extractor
	Restorer    ingest.Restorer

	// RateLimiter paces upstream requests per host. Optional.
	RateLimiter ingest.DomainLimiter
}

// Ingest classifies rawURL and returns its text and title.
func (p *Pipeline) Ingest(ctx context.Context, rawURL string) (*ingest.Result, error) {
	src, err := ingest.Classify(rawURL)
	if err != nil {
		return nil, err
	}

	switch src.Kind {
	case ingest.SourceVideoTranscript:
		return p.ingestVideo(ctx, src)
	default:
		return p.ingestPage(ctx, src)
	}
}

func (p *Pipeline) ingestVideo(ctx context.Context, src *ingest.Source) (*ingest.Result, error) {
	if err := p.wait(ctx, src.URL); err != nil {
		return nil, transcriptError(err)
	}

	segments, err := p.Transcripts.FetchTranscript(ctx, src.URL)
	if err != nil {
		return nil, transcriptError(err)
	}
	if len(segments) == 0 {
		return nil, ingest.Errorf(ingest.ENOTRANSCRIPT, "This video has no captions. Only videos with subtitles/captions can be imported.")
	}

	text := ingest.JoinSegments(segments)
	if len([]rune(text)) < MinTranscriptChars {
		return nil, ingest.Errorf(ingest.EINSUFFICIENT, "Could not extract enough text from this video's captions.")
	}

	if p.Restorer != nil {
		text = ingest.NormalizeSpace(p.Restorer.Restore(ctx, text))
	}

	return &ingest.Result{Text: text, Title: ingest.DefaultVideoTitle}, nil
}

func (p *Pipeline) ingestPage(ctx context.Context, src *ingest.Source) (*ingest.Result, error) {
	if err := p.wait(ctx, src.URL); err != nil {
		return nil, fetchError(err)
	}

	doc, err := p.Fetcher.Fetch(ctx, src.URL)
	if err != nil {
		return nil, fetchError(err)
	}

	extracted := p.Extractor.Extract(doc.HTML)
	if extracted == nil {
		extracted = &ingest.ExtractResult{}
	}

	text := ingest.NormalizeSpace(extracted.Text)
	if len([]rune(text)) < MinPageChars {
		return nil, ingest.Errorf(ingest.EINSUFFICIENT, "Could not extract enough text from this page. Try a different URL.")
	}

	title := ingest.NormalizeSpace(extracted.Title)
	if title == "" {
		title = ingest.DefaultPageTitle
	}

	return &ingest.Result{Text: text, Title: title}, nil
}

// wait blocks on the rate limiter for the host of rawURL, if one is configured.
func (p *Pipeline) wait(ctx context.Context, rawURL string) error {
	if p.RateLimiter == nil {
		return nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return err
	}
	return p.RateLimiter.Wait(ctx, u.Hostname())
}

// transcriptError passes transcript taxonomy errors through and maps
// everything else to ETRANSCRIPT.
func transcriptError(err error) error {
	switch ingest.ErrorCode(err) {
	case ingest.ECAPTIONSDISABLED, ingest.ENOTRANSCRIPT, ingest.ERATELIMITED, ingest.ETRANSCRIPT:
		return err
	}
	return fmt.Errorf("%w: %v", ingest.Errorf(ingest.ETRANSCRIPT, "Could not get transcript from this YouTube video."), err)
}

// fetchError passes page fetch taxonomy errors through and maps everything
// else to EFETCH.
func fetchError(err error) error {
	switch ingest.ErrorCode(err) {
	case ingest.EFORBIDDEN, ingest.ENOTFOUND, ingest.EFETCH, ingest.ENOTTEXTUAL:
		return err
	}
	return fmt.Errorf("%w: %v", ingest.Errorf(ingest.EFETCH, "Could not fetch URL"), err)
}
