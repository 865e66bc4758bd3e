// Package readability implements ingest.Extractor using go-readability.
package readability

import (
	"strings"

	"github.com/fwojciec/ingest"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements ingest.Extractor at compile time.
var _ ingest.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the article title and text.
func (e *Extractor) Extract(rawHTML string) *ingest.ExtractResult {
	if strings.TrimSpace(rawHTML) == "" {
		return &ingest.ExtractResult{}
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return &ingest.ExtractResult{}
	}

	return &ingest.ExtractResult{
		Title: article.Title,
		Text:  ingest.NormalizeSpace(article.TextContent),
	}
}
