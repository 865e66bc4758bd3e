// Package trafilatura implements ingest.Extractor using go-trafilatura.
package trafilatura

import (
	"strings"

	"github.com/fwojciec/ingest"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements ingest.Extractor at compile time.
var _ ingest.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the title and main text. Pages
// trafilatura cannot parse yield an empty result.
func (e *Extractor) Extract(rawHTML string) *ingest.ExtractResult {
	if strings.TrimSpace(rawHTML) == "" {
		return &ingest.ExtractResult{}
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil || result == nil {
		return &ingest.ExtractResult{}
	}

	text := result.ContentText
	if result.ContentNode != nil {
		text = nodeText(result.ContentNode)
	}

	return &ingest.ExtractResult{
		Title: result.Metadata.Title,
		Text:  ingest.NormalizeSpace(text),
	}
}

// nodeText concatenates the text nodes below n, separated by spaces so that
// words in adjacent elements never run together.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
