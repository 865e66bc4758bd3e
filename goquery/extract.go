// Package goquery implements ingest.Extractor using CSS selectors.
package goquery

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/ingest"
)

// Ensure Extractor implements ingest.Extractor at compile time.
var _ ingest.Extractor = (*Extractor)(nil)

// Minimum text lengths, in characters, for a locator match and for the
// whole-body fallback.
const (
	MinLocatorChars = 200
	MinBodyChars    = 100
)

// noiseSelector matches markup that never carries article prose.
const noiseSelector = "script, style, nav, header, footer, aside, .ad, .ads, .sidebar"

// Locator pairs a CSS selector with the predicate its text must satisfy.
type Locator struct {
	Selector string
	Accept   func(text string) bool
}

// DefaultLocators lists the structural content containers in priority order.
var DefaultLocators = []Locator{
	{Selector: "article", Accept: longerThan(MinLocatorChars)},
	{Selector: "main", Accept: longerThan(MinLocatorChars)},
	{Selector: `[role="main"]`, Accept: longerThan(MinLocatorChars)},
	{Selector: ".article-body", Accept: longerThan(MinLocatorChars)},
	{Selector: ".post-content", Accept: longerThan(MinLocatorChars)},
	{Selector: ".entry-content", Accept: longerThan(MinLocatorChars)},
	{Selector: ".content", Accept: longerThan(MinLocatorChars)},
	{Selector: ".article-content", Accept: longerThan(MinLocatorChars)},
	{Selector: ".post-body", Accept: longerThan(MinLocatorChars)},
	{Selector: ".story-body", Accept: longerThan(MinLocatorChars)},
	{Selector: ".page-content", Accept: longerThan(MinLocatorChars)},
}

// Extractor locates the main prose of a page by trying an ordered list of
// structural locators and falling back to the whole body text.
type Extractor struct {
	locators []Locator
}

// NewExtractor creates an Extractor using DefaultLocators.
func NewExtractor() *Extractor {
	return &Extractor{locators: DefaultLocators}
}

// NewExtractorWithLocators creates an Extractor with a custom locator table.
func NewExtractorWithLocators(locators []Locator) *Extractor {
	return &Extractor{locators: locators}
}

// Extract processes raw HTML and returns the title and main text.
// The first element matched by the first locator whose text is accepted
// wins. Otherwise the body text is used if it is longer than MinBodyChars.
func (e *Extractor) Extract(html string) *ingest.ExtractResult {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return &ingest.ExtractResult{}
	}

	result := &ingest.ExtractResult{
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
	}

	doc.Find(noiseSelector).Remove()

	for _, loc := range e.locators {
		sel := doc.Find(loc.Selector).First()
		if sel.Length() == 0 {
			continue
		}
		text := strings.TrimSpace(sel.Text())
		if loc.Accept(text) {
			result.Text = text
			return result
		}
	}

	body := strings.TrimSpace(doc.Find("body").Text())
	if longerThan(MinBodyChars)(body) {
		result.Text = body
	}
	return result
}

// longerThan returns a predicate accepting text longer than n characters.
func longerThan(n int) func(string) bool {
	return func(text string) bool {
		return utf8.RuneCountInString(text) > n
	}
}
