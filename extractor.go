package ingest

// ExtractResult holds the prose extracted from an HTML page.
type ExtractResult struct {
	// Title is the document's declared title. May be empty.
	Title string

	// Text is the main content as plain text. Empty when no content
	// could be located.
	Text string
}

// Extractor isolates the main prose of an HTML page, removing boilerplate.
type Extractor interface {
	// Extract processes raw HTML and returns the main content.
	// It never fails; a page without usable content yields an empty Text.
	Extract(html string) *ExtractResult
}
