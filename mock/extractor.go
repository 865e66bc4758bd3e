package mock

import "github.com/fwojciec/ingest"

var _ ingest.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of ingest.Extractor.
type Extractor struct {
	ExtractFn func(html string) *ingest.ExtractResult
}

func (e *Extractor) Extract(html string) *ingest.ExtractResult {
	return e.ExtractFn(html)
}
