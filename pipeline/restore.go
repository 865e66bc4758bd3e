package pipeline

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/ingest"
	"golang.org/x/sync/errgroup"
)

// Restorer defaults.
const (
	DefaultChunkSize       = 12000
	MinRestoreChars        = 50
	PunctuationInstruction = "Add proper punctuation (commas, periods, question marks, exclamation marks, colons, semicolons) to this transcript. Preserve the exact wording. Return ONLY the punctuated text, nothing else. Do not add explanations or summaries."
)

// Ensure Restorer implements ingest.Restorer at compile time.
var _ ingest.Restorer = (*Restorer)(nil)

// Restorer restores punctuation by sending word-aligned chunks of text to a
// completion service concurrently and reassembling the results in order.
type Restorer struct {
	// Completer is the completion service. Restoration is disabled when nil.
	Completer ingest.Completer

	// ChunkSize is the maximum chunk length in bytes. Defaults to DefaultChunkSize.
	ChunkSize int

	// Concurrency caps simultaneous completion calls. Zero means one call
	// per chunk.
	Concurrency int

	// Logger receives chunk failures. Optional.
	Logger *slog.Logger
}

// NewRestorer creates a Restorer over completer. A nil completer yields a
// Restorer that returns its input unchanged.
func NewRestorer(completer ingest.Completer) *Restorer {
	return &Restorer{Completer: completer, ChunkSize: DefaultChunkSize}
}

// Restore returns text with punctuation restored. Text shorter than
// MinRestoreChars characters is returned verbatim, as is all text when no completer is
// configured. A chunk whose completion fails or comes back empty keeps its
// original text; if every chunk fails the input is returned verbatim.
func (r *Restorer) Restore(ctx context.Context, text string) string {
	if r.Completer == nil || utf8.RuneCountInString(text) < MinRestoreChars {
		return text
	}

	size := r.ChunkSize
	if size <= 0 {
		size = DefaultChunkSize
	}
	chunks := ingest.SplitChunks(text, size)
	if len(chunks) == 0 {
		return text
	}

	// Each goroutine writes only its own slot.
	results := make([]string, len(chunks))
	failed := make([]bool, len(chunks))

	var g errgroup.Group
	if r.Concurrency > 0 {
		g.SetLimit(r.Concurrency)
	}
	for _, chunk := range chunks {
		g.Go(func() error {
			out, err := r.Completer.Complete(ctx, PunctuationInstruction, chunk.Text)
			if err != nil {
				r.logChunkError(chunk, err)
				results[chunk.Index], failed[chunk.Index] = chunk.Text, true
				return nil
			}
			if out = strings.TrimSpace(out); out == "" {
				out = chunk.Text
			}
			results[chunk.Index] = out
			return nil
		})
	}
	_ = g.Wait()

	if allTrue(failed) {
		return text
	}
	return ingest.NormalizeSpace(strings.Join(results, " "))
}

func (r *Restorer) logChunkError(chunk ingest.TextChunk, err error) {
	if r.Logger == nil {
		return
	}
	r.Logger.Warn("punctuation restore failed",
		"chunk", chunk.Index,
		"chars", len(chunk.Text),
		"err", err,
	)
}

func allTrue(v []bool) bool {
	for _, b := range v {
		if !b {
			return false
		}
	}
	return true
}
