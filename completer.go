package ingest

import "context"

// Completer is a text-completion service.
type Completer interface {
	// Complete sends text as user content under the given system instruction
	// and returns the generated text.
	Complete(ctx context.Context, instruction, text string) (string, error)
}

// Restorer restores punctuation in unpunctuated text such as transcripts.
type Restorer interface {
	// Restore returns text with punctuation restored. It is best-effort:
	// on any failure the input is returned unchanged.
	Restore(ctx context.Context, text string) string
}
