package ingest

import (
	"strings"
	"unicode/utf8"
)

// TextChunk is a contiguous slice of a larger text, indexed by its position
// among the chunks of that text.
type TextChunk struct {
	Index int
	Text  string
}

// SplitChunks splits text into chunks of at most size bytes.
//
// When a window ends strictly inside the text, the boundary is pulled back
// to just after the last whitespace at or before the window edge, so words
// are never split. A window without any whitespace is cut at the nearest
// rune boundary instead. Chunks are trimmed; chunks that are empty after
// trimming are dropped without consuming an index.
func SplitChunks(text string, size int) []TextChunk {
	if size <= 0 {
		size = len(text)
	}

	var chunks []TextChunk
	for i := 0; i < len(text); {
		end := min(i+size, len(text))
		if end < len(text) {
			if ws := lastSpace(text, i, end); ws > i {
				end = ws + 1
			} else {
				for end > i+1 && !utf8.RuneStart(text[end]) {
					end--
				}
			}
		}

		if s := strings.TrimSpace(text[i:end]); s != "" {
			chunks = append(chunks, TextChunk{Index: len(chunks), Text: s})
		}
		i = end
	}
	return chunks
}

// lastSpace returns the index of the last ASCII whitespace byte in
// text[from:to+1], or -1 if there is none.
func lastSpace(text string, from, to int) int {
	if to >= len(text) {
		to = len(text) - 1
	}
	for j := to; j >= from; j-- {
		if isSpace(text[j]) {
			return j
		}
	}
	return -1
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
