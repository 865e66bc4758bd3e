package ingest

import (
	"context"
	"strings"
	"time"
)

// TranscriptSegment is one timed caption unit of a video's caption track.
type TranscriptSegment struct {
	Text  string
	Start time.Duration
}

// TranscriptService retrieves caption tracks for video sources.
type TranscriptService interface {
	// FetchTranscript returns the ordered caption segments for the video at url.
	// Returns ECAPTIONSDISABLED, ENOTRANSCRIPT, ERATELIMITED or ETRANSCRIPT
	// on failure. An empty result is not an error.
	FetchTranscript(ctx context.Context, url string) ([]TranscriptSegment, error)
}

// JoinSegments concatenates segment texts in order, separated by single
// spaces, and normalizes the whitespace of the result.
func JoinSegments(segments []TranscriptSegment) string {
	parts := make([]string, len(segments))
	for i, s := range segments {
		parts[i] = s.Text
	}
	return NormalizeSpace(strings.Join(parts, " "))
}
