package ingest

import (
	"net/url"
	"regexp"
	"strings"
)

// SourceKind identifies how content is retrieved for a source.
type SourceKind string

// Supported source kinds.
const (
	SourceVideoTranscript SourceKind = "video"
	SourceWebPage         SourceKind = "page"
)

// Source is a validated absolute URL tagged with its kind.
// Use Classify to construct one.
type Source struct {
	URL     string
	Kind    SourceKind
	VideoID string // set for SourceVideoTranscript only
}

// videoURLPattern matches canonical watch links, short links, embed links
// and the /shorts/ and /live/ paths. The video ID is the first submatch.
var videoURLPattern = regexp.MustCompile(`(?i)(?:youtube\.com/(?:[^/]+/.+/|(?:v|e(?:mbed)?|shorts|live)/|.*[?&]v=)|youtu\.be/)([^"&?/\s]{11})`)

var schemePattern = regexp.MustCompile(`(?i)^https?://`)

// Classify validates raw user input and determines how its content should
// be retrieved. A missing scheme is replaced with https://.
// Returns EINVALID if the input cannot be coerced into an absolute URL.
func Classify(input string) (*Source, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return nil, Errorf(EINVALID, "Valid URL required")
	}
	if !schemePattern.MatchString(raw) {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, Errorf(EINVALID, "Valid URL required")
	}

	if id, ok := VideoID(raw); ok {
		return &Source{URL: raw, Kind: SourceVideoTranscript, VideoID: id}, nil
	}
	return &Source{URL: raw, Kind: SourceWebPage}, nil
}

// VideoID returns the video identifier embedded in a video-hosting URL.
// The bool result is false if rawURL is not a recognized video link.
func VideoID(rawURL string) (string, bool) {
	m := videoURLPattern.FindStringSubmatch(rawURL)
	if len(m) < 2 {
		return "", false
	}
	return m[1], true
}
