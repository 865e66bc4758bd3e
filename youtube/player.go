package youtube

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/fwojciec/ingest"
)

// playerResponseMarker marks the start of the player response JSON in watch page HTML.
const playerResponseMarker = "ytInitialPlayerResponse = "

type playerResponse struct {
	Captions *struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
	PlayabilityStatus *struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" = auto-generated
}

// parsePlayerResponse extracts and decodes ytInitialPlayerResponse from
// watch page HTML.
func parsePlayerResponse(page []byte) (*playerResponse, error) {
	idx := strings.Index(string(page), playerResponseMarker)
	if idx < 0 {
		return nil, errors.New("ytInitialPlayerResponse not found in watch page")
	}
	data := extractJSON(page[idx+len(playerResponseMarker):])
	if data == nil {
		return nil, errors.New("failed to extract ytInitialPlayerResponse JSON")
	}

	var resp playerResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode ytInitialPlayerResponse: %w", err)
	}
	return &resp, nil
}

// captionTrack picks the caption track to download. A playable video
// without a captions section has captions disabled; an unplayable video or
// one without usable tracks has no transcript.
func (p *playerResponse) captionTrack(langs []string) (captionTrack, error) {
	if s := p.PlayabilityStatus; s != nil && s.Status != "" && s.Status != "OK" {
		return captionTrack{}, ingest.Errorf(ingest.ENOTRANSCRIPT, "No transcript available for this video.")
	}
	if p.Captions == nil {
		return captionTrack{}, ingest.Errorf(ingest.ECAPTIONSDISABLED, "This video has captions disabled.")
	}
	tracks := p.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return captionTrack{}, ingest.Errorf(ingest.ENOTRANSCRIPT, "No transcript available for this video.")
	}
	track, ok := pickBestTrack(tracks, langs)
	if !ok {
		return captionTrack{}, ingest.Errorf(ingest.ENOTRANSCRIPT, "No transcript available for this video.")
	}
	return track, nil
}

// needsPoToken reports whether a caption track URL requires a PoToken (browser-only).
func needsPoToken(baseURL string) bool {
	return strings.Contains(baseURL, "&exp=xpe")
}

// pickBestTrack selects the best usable caption track for the given language
// preferences: a manual track, then an auto-generated one, then any English
// track, then the first usable track.
func pickBestTrack(tracks []captionTrack, langs []string) (captionTrack, bool) {
	usable := make([]captionTrack, 0, len(tracks))
	for _, t := range tracks {
		if t.BaseURL != "" && !needsPoToken(t.BaseURL) {
			usable = append(usable, t)
		}
	}
	if len(usable) == 0 {
		return captionTrack{}, false
	}
	for _, lang := range langs {
		for _, t := range usable {
			if t.LanguageCode == lang && t.Kind != "asr" {
				return t, true
			}
		}
	}
	for _, lang := range langs {
		for _, t := range usable {
			if t.LanguageCode == lang {
				return t, true
			}
		}
	}
	for _, t := range usable {
		if strings.HasPrefix(t.LanguageCode, "en") {
			return t, true
		}
	}
	return usable[0], true
}

// extractJSON extracts a complete JSON object starting at b[0] == '{' by tracking brace depth.
func extractJSON(b []byte) []byte {
	if len(b) == 0 || b[0] != '{' {
		return nil
	}
	depth := 0
	inStr := false
	escaped := false
	for i, c := range b {
		if inStr {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return b[:i+1]
			}
		}
	}
	return nil
}
