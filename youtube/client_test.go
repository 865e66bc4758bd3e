package youtube_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/ingest"
	"github.com/fwojciec/ingest/youtube"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Client implements ingest.TranscriptService at compile time.
var _ ingest.TranscriptService = (*youtube.Client)(nil)

const videoURL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

const timedText = `<?xml version="1.0" encoding="utf-8" ?><transcript>
<text start="0.5" dur="1.2">never gonna give you up</text>
<text start="1.7" dur="1.1">never gonna let you down</text>
<text start="2.8" dur="0.4">   </text>
<text start="3.2" dur="1.0">it&amp;#39;s over</text>
</transcript>`

// watchPage renders a watch page embedding the given player response JSON.
func watchPage(player string) string {
	return `<html><head><script>var ytInitialPlayerResponse = ` + player + `;var meta = {};</script></head><body></body></html>`
}

// newServer starts a fake video host. The caption track URL is relative so
// it resolves against the test server.
func newServer(t *testing.T, player string, timedTextStatus int) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /watch", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "dQw4w9WgXcQ", r.URL.Query().Get("v"))
		_, _ = w.Write([]byte(watchPage(player)))
	})
	mux.HandleFunc("GET /api/timedtext", func(w http.ResponseWriter, r *http.Request) {
		if timedTextStatus != http.StatusOK {
			w.WriteHeader(timedTextStatus)
			return
		}
		_, _ = w.Write([]byte(timedText))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func playerWithTracks(tracks string) string {
	return fmt.Sprintf(`{"playabilityStatus":{"status":"OK"},"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[%s]}}}`, tracks)
}

func TestClient_FetchTranscript(t *testing.T) {
	t.Parallel()

	t.Run("returns ordered segments", func(t *testing.T) {
		t.Parallel()

		server := newServer(t, playerWithTracks(`{"baseUrl":"/api/timedtext?v=dQw4w9WgXcQ&lang=en","languageCode":"en"}`), http.StatusOK)
		client := youtube.NewClient(youtube.WithBaseURL(server.URL))

		segs, err := client.FetchTranscript(context.Background(), videoURL)

		require.NoError(t, err)
		require.Len(t, segs, 3)
		assert.Equal(t, "never gonna give you up", segs[0].Text)
		assert.Equal(t, 500*time.Millisecond, segs[0].Start)
		assert.Equal(t, "never gonna let you down", segs[1].Text)
		assert.Equal(t, "it's over", segs[2].Text)
	})

	t.Run("captions section missing means captions disabled", func(t *testing.T) {
		t.Parallel()

		server := newServer(t, `{"playabilityStatus":{"status":"OK"}}`, http.StatusOK)
		client := youtube.NewClient(youtube.WithBaseURL(server.URL))

		_, err := client.FetchTranscript(context.Background(), videoURL)

		require.Error(t, err)
		assert.Equal(t, ingest.ECAPTIONSDISABLED, ingest.ErrorCode(err))
		assert.Equal(t, "This video has captions disabled.", ingest.ErrorMessage(err))
	})

	t.Run("unplayable video has no transcript", func(t *testing.T) {
		t.Parallel()

		server := newServer(t, `{"playabilityStatus":{"status":"ERROR","reason":"Video unavailable"}}`, http.StatusOK)
		client := youtube.NewClient(youtube.WithBaseURL(server.URL))

		_, err := client.FetchTranscript(context.Background(), videoURL)

		assert.Equal(t, ingest.ENOTRANSCRIPT, ingest.ErrorCode(err))
	})

	t.Run("empty track list has no transcript", func(t *testing.T) {
		t.Parallel()

		server := newServer(t, playerWithTracks(""), http.StatusOK)
		client := youtube.NewClient(youtube.WithBaseURL(server.URL))

		_, err := client.FetchTranscript(context.Background(), videoURL)

		assert.Equal(t, ingest.ENOTRANSCRIPT, ingest.ErrorCode(err))
		assert.Equal(t, "No transcript available for this video.", ingest.ErrorMessage(err))
	})

	t.Run("tracks requiring a PoToken are unusable", func(t *testing.T) {
		t.Parallel()

		server := newServer(t, playerWithTracks(`{"baseUrl":"/api/timedtext?v=x&exp=xpe","languageCode":"en"}`), http.StatusOK)
		client := youtube.NewClient(youtube.WithBaseURL(server.URL))

		_, err := client.FetchTranscript(context.Background(), videoURL)

		assert.Equal(t, ingest.ENOTRANSCRIPT, ingest.ErrorCode(err))
	})

	t.Run("captcha page is rate limiting", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html><body><div class="g-recaptcha"></div></body></html>`))
		}))
		defer server.Close()

		_, err := youtube.NewClient(youtube.WithBaseURL(server.URL)).FetchTranscript(context.Background(), videoURL)

		assert.Equal(t, ingest.ERATELIMITED, ingest.ErrorCode(err))
		assert.Equal(t, "Too many requests. Please try again later.", ingest.ErrorMessage(err))
	})

	t.Run("429 on watch page is rate limiting", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		_, err := youtube.NewClient(youtube.WithBaseURL(server.URL)).FetchTranscript(context.Background(), videoURL)

		assert.Equal(t, ingest.ERATELIMITED, ingest.ErrorCode(err))
	})

	t.Run("429 on caption track is rate limiting", func(t *testing.T) {
		t.Parallel()

		server := newServer(t, playerWithTracks(`{"baseUrl":"/api/timedtext?lang=en","languageCode":"en"}`), http.StatusTooManyRequests)
		client := youtube.NewClient(youtube.WithBaseURL(server.URL))

		_, err := client.FetchTranscript(context.Background(), videoURL)

		assert.Equal(t, ingest.ERATELIMITED, ingest.ErrorCode(err))
	})

	t.Run("unexpected failures are generic transcript errors", func(t *testing.T) {
		t.Parallel()

		server := newServer(t, playerWithTracks(`{"baseUrl":"/api/timedtext?lang=en","languageCode":"en"}`), http.StatusInternalServerError)
		client := youtube.NewClient(youtube.WithBaseURL(server.URL))

		_, err := client.FetchTranscript(context.Background(), videoURL)

		assert.Equal(t, ingest.ETRANSCRIPT, ingest.ErrorCode(err))
		assert.Equal(t, "Could not get transcript from this YouTube video.", ingest.ErrorMessage(err))
	})

	t.Run("missing player response is a generic transcript error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html><body>nothing here</body></html>`))
		}))
		defer server.Close()

		_, err := youtube.NewClient(youtube.WithBaseURL(server.URL)).FetchTranscript(context.Background(), videoURL)

		assert.Equal(t, ingest.ETRANSCRIPT, ingest.ErrorCode(err))
	})

	t.Run("unreachable host is a generic transcript error", func(t *testing.T) {
		t.Parallel()

		client := youtube.NewClient(
			youtube.WithBaseURL("http://non-existent-host.invalid"),
			youtube.WithTimeout(100*time.Millisecond),
		)

		_, err := client.FetchTranscript(context.Background(), videoURL)

		assert.Equal(t, ingest.ETRANSCRIPT, ingest.ErrorCode(err))
	})

	t.Run("rejects non-video URLs", func(t *testing.T) {
		t.Parallel()

		_, err := youtube.NewClient().FetchTranscript(context.Background(), "https://example.com/article")

		assert.Equal(t, ingest.EINVALID, ingest.ErrorCode(err))
	})
}
