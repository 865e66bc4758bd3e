package pipeline_test

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/ingest"
	"github.com/fwojciec/ingest/mock"
	"github.com/fwojciec/ingest/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// longText returns n space-separated numbered words, e.g. "w0 w1 w2".
func longText(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = "w" + strings.Repeat("x", i%7) + "y"
	}
	return strings.Join(words, " ")
}

// upperCompleter punctuates by upper-casing its input and appending a period.
func upperCompleter() *mock.Completer {
	return &mock.Completer{
		CompleteFn: func(_ context.Context, _ string, text string) (string, error) {
			return strings.ToUpper(text) + ".", nil
		},
	}
}

func TestRestorer_Restore(t *testing.T) {
	t.Parallel()

	t.Run("returns input unchanged without a completer", func(t *testing.T) {
		t.Parallel()

		r := pipeline.NewRestorer(nil)

		for _, text := range []string{"short", longText(200), "  spaced   out  text that is long enough to qualify for restoring  "} {
			assert.Equal(t, text, r.Restore(context.Background(), text))
		}
	})

	t.Run("returns short input unchanged even with a completer", func(t *testing.T) {
		t.Parallel()

		called := false
		r := pipeline.NewRestorer(&mock.Completer{
			CompleteFn: func(context.Context, string, string) (string, error) {
				called = true
				return "changed", nil
			},
		})

		text := strings.Repeat("a", pipeline.MinRestoreChars-1)
		assert.Equal(t, text, r.Restore(context.Background(), text))
		assert.False(t, called)
	})

	t.Run("counts characters rather than bytes", func(t *testing.T) {
		t.Parallel()

		called := false
		r := pipeline.NewRestorer(&mock.Completer{
			CompleteFn: func(context.Context, string, string) (string, error) {
				called = true
				return "changed", nil
			},
		})

		// 30 characters, 60 bytes.
		text := strings.Repeat("é", 30)
		assert.Equal(t, text, r.Restore(context.Background(), text))
		assert.False(t, called)
	})

	t.Run("sends the fixed instruction and each chunk", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		var instructions, texts []string
		r := pipeline.NewRestorer(&mock.Completer{
			CompleteFn: func(_ context.Context, instruction, text string) (string, error) {
				mu.Lock()
				defer mu.Unlock()
				instructions = append(instructions, instruction)
				texts = append(texts, text)
				return text, nil
			},
		})
		r.ChunkSize = 60

		text := longText(40)
		out := r.Restore(context.Background(), text)

		assert.Equal(t, text, out)
		require.Greater(t, len(texts), 1)
		for _, in := range instructions {
			assert.Equal(t, pipeline.PunctuationInstruction, in)
		}
		for _, chunk := range texts {
			assert.LessOrEqual(t, len(chunk), 60)
			assert.Equal(t, strings.TrimSpace(chunk), chunk)
		}
	})

	t.Run("reassembles in chunk order regardless of completion order", func(t *testing.T) {
		t.Parallel()

		text := longText(300)
		var want string
		for i := range 5 {
			r := pipeline.NewRestorer(&mock.Completer{
				CompleteFn: func(_ context.Context, _ string, chunk string) (string, error) {
					// Finish in a random order.
					time.Sleep(time.Duration(rand.IntN(5)) * time.Millisecond)
					return strings.ToUpper(chunk) + ".", nil
				},
			})
			r.ChunkSize = 80

			got := r.Restore(context.Background(), text)
			if i == 0 {
				want = got
				continue
			}
			assert.Equal(t, want, got)
		}

		var expected []string
		for _, c := range ingest.SplitChunks(text, 80) {
			expected = append(expected, strings.ToUpper(c.Text)+".")
		}
		assert.Equal(t, strings.Join(expected, " "), want)
	})

	t.Run("runs chunks concurrently", func(t *testing.T) {
		t.Parallel()

		var inFlight, peak atomic.Int32
		release := make(chan struct{})
		r := pipeline.NewRestorer(&mock.Completer{
			CompleteFn: func(_ context.Context, _ string, text string) (string, error) {
				n := inFlight.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				<-release
				inFlight.Add(-1)
				return text, nil
			},
		})
		r.ChunkSize = 50

		done := make(chan string)
		go func() { done <- r.Restore(context.Background(), longText(60)) }()

		require.Eventually(t, func() bool { return peak.Load() >= 2 }, time.Second, 5*time.Millisecond)
		close(release)
		<-done
	})

	t.Run("honors the concurrency limit", func(t *testing.T) {
		t.Parallel()

		var inFlight, peak atomic.Int32
		r := pipeline.NewRestorer(&mock.Completer{
			CompleteFn: func(_ context.Context, _ string, text string) (string, error) {
				n := inFlight.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				time.Sleep(2 * time.Millisecond)
				inFlight.Add(-1)
				return text, nil
			},
		})
		r.ChunkSize = 50
		r.Concurrency = 1

		r.Restore(context.Background(), longText(60))

		assert.Equal(t, int32(1), peak.Load())
	})

	t.Run("empty completion keeps the chunk's original text", func(t *testing.T) {
		t.Parallel()

		r := pipeline.NewRestorer(&mock.Completer{
			CompleteFn: func(_ context.Context, _ string, text string) (string, error) {
				if strings.HasPrefix(text, "wy") {
					return "   ", nil
				}
				return strings.ToUpper(text), nil
			},
		})
		r.ChunkSize = 40

		text := longText(50)
		out := r.Restore(context.Background(), text)

		var expected []string
		for _, c := range ingest.SplitChunks(text, 40) {
			if strings.HasPrefix(c.Text, "wy") {
				expected = append(expected, c.Text)
			} else {
				expected = append(expected, strings.ToUpper(c.Text))
			}
		}
		assert.Equal(t, strings.Join(expected, " "), out)
	})

	t.Run("failed chunk degrades to its original text", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		first := ingest.SplitChunks(longText(50), 40)[0].Text
		r := pipeline.NewRestorer(&mock.Completer{
			CompleteFn: func(_ context.Context, _ string, text string) (string, error) {
				calls.Add(1)
				if text == first {
					return "", errors.New("service unavailable")
				}
				return strings.ToUpper(text), nil
			},
		})
		r.ChunkSize = 40

		out := r.Restore(context.Background(), longText(50))

		assert.True(t, strings.HasPrefix(out, first+" "))
		assert.Contains(t, out, "WXY")
		assert.Greater(t, calls.Load(), int32(1))
	})

	t.Run("returns input verbatim when every chunk fails", func(t *testing.T) {
		t.Parallel()

		r := pipeline.NewRestorer(&mock.Completer{
			CompleteFn: func(context.Context, string, string) (string, error) {
				return "", errors.New("quota exceeded")
			},
		})
		r.ChunkSize = 40

		text := "  " + longText(50) + "\n"
		assert.Equal(t, text, r.Restore(context.Background(), text))
	})

	t.Run("single chunk for typical input", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		r := pipeline.NewRestorer(&mock.Completer{
			CompleteFn: func(_ context.Context, _ string, text string) (string, error) {
				calls.Add(1)
				return "Hello, world. " + text, nil
			},
		})

		out := r.Restore(context.Background(), longText(20))

		assert.Equal(t, int32(1), calls.Load())
		assert.True(t, strings.HasPrefix(out, "Hello, world. "))
	})

	t.Run("upper-case completer punctuates all chunks", func(t *testing.T) {
		t.Parallel()

		r := pipeline.NewRestorer(upperCompleter())
		r.ChunkSize = 100

		out := r.Restore(context.Background(), longText(100))

		assert.Equal(t, strings.ToUpper(out), out)
		assert.True(t, strings.HasSuffix(out, "."))
		assert.NotContains(t, out, "  ")
	})
}
