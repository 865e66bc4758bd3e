// Package gemini implements ingest.Completer using Google Gemini.
package gemini

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/ingest"
	"google.golang.org/genai"
)

// Completer defaults.
const (
	DefaultModel       = "gemini-2.5-flash"
	DefaultTimeout     = 60 * time.Second
	DefaultTemperature = float32(0.2)
)

// Ensure Completer implements ingest.Completer at compile time.
var _ ingest.Completer = (*Completer)(nil)

// Completer sends single-turn prompts to a Gemini model.
type Completer struct {
	client      *genai.Client
	model       string
	timeout     time.Duration
	temperature float32
}

// Option configures a Completer.
type Option func(*Completer)

// WithModel sets the model name. An empty name keeps DefaultModel.
func WithModel(model string) Option {
	return func(c *Completer) {
		if model != "" {
			c.model = model
		}
	}
}

// WithTimeout bounds each completion call. Defaults to DefaultTimeout (60s).
func WithTimeout(d time.Duration) Option {
	return func(c *Completer) {
		c.timeout = d
	}
}

// WithTemperature sets the sampling temperature. Defaults to 0.2.
func WithTemperature(t float32) Option {
	return func(c *Completer) {
		c.temperature = t
	}
}

// NewCompleter creates a new Completer.
func NewCompleter(client *genai.Client, opts ...Option) *Completer {
	c := &Completer{
		client:      client,
		model:       DefaultModel,
		timeout:     DefaultTimeout,
		temperature: DefaultTemperature,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Complete sends text as user content under the given system instruction.
func (c *Completer) Complete(ctx context.Context, instruction, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ingest.Errorf(ingest.EINVALID, "completion text required")
	}
	if c.client == nil {
		return "", ingest.Errorf(ingest.EINTERNAL, "gemini client not configured")
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{genai.NewContentFromText(text, genai.RoleUser)},
		BuildConfig(instruction, c.temperature),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", ingest.Errorf(ingest.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for a completion call.
func BuildConfig(instruction string, temperature float32) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: instruction}},
		},
		Temperature: &temperature,
	}
}
