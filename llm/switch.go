package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

type Model string

const (
	OpenAI Model = "openai"
	Gemini Model = "gemini"
)

// Client turns a user prompt into text.
type Client interface {
	// Ready reports a ConfigError when the provider cannot be called.
	Ready() error
	Generate(ctx context.Context, prompt string) (string, error)
}

// UpstreamError is a non-2xx answer from the provider, kept verbatim so the
// caller can forward it.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("API returned status %d: %s", e.StatusCode, e.Body)
}

// ConfigError means the provider cannot be called at all, typically a
// missing or placeholder key.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string { return e.Message }

type Options struct {
	APIKey       string
	Model        string
	URL          string
	SystemPrompt string
	HTTPClient   *http.Client
}

func (o Options) httpClient() *http.Client {
	if o.HTTPClient != nil {
		return o.HTTPClient
	}
	return &http.Client{Timeout: 60 * time.Second}
}

func (o Options) systemPrompt() string {
	if o.SystemPrompt != "" {
		return o.SystemPrompt
	}
	return DefaultSystemPrompt
}

// New returns the client for model.
func New(model Model, opts Options) (Client, error) {
	switch model {
	case OpenAI:
		return NewOpenAIClient(opts), nil
	case Gemini:
		return NewGeminiClient(opts), nil
	default:
		return nil, fmt.Errorf("unsupported model: %s (supported: %s, %s)", model, OpenAI, Gemini)
	}
}
