package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	openaiURL          = "https://api.openai.com/v1/responses"
	defaultOpenAIModel = "gpt-4.1-mini"
)

// OpenAIClient calls the Responses API.
type OpenAIClient struct {
	opts Options
}

func NewOpenAIClient(opts Options) *OpenAIClient {
	if opts.URL == "" {
		opts.URL = openaiURL
	}
	if opts.Model == "" {
		opts.Model = defaultOpenAIModel
	}
	return &OpenAIClient{opts: opts}
}

type openaiInput struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openaiRequest struct {
	Model string        `json:"model"`
	Input []openaiInput `json:"input"`
}

type openaiResponse struct {
	OutputText string `json:"output_text"`
	Output     []struct {
		Type    string `json:"type"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
}

func (c *OpenAIClient) Ready() error {
	if IsPlaceholderKey(c.opts.APIKey) {
		return &ConfigError{Message: "OPENAI_API_KEY is missing or still set to a placeholder. Use a real key and restart the server."}
	}
	return nil
}

func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	if err := c.Ready(); err != nil {
		return "", err
	}

	body := openaiRequest{
		Model: c.opts.Model,
		Input: []openaiInput{
			{Role: "system", Content: c.opts.systemPrompt()},
			{Role: "user", Content: prompt},
		},
	}
	jsonData, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.URL, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.opts.APIKey)

	resp, err := c.opts.httpClient().Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &UpstreamError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var res openaiResponse
	if err := json.Unmarshal(raw, &res); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	return extractOpenAIText(res), nil
}

// extractOpenAIText prefers the aggregated output_text and falls back to
// joining the output_text parts of each message.
func extractOpenAIText(res openaiResponse) string {
	if text := strings.TrimSpace(res.OutputText); text != "" {
		return res.OutputText
	}

	var b strings.Builder
	for _, item := range res.Output {
		for _, part := range item.Content {
			if part.Type == "output_text" && part.Text != "" {
				if b.Len() > 0 {
					b.WriteString("\n")
				}
				b.WriteString(part.Text)
			}
		}
	}
	if b.Len() == 0 {
		return NoOutput
	}
	return b.String()
}
