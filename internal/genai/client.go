// Package genai wraps the Gemini API behind the single Generate call the
// orchestration layer needs. The output is raw text with no structural
// guarantee; recovering structure is the extract package's job.
package genai

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"
)

// ObserveGeneration, when set, receives the wall-clock duration in seconds of
// every model call. Wired to a Prometheus histogram at startup.
var ObserveGeneration func(seconds float64)

// Client is a Gemini text-generation client pinned to one model version.
type Client struct {
	gc    *genai.Client
	model string
}

func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key required")
	}
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Client{gc: gc, model: model}, nil
}

// Model returns the model version tag recorded on generated analyses.
func (c *Client) Model() string {
	return c.model
}

// Generate sends one prompt and returns the raw response text.
func (c *Client) Generate(ctx context.Context, prompt, system string, temperature float32, maxTokens int32) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(temperature),
		MaxOutputTokens: maxTokens,
	}
	if system != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		}
	}

	start := time.Now()
	resp, err := c.gc.Models.GenerateContent(ctx, c.model, genai.Text(prompt), config)
	if ObserveGeneration != nil {
		ObserveGeneration(time.Since(start).Seconds())
	}
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}
	return text, nil
}
