package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/openchain-labs/openchain-ir/internal/metrics"
)

const (
	geminiMaxRetries = 2
	geminiRetryDelay = 2 * time.Second
)

type GeminiProvider struct {
	client *genai.Client
	model  string
}

func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GeminiProvider{
		client: client,
		model:  model,
	}, nil
}

func (p *GeminiProvider) Name() string {
	return "gemini"
}

// Generate asks the model for a completion, retrying with backoff when the
// API reports rate limiting.
func (p *GeminiProvider) Generate(ctx context.Context, prompt string) (string, error) {
	var err error
	defer func(start time.Time) {
		metrics.CollectRequestsMetric("gemini", "generate_content", err, start)
	}(time.Now())

	delay := geminiRetryDelay
	for attempt := 0; attempt < geminiMaxRetries; attempt++ {
		var resp *genai.GenerateContentResponse
		resp, err = p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), nil)
		if err == nil {
			text := resp.Text()
			if text == "" {
				err = fmt.Errorf("gemini: empty response")

				return "", err
			}

			return text, nil
		}

		if !isRateLimited(err) || attempt == geminiMaxRetries-1 {
			break
		}

		select {
		case <-ctx.Done():
			err = ctx.Err()

			return "", err
		case <-time.After(delay):
		}
		delay *= 2
	}

	return "", fmt.Errorf("gemini generate: %w", err)
}

func isRateLimited(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}
