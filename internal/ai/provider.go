package ai

import "context"

// Provider generates free-form text for a forensic prompt.
type Provider interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}
