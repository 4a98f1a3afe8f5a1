package llm

import (
	"context"

	"github.com/huimingz/ai-commit-go/internal/config"
)

// Generator is the AI boundary: one prompt in, raw candidate strings out.
// Implementations report failures as *Error.
type Generator interface {
	Generate(ctx context.Context, prompt string, count int) ([]string, error)
}

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// GetConfig returns the model configuration
	GetConfig() config.ModelConfig

	// CreateGenerator builds a Generator for the configured model
	CreateGenerator(ctx context.Context) (Generator, error)
}
