package llm

import (
	"context"

	"github.com/cloudwego/eino-ext/components/model/openai"

	"github.com/huimingz/ai-commit-go/internal/config"
)

const (
	// DeepseekDefaultBaseURL is the default API base URL for Deepseek
	DeepseekDefaultBaseURL = "https://api.deepseek.com/v1"
	// OllamaDefaultBaseURL is the default API base URL for Ollama
	OllamaDefaultBaseURL = "http://localhost:11434/v1"
	// GrokDefaultBaseURL is the default API base URL for Grok
	GrokDefaultBaseURL = "https://api.x.ai/v1"
)

// OpenAIProvider implements Provider for OpenAI and the OpenAI-compatible
// APIs of Deepseek, Ollama and Grok
type OpenAIProvider struct {
	name string
	cfg  config.ModelConfig
}

// NewOpenAIProvider creates a new OpenAI provider
func NewOpenAIProvider(cfg config.ModelConfig) *OpenAIProvider {
	return &OpenAIProvider{name: "openai", cfg: cfg}
}

// NewDeepseekProvider creates a Deepseek provider
func NewDeepseekProvider(cfg config.ModelConfig) *OpenAIProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DeepseekDefaultBaseURL
	}
	return &OpenAIProvider{name: "deepseek", cfg: cfg}
}

// NewOllamaProvider creates a provider for a local Ollama server
func NewOllamaProvider(cfg config.ModelConfig) *OpenAIProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = OllamaDefaultBaseURL
	}
	// Ollama doesn't require API key, set a placeholder
	if cfg.APIKey == "" {
		cfg.APIKey = "ollama"
	}
	return &OpenAIProvider{name: "ollama", cfg: cfg}
}

// NewGrokProvider creates an xAI Grok provider
func NewGrokProvider(cfg config.ModelConfig) *OpenAIProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = GrokDefaultBaseURL
	}
	return &OpenAIProvider{name: "grok", cfg: cfg}
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return p.name
}

// GetConfig returns the model configuration
func (p *OpenAIProvider) GetConfig() config.ModelConfig {
	return p.cfg
}

// CreateGenerator creates an Eino chat model and wraps it as a Generator
func (p *OpenAIProvider) CreateGenerator(ctx context.Context) (Generator, error) {
	cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:  p.cfg.APIKey,
		Model:   p.cfg.Model,
		BaseURL: p.cfg.BaseURL,
	})
	if err != nil {
		return nil, err
	}
	return NewChatGenerator(p.name, cm), nil
}
