package llm

import (
	"context"
	"strings"

	"google.golang.org/genai"

	"github.com/huimingz/ai-commit-go/internal/config"
	"github.com/huimingz/ai-commit-go/internal/log"
)

// MaxCandidateCount is the most candidates Gemini returns for one request
const MaxCandidateCount = 8

// contentGenerator is the slice of *genai.Models used here
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiProvider implements Provider for Google Gemini
type GeminiProvider struct {
	cfg config.ModelConfig
}

// NewGeminiProvider creates a new Gemini provider
func NewGeminiProvider(cfg config.ModelConfig) *GeminiProvider {
	return &GeminiProvider{cfg: cfg}
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// GetConfig returns the model configuration
func (p *GeminiProvider) GetConfig() config.ModelConfig {
	return p.cfg
}

// CreateGenerator creates a Gemini client for the configured model
func (p *GeminiProvider) CreateGenerator(ctx context.Context) (Generator, error) {
	cc := &genai.ClientConfig{
		APIKey:  p.cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if p.cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: p.cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, err
	}
	return NewGeminiGenerator(client.Models, p.cfg.Model), nil
}

// GeminiGenerator asks Gemini for several candidates in a single request
type GeminiGenerator struct {
	models contentGenerator
	model  string
}

// NewGeminiGenerator creates a generator backed by the given models service
func NewGeminiGenerator(models contentGenerator, model string) *GeminiGenerator {
	return &GeminiGenerator{models: models, model: model}
}

// Generate returns the text of every non-empty candidate in response order
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string, count int) ([]string, error) {
	if count < 1 {
		count = 1
	}
	if count > MaxCandidateCount {
		count = MaxCandidateCount
	}

	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		CandidateCount: int32(count),
	})
	if err != nil {
		return nil, NewError("gemini", err)
	}
	if resp == nil {
		return nil, nil
	}

	var out []string
	for i, c := range resp.Candidates {
		if c == nil || c.Content == nil {
			log.Debug("Gemini candidate %d has no content", i)
			continue
		}
		var b strings.Builder
		for _, part := range c.Content.Parts {
			if part == nil || part.Thought {
				continue
			}
			b.WriteString(part.Text)
		}
		if text := b.String(); strings.TrimSpace(text) != "" {
			out = append(out, text)
		}
	}
	return out, nil
}
