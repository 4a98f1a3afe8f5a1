package llm

import (
	"context"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

const chatSystemPrompt = "You write git commit messages. Reply with the requested commit messages only, one per line, with no numbering, quotes or commentary."

// ChatGenerator adapts an Eino chat model to the Generator interface.
// Chat completions return one message, so the requested count is carried
// by the prompt text and the whole reply is one raw candidate string.
type ChatGenerator struct {
	provider string
	model    model.BaseChatModel
}

// NewChatGenerator wraps an Eino chat model
func NewChatGenerator(provider string, cm model.BaseChatModel) *ChatGenerator {
	return &ChatGenerator{provider: provider, model: cm}
}

// Generate sends the prompt as a single user turn
func (g *ChatGenerator) Generate(ctx context.Context, prompt string, _ int) ([]string, error) {
	messages := []*schema.Message{
		schema.SystemMessage(chatSystemPrompt),
		schema.UserMessage(prompt),
	}

	resp, err := g.model.Generate(ctx, messages)
	if err != nil {
		return nil, NewError(g.provider, err)
	}
	if resp == nil || strings.TrimSpace(resp.Content) == "" {
		return nil, nil
	}
	return []string{resp.Content}, nil
}
