package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type fakeModels struct {
	resp   *genai.GenerateContentResponse
	err    error
	model  string
	config *genai.GenerateContentConfig
	calls  int
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, _ []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.calls++
	f.model = model
	f.config = config
	return f.resp, f.err
}

func candidate(parts ...*genai.Part) *genai.Candidate {
	return &genai.Candidate{Content: &genai.Content{Role: "model", Parts: parts}}
}

func TestGeminiGenerator_RequestsCandidateCount(t *testing.T) {
	models := &fakeModels{resp: &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			candidate(&genai.Part{Text: "feat: add parser"}),
			candidate(&genai.Part{Text: "thinking...", Thought: true}, &genai.Part{Text: "fix: handle "}, &genai.Part{Text: "empty input"}),
			candidate(&genai.Part{Text: "   "}),
			{Content: nil},
		},
	}}

	got, err := NewGeminiGenerator(models, "gemini-2.0-flash").Generate(context.Background(), "prompt", 3)
	require.NoError(t, err)

	assert.Equal(t, []string{"feat: add parser", "fix: handle empty input"}, got)
	assert.Equal(t, "gemini-2.0-flash", models.model)
	require.NotNil(t, models.config)
	assert.Equal(t, int32(3), models.config.CandidateCount)
}

func TestGeminiGenerator_ClampsCount(t *testing.T) {
	models := &fakeModels{resp: &genai.GenerateContentResponse{}}
	gen := NewGeminiGenerator(models, "m")

	_, err := gen.Generate(context.Background(), "p", 0)
	require.NoError(t, err)
	assert.Equal(t, int32(1), models.config.CandidateCount)

	_, err = gen.Generate(context.Background(), "p", 50)
	require.NoError(t, err)
	assert.Equal(t, int32(MaxCandidateCount), models.config.CandidateCount)
}

func TestGeminiGenerator_ClassifiesErrors(t *testing.T) {
	models := &fakeModels{err: genai.APIError{Code: 401, Message: "API key not valid", Status: "UNAUTHENTICATED"}}

	_, err := NewGeminiGenerator(models, "m").Generate(context.Background(), "p", 1)
	require.Error(t, err)

	var llmErr *Error
	require.True(t, errors.As(err, &llmErr))
	assert.Equal(t, KindUnauthorized, llmErr.Kind)
	assert.Equal(t, 401, llmErr.StatusCode)
	assert.Equal(t, "gemini", llmErr.Provider)
}

func TestGeminiGenerator_CancelledContextPassesThrough(t *testing.T) {
	models := &fakeModels{err: context.Canceled}

	_, err := NewGeminiGenerator(models, "m").Generate(context.Background(), "p", 1)
	assert.ErrorIs(t, err, context.Canceled)

	var llmErr *Error
	assert.False(t, errors.As(err, &llmErr))
}

type fakeChatModel struct {
	reply *schema.Message
	err   error
	input []*schema.Message
}

func (f *fakeChatModel) Generate(_ context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	f.input = input
	return f.reply, f.err
}

func (f *fakeChatModel) Stream(context.Context, []*schema.Message, ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("streaming not used")
}

func TestChatGenerator_Generate(t *testing.T) {
	cm := &fakeChatModel{reply: schema.AssistantMessage("feat: add parser\nfix: handle empty input", nil)}

	got, err := NewChatGenerator("openai", cm).Generate(context.Background(), "the prompt", 2)
	require.NoError(t, err)

	assert.Equal(t, []string{"feat: add parser\nfix: handle empty input"}, got)
	require.Len(t, cm.input, 2)
	assert.Equal(t, schema.System, cm.input[0].Role)
	assert.Equal(t, schema.User, cm.input[1].Role)
	assert.Equal(t, "the prompt", cm.input[1].Content)
}

func TestChatGenerator_EmptyReply(t *testing.T) {
	cm := &fakeChatModel{reply: schema.AssistantMessage("  \n", nil)}

	got, err := NewChatGenerator("openai", cm).Generate(context.Background(), "p", 1)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestChatGenerator_ClassifiesErrors(t *testing.T) {
	cm := &fakeChatModel{err: errors.New("error, status code: 429, status: 429 Too Many Requests, message: slow down")}

	_, err := NewChatGenerator("deepseek", cm).Generate(context.Background(), "p", 1)

	var llmErr *Error
	require.True(t, errors.As(err, &llmErr))
	assert.Equal(t, KindRateLimited, llmErr.Kind)
	assert.Equal(t, "deepseek", llmErr.Provider)
}
