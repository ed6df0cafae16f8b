package inference

import (
	"context"
	"errors"
	"testing"

	"github.com/isdelr/quizmaster-be/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

type fakeModel struct {
	reply   string
	err     error
	prompts []string
}

func (m *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	for _, msg := range messages {
		for _, part := range msg.Parts {
			if text, ok := part.(llms.TextContent); ok {
				m.prompts = append(m.prompts, text.Text)
			}
		}
	}
	if m.err != nil {
		return nil, m.err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: m.reply}}}, nil
}

func (m *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

func TestLangChainClient_Generate(t *testing.T) {
	fm := &fakeModel{reply: "1. Openings"}
	c := NewLangChainClient(fm, "gpt-4o-mini")

	text, err := c.Generate(context.Background(), "suggest topics")
	require.NoError(t, err)
	assert.Equal(t, "1. Openings", text)
	assert.Equal(t, []string{"suggest topics"}, fm.prompts)
}

func TestLangChainClient_GenerateError(t *testing.T) {
	c := NewLangChainClient(&fakeModel{err: errors.New("rate limited")}, "gpt-4o-mini")

	_, err := c.Generate(context.Background(), "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrUpstream)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestLangChainClient_Verify(t *testing.T) {
	c := NewLangChainClient(&fakeModel{}, "gpt-4o-mini")
	status, err := Verify(context.Background(), c)
	require.NoError(t, err)
	assert.True(t, status.ModelAvailable)
	assert.Equal(t, []string{"gpt-4o-mini"}, status.AvailableModels)
}
