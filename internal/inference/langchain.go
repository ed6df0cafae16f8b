package inference

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/isdelr/quizmaster-be/internal/common"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// LangChainClient generates text through any langchaingo model, typically an
// OpenAI-compatible endpoint.
type LangChainClient struct {
	llm   llms.Model
	model string
}

// NewLangChainClient wraps an existing langchaingo model.
func NewLangChainClient(llm llms.Model, model string) *LangChainClient {
	return &LangChainClient{llm: llm, model: model}
}

// NewOpenAIClient builds a LangChainClient backed by the OpenAI API or a
// compatible server at baseURL. Each request is bounded by timeout.
func NewOpenAIClient(apiKey, baseURL, model string, timeout time.Duration) (*LangChainClient, error) {
	opts := []openai.Option{
		openai.WithModel(model),
		openai.WithToken(apiKey),
		openai.WithHTTPClient(&http.Client{Timeout: timeout}),
	}
	if baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}
	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}
	return NewLangChainClient(llm, model), nil
}

// Model returns the configured model name.
func (c *LangChainClient) Model() string { return c.model }

// Generate sends prompt as a single human message.
func (c *LangChainClient) Generate(ctx context.Context, prompt string) (string, error) {
	completion, err := llms.GenerateFromSinglePrompt(ctx, c.llm, prompt, llms.WithTemperature(0.7))
	if err != nil {
		return "", fmt.Errorf("%w: failed to generate LLM response: %v", common.ErrUpstream, err)
	}
	return completion, nil
}

// ListModels reports only the configured model; the generic model interface
// has no listing call.
func (c *LangChainClient) ListModels(ctx context.Context) ([]string, error) {
	return []string{c.model}, nil
}
