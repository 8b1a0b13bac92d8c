package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/containerd/errdefs"
	openai "github.com/sashabaranov/go-openai"
)

// defaultCallTimeout bounds a single completion round-trip. A timeout
// surfaces as an unavailable-class error, never as an empty result.
const defaultCallTimeout = 60 * time.Second

// OpenAIClient talks to any OpenAI-compatible chat-completions endpoint.
// Groq and local llama.cpp/Ollama servers are reached by pointing
// baseURL at them; an empty baseURL targets the public OpenAI API.
type OpenAIClient struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewOpenAI creates a client bound to a single model identifier.
func NewOpenAI(apiKey, baseURL, model string) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIClient{
		client:  openai.NewClientWithConfig(cfg),
		model:   model,
		timeout: defaultCallTimeout,
	}
}

// Model returns the model identifier this client submits to.
func (c *OpenAIClient) Model() string { return c.model }

// Generate submits the transcript and returns free-form text.
func (c *OpenAIClient) Generate(ctx context.Context, messages []Message) (Response, error) {
	return c.generate(ctx, messages, "")
}

// GenerateJSON submits the transcript with the JSON-object response
// format constraint.
func (c *OpenAIClient) GenerateJSON(ctx context.Context, messages []Message) (Response, error) {
	return c.generate(ctx, messages, openai.ChatCompletionResponseFormatTypeJSONObject)
}

func (c *OpenAIClient) generate(ctx context.Context, messages []Message, format openai.ChatCompletionResponseFormatType) (Response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	oaMsgs := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		oaMsgs = append(oaMsgs, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	req := openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: oaMsgs,
	}
	if format != "" {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{Type: format}
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return Response{}, fmt.Errorf("create chat completion: %w: %w", errdefs.ErrUnavailable, err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return Response{}, fmt.Errorf("provider returned empty completion: %w", errdefs.ErrUnavailable)
	}

	return Response{
		Content: resp.Choices[0].Message.Content,
		Model:   c.model,
	}, nil
}
