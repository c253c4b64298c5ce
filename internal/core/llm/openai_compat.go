package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// chatCompletionProvider talks to any OpenAI-compatible chat completions API.
type chatCompletionProvider struct {
	name        string
	client      *openai.Client
	temperature float32
	maxTokens   int
}

func newChatCompletionProvider(name, defaultBaseURL string, cfg *ProviderConfig) *chatCompletionProvider {
	config := openai.DefaultConfig(cfg.APIKey)
	if defaultBaseURL != "" {
		config.BaseURL = defaultBaseURL
	}
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	config.HTTPClient = withRetryAfterTransport(cfg.httpClient())

	return &chatCompletionProvider{
		name:        name,
		client:      openai.NewClientWithConfig(config),
		temperature: cfg.temperature(),
		maxTokens:   cfg.maxTokens(),
	}
}

func (p *chatCompletionProvider) GetProviderName() string {
	return p.name
}

func (p *chatCompletionProvider) Complete(ctx context.Context, model string, messages []Message) Result {
	ctx, retryAfter := withRetryAfter(ctx)

	msgs := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Messages:    msgs,
		Temperature: p.temperature,
		MaxTokens:   p.maxTokens,
	})
	if err != nil {
		err = fmt.Errorf("%s error (model: %s): %w", p.name, model, err)
		if statusCode(err) == http.StatusTooManyRequests {
			return RateLimited(retryAfter.seconds, err)
		}
		return Failed(err)
	}

	if len(resp.Choices) == 0 {
		return Success("")
	}
	return Success(resp.Choices[0].Message.Content)
}

// statusCode extracts the HTTP status from go-openai errors, 0 if none.
func statusCode(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}
