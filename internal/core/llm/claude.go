package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const claudeBaseURL = "https://api.anthropic.com"

type ClaudeProvider struct {
	apiKey      string
	baseURL     string
	temperature float32
	maxTokens   int
	client      *http.Client
}

func NewClaudeProvider(cfg *ProviderConfig) *ClaudeProvider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = claudeBaseURL
	}
	return &ClaudeProvider{
		apiKey:      cfg.APIKey,
		baseURL:     baseURL,
		temperature: cfg.temperature(),
		maxTokens:   cfg.maxTokens(),
		client:      cfg.httpClient(),
	}
}

func (p *ClaudeProvider) GetProviderName() string {
	return "Anthropic Claude"
}

// Claude API request/response structures
type claudeRequest struct {
	Model       string          `json:"model"`
	MaxTokens   int             `json:"max_tokens"`
	Temperature float32         `json:"temperature"`
	Messages    []claudeMessage `json:"messages"`
	System      string          `json:"system,omitempty"`
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

func (p *ClaudeProvider) Complete(ctx context.Context, model string, messages []Message) Result {
	system, turns := splitMessages(messages)

	reqBody := claudeRequest{
		Model:       model,
		MaxTokens:   p.maxTokens,
		Temperature: p.temperature,
		System:      system,
	}
	for _, m := range turns {
		reqBody.Messages = append(reqBody.Messages, claudeMessage{Role: m.Role, Content: m.Content})
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return Failed(fmt.Errorf("failed to marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/messages", bytes.NewBuffer(jsonData))
	if err != nil {
		return Failed(fmt.Errorf("failed to create request: %w", err))
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", p.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := p.client.Do(req)
	if err != nil {
		return Failed(fmt.Errorf("claude request failed: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Failed(fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return RateLimited(parseRetryAfter(resp.Header.Get("Retry-After"), time.Now()),
			fmt.Errorf("claude rate limited (model: %s)", model))
	}
	if resp.StatusCode != http.StatusOK {
		return Failed(fmt.Errorf("claude error (model: %s, status: %d): %s", model, resp.StatusCode, string(body)))
	}

	var claudeResp claudeResponse
	if err := json.Unmarshal(body, &claudeResp); err != nil {
		return Failed(fmt.Errorf("failed to parse response: %w", err))
	}

	if len(claudeResp.Content) == 0 {
		return Success("")
	}
	return Success(claudeResp.Content[0].Text)
}
