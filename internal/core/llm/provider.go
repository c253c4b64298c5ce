package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Message is one chat turn sent to a model.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Outcome tags a provider Result.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeRateLimited
	OutcomeFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeRateLimited:
		return "rate_limited"
	default:
		return "failure"
	}
}

// Result is what a single model call produced. Providers never return rate
// limits as plain errors; the orchestrator switches on Outcome.
type Result struct {
	Outcome    Outcome
	Content    string
	RetryAfter *int
	Err        error
}

func Success(content string) Result {
	return Result{Outcome: OutcomeSuccess, Content: content}
}

func RateLimited(retryAfter *int, err error) Result {
	return Result{Outcome: OutcomeRateLimited, RetryAfter: retryAfter, Err: err}
}

func Failed(err error) Result {
	return Result{Outcome: OutcomeFailure, Err: err}
}

// Provider is a hosted model API that serves several models.
type Provider interface {
	Complete(ctx context.Context, model string, messages []Message) Result
	GetProviderName() string
}

// ProviderType untuk factory
type ProviderType string

const (
	ProviderOpenAI   ProviderType = "openai"
	ProviderGemini   ProviderType = "gemini"
	ProviderGroq     ProviderType = "groq"
	ProviderDeepSeek ProviderType = "deepseek"
	ProviderClaude   ProviderType = "claude"
)

// ErrNoCredentials means the selected primary provider has no API key.
var ErrNoCredentials = errors.New("no primary provider credentials")

const (
	defaultTemperature = 0.2
	defaultMaxTokens   = 1024
	defaultHTTPTimeout = 60 * time.Second
)

// ProviderConfig untuk create provider
type ProviderConfig struct {
	Type   ProviderType
	APIKey string

	// BaseURL overrides the provider endpoint; empty means the public API.
	BaseURL string

	Temperature float32
	MaxTokens   int
	HTTPClient  *http.Client
}

func (c *ProviderConfig) temperature() float32 {
	if c.Temperature == 0 {
		return defaultTemperature
	}
	return c.Temperature
}

func (c *ProviderConfig) maxTokens() int {
	if c.MaxTokens == 0 {
		return defaultMaxTokens
	}
	return c.MaxTokens
}

func (c *ProviderConfig) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: defaultHTTPTimeout}
}

// NewProvider factory untuk create LLM provider
func NewProvider(cfg *ProviderConfig) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s: %w", cfg.Type, ErrNoCredentials)
	}

	switch cfg.Type {
	case ProviderGroq:
		return NewGroqProvider(cfg), nil
	case ProviderOpenAI:
		return NewOpenAIProvider(cfg), nil
	case ProviderDeepSeek:
		return NewDeepSeekProvider(cfg), nil
	case ProviderClaude:
		return NewClaudeProvider(cfg), nil
	case ProviderGemini:
		return NewGeminiProvider(cfg), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider type: %s", cfg.Type)
	}
}

// DefaultModels is the ordered fallback list used when none is configured.
// Groq models are ordered by rate-limit tier.
func DefaultModels(t ProviderType) []string {
	switch t {
	case ProviderGroq:
		return []string{
			"moonshotai/kimi-k2-instruct",
			"meta-llama/llama-4-scout-17b-16e-instruct",
			"llama-3.1-8b-instant",
		}
	case ProviderOpenAI:
		return []string{"gpt-4o-mini"}
	case ProviderDeepSeek:
		return []string{"deepseek-chat"}
	case ProviderClaude:
		return []string{"claude-3-5-sonnet-20241022"}
	case ProviderGemini:
		return []string{"gemini-2.5-flash"}
	default:
		return nil
	}
}

// splitMessages folds system turns into one system prompt and keeps the
// rest in order, for APIs that take the system prompt separately.
func splitMessages(messages []Message) (string, []Message) {
	var system string
	var rest []Message
	for _, m := range messages {
		if m.Role == RoleSystem {
			if system != "" {
				system += "\n\n"
			}
			system += m.Content
			continue
		}
		rest = append(rest, m)
	}
	return system, rest
}
