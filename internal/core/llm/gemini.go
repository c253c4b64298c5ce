package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com"

type GeminiProvider struct {
	apiKey      string
	baseURL     string
	temperature float32
	maxTokens   int
	client      *http.Client
}

func NewGeminiProvider(cfg *ProviderConfig) *GeminiProvider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = geminiBaseURL
	}
	return &GeminiProvider{
		apiKey:      cfg.APIKey,
		baseURL:     baseURL,
		temperature: cfg.temperature(),
		maxTokens:   cfg.maxTokens(),
		client:      cfg.httpClient(),
	}
}

func (p *GeminiProvider) GetProviderName() string {
	return "Google Gemini"
}

// Gemini REST API request/response structures
type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature     float32 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (p *GeminiProvider) Complete(ctx context.Context, model string, messages []Message) Result {
	endpoint := fmt.Sprintf("%s/v1/models/%s:generateContent", p.baseURL, model)

	// The v1 API has no system role; the system prompt leads the user text.
	system, turns := splitMessages(messages)
	parts := make([]string, 0, len(turns)+1)
	if system != "" {
		parts = append(parts, system)
	}
	for _, m := range turns {
		parts = append(parts, m.Content)
	}

	reqBody := geminiRequest{
		Contents: []geminiContent{{
			Parts: []geminiPart{{Text: strings.Join(parts, "\n\n")}},
			Role:  "user",
		}},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     p.temperature,
			MaxOutputTokens: p.maxTokens,
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return Failed(fmt.Errorf("failed to marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return Failed(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return Failed(fmt.Errorf("gemini request failed: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Failed(fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return RateLimited(parseRetryAfter(resp.Header.Get("Retry-After"), time.Now()),
			fmt.Errorf("gemini rate limited (model: %s)", model))
	}
	if resp.StatusCode != http.StatusOK {
		return Failed(fmt.Errorf("gemini error (model: %s, status: %d): %s", model, resp.StatusCode, string(body)))
	}

	var geminiResp geminiResponse
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return Failed(fmt.Errorf("failed to parse response: %w", err))
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return Success("")
	}
	return Success(geminiResp.Candidates[0].Content.Parts[0].Text)
}
