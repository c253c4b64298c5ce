package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/DevAstrumAI/Funia/internal/core/knowledge"
	"github.com/DevAstrumAI/Funia/internal/core/prompt"
)

const (
	OllamaTimeout           = 90 * time.Second
	OllamaTranslateTimeout  = 45 * time.Second
	OllamaMaxContextChars   = 22000
	OllamaMaxTranslateChars = 4000

	contextOmittedMarker = "\n\n[Further context omitted for faster response.]"
)

var ollamaSystemLang = map[knowledge.Lang]string{
	knowledge.DE: "Antworte ausschließlich auf Deutsch. Jedes Wort auf Deutsch. Bei Kontext in anderer Sprache: ins Deutsche übersetzen.",
	knowledge.EN: "CRITICAL: Your entire response must be in British English only. Use British spelling and usage at all times (e.g. colour, centre, organisation, behaviour, theatre, practise as verb, -ise endings). Never use American spelling. Never use any German words or phrases; use only English. Always translate German terms to English: Geschäftsleitung→Management, Schwerpunkte→specialties, Öffnungszeiten→opening hours, Sekretariat→reception, Termin→appointment, Physiotherapie→physiotherapy, Osteopathie→osteopathy, Empfang→reception, Mitglied→member, Fachärztin→specialist physician, Innere Medizin→Internal Medicine, Inhaber→owner. Do not copy German headings or labels; use English equivalents. Give complete sentences; do not cut off mid-sentence.",
	knowledge.FR: "Réponds uniquement en français. Chaque mot en français. Si le contexte est dans une autre langue, traduis en français.",
}

var ollamaQuestionLabel = map[knowledge.Lang]string{
	knowledge.DE: "Frage",
	knowledge.EN: "Question",
	knowledge.FR: "Question",
}

var ollamaEndMarker = map[knowledge.Lang]string{
	knowledge.DE: "\n\n[Response language: German only.]",
	knowledge.EN: "\n\n[Response language: British English only. Use British spelling. Do not use any German words; translate all German terms to English. Complete your answer; do not truncate.]",
	knowledge.FR: "\n\n[Response language: French only.]",
}

var translatePrompt = map[knowledge.Lang]string{
	knowledge.EN: "Translate the following text to British English. Use British spelling and usage (e.g. colour, centre, organisation, behaviour, theatre, -ise endings). Do not leave any German words; translate every German term to English (e.g. Geschäftsleitung→Management, Öffnungszeiten→opening hours, Termin→appointment, Sekretariat→reception). Preserve meaning, structure and formatting. Output only the translation, no explanation.\n\n",
	knowledge.FR: "Translate the following text to French. Preserve meaning, structure and formatting. Output only the translation, no explanation.\n\n",
	knowledge.DE: "Translate the following text to German. Preserve meaning, structure and formatting. Output only the translation, no explanation.\n\n",
}

const ollamaInstruction = `Using ONLY the context above, answer the question below. Match the question to the right section (Team = people/roles/departments; Contact = address/phone/hours/booking; Services/shop/documents = offerings). Do not invent or assume anything not stated in the context. Do not start your answer with a heading or category line (e.g. "Services / Shop", "Team", "Documents"). Answer directly in a natural, flowing way. If the answer is in the context, give it directly; if not, say you do not have that information.`

// ErrOllamaDisabled is returned when no Ollama base URL is configured.
var ErrOllamaDisabled = errors.New("ollama is not configured")

// Ollama is the self-hosted secondary provider.
type Ollama struct {
	baseURL          string
	model            string
	nativeLang       knowledge.Lang
	client           *http.Client
	timeout          time.Duration
	translateTimeout time.Duration
}

type OllamaConfig struct {
	BaseURL    string
	Model      string
	NativeLang knowledge.Lang
	HTTPClient *http.Client

	// Zero means OllamaTimeout and OllamaTranslateTimeout.
	Timeout          time.Duration
	TranslateTimeout time.Duration
}

func NewOllama(cfg OllamaConfig) *Ollama {
	o := &Ollama{
		baseURL:          strings.TrimRight(cfg.BaseURL, "/"),
		model:            cfg.Model,
		nativeLang:       cfg.NativeLang,
		client:           cfg.HTTPClient,
		timeout:          cfg.Timeout,
		translateTimeout: cfg.TranslateTimeout,
	}
	if o.model == "" {
		o.model = "llama3.2"
	}
	if o.nativeLang == "" {
		o.nativeLang = knowledge.DE
	}
	if o.client == nil {
		// Deadlines come from the request context.
		o.client = &http.Client{}
	}
	if o.timeout == 0 {
		o.timeout = OllamaTimeout
	}
	if o.translateTimeout == 0 {
		o.translateTimeout = OllamaTranslateTimeout
	}
	return o
}

func (o *Ollama) Enabled() bool { return o != nil && o.baseURL != "" }

func (o *Ollama) Name() string { return "Ollama" }

func (o *Ollama) Model() string { return o.model }

func (o *Ollama) BaseURL() string { return o.baseURL }

type ollamaOptions struct {
	NumPredict  int     `json:"num_predict"`
	Temperature float32 `json:"temperature"`
	NumCtx      int     `json:"num_ctx"`
}

type ollamaChatRequest struct {
	Model    string        `json:"model"`
	Messages []Message     `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  ollamaOptions `json:"options"`
}

type ollamaChatResponse struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
}

// Generate answers with the local model and translates the answer when lang
// is not the model's native language. The result is trimmed but not
// post-processed.
func (o *Ollama) Generate(ctx context.Context, messages []Message, lang knowledge.Lang) (string, error) {
	if !o.Enabled() {
		return "", ErrOllamaDisabled
	}

	content, err := o.chat(ctx, BuildOllamaMessages(messages, lang), 0.2, o.timeout)
	if err != nil {
		return "", err
	}
	content = strings.TrimSpace(content)
	if content == "" || lang == o.nativeLang {
		return content, nil
	}
	return o.Translate(ctx, content, lang), nil
}

// Translate is best effort: any failure returns text unchanged.
func (o *Ollama) Translate(ctx context.Context, text string, lang knowledge.Lang) string {
	if text == "" || !o.Enabled() || lang == o.nativeLang {
		return text
	}
	instruction, ok := translatePrompt[lang]
	if !ok {
		return text
	}

	input := prompt.Truncate(text, OllamaMaxTranslateChars)

	translated, err := o.chat(ctx, []Message{{Role: RoleUser, Content: instruction + input}}, 0.1, o.translateTimeout)
	if err != nil {
		log.Warn().Err(err).Str("lang", string(lang)).Msg("⚠️ Ollama translation failed, returning original text")
		return text
	}
	if translated = strings.TrimSpace(translated); translated == "" {
		return text
	}
	return translated
}

func (o *Ollama) chat(ctx context.Context, messages []Message, temperature float32, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	reqBody := ollamaChatRequest{
		Model:    o.model,
		Messages: messages,
		Stream:   false,
		Options:  ollamaOptions{NumPredict: 1024, Temperature: temperature, NumCtx: 8192},
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/chat", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("ollama request timed out (%s). Is Ollama running?", timeout)
		}
		return "", fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama %d: %s", resp.StatusCode, string(body))
	}

	var out ollamaChatResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	return out.Message.Content, nil
}

// Ping checks that Ollama answers and lists the configured model.
func (o *Ollama) Ping(ctx context.Context) error {
	if !o.Enabled() {
		return ErrOllamaDisabled
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+"/api/tags", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := o.client.Do(req)
	if err != nil {
		return fmt.Errorf("ollama not reachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama /api/tags returned %d", resp.StatusCode)
	}

	var tags struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return fmt.Errorf("failed to parse /api/tags: %w", err)
	}
	for _, m := range tags.Models {
		if m.Name == o.model || strings.TrimSuffix(m.Name, ":latest") == o.model {
			return nil
		}
	}
	return fmt.Errorf("model %s not pulled (run: ollama pull %s)", o.model, o.model)
}

// BuildOllamaMessages reshapes a system+user conversation for a small local
// model: a short language system message, then one user message carrying
// the context, the instruction and the question.
func BuildOllamaMessages(messages []Message, lang knowledge.Lang) []Message {
	var systemParts, userParts []string
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			systemParts = append(systemParts, m.Content)
		case RoleUser:
			userParts = append(userParts, m.Content)
		}
	}
	if len(systemParts) == 0 || len(userParts) == 0 {
		return messages
	}
	if _, ok := ollamaSystemLang[lang]; !ok {
		lang = knowledge.DE
	}

	question := strings.TrimSpace(strings.Join(userParts, "\n"))
	ctxText := strings.Join(systemParts, "\n\n")
	if utf8.RuneCountInString(ctxText) > OllamaMaxContextChars {
		ctxText = string([]rune(ctxText)[:OllamaMaxContextChars]) + contextOmittedMarker
	}

	var sb strings.Builder
	sb.WriteString(prompt.LanguageInstruction(lang))
	sb.WriteString("\n\n---\nContext (use this in full; do not hallucinate):\n")
	sb.WriteString(ctxText)
	sb.WriteString("\n\n---\n")
	sb.WriteString(ollamaInstruction)
	sb.WriteString("\n\n")
	sb.WriteString(ollamaQuestionLabel[lang])
	sb.WriteString(": ")
	sb.WriteString(question)
	sb.WriteString(ollamaEndMarker[lang])

	return []Message{
		{Role: RoleSystem, Content: ollamaSystemLang[lang]},
		{Role: RoleUser, Content: sb.String()},
	}
}
