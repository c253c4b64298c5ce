// Package chat answers one widget request: validation, the FAQ short-circuit
// pipeline, prompt composition and the provider orchestrator.
package chat

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/DevAstrumAI/Funia/internal/core/faq"
	"github.com/DevAstrumAI/Funia/internal/core/knowledge"
	"github.com/DevAstrumAI/Funia/internal/core/llm"
	"github.com/DevAstrumAI/Funia/internal/core/prompt"
	"github.com/DevAstrumAI/Funia/internal/shared/metrics"
	"github.com/DevAstrumAI/Funia/internal/shared/utils"
)

// Message is one turn of the widget conversation.
type Message struct {
	Role    string `json:"role" example:"user"`
	Content string `json:"content" example:"Wo kann ich parkieren?"`
}

// Reply is a successful answer. Source is "faq:<rule>" for canned answers
// and the provider name otherwise.
type Reply struct {
	Content  string
	Source   string
	Provider string
	Model    string
}

// Answerer produces a model answer for a composed conversation.
type Answerer interface {
	Run(ctx context.Context, messages []llm.Message, lang knowledge.Lang) (llm.Answer, error)
}

// snapshot is everything derived from one knowledge base. It is replaced
// as a whole on reload.
type snapshot struct {
	kb       *knowledge.Base
	pipeline *faq.Pipeline
	composer *prompt.Composer
}

func newSnapshot(kb *knowledge.Base) *snapshot {
	return &snapshot{
		kb:       kb,
		pipeline: faq.NewPipeline(kb),
		composer: prompt.NewComposer(kb),
	}
}

type Service struct {
	current  atomic.Pointer[snapshot]
	answerer Answerer
}

func NewService(kb *knowledge.Base, answerer Answerer) *Service {
	s := &Service{answerer: answerer}
	s.current.Store(newSnapshot(kb))
	return s
}

// Knowledge returns the active knowledge base.
func (s *Service) Knowledge() *knowledge.Base {
	return s.current.Load().kb
}

// Reload loads dir into a fresh snapshot and swaps it in. On error the
// active snapshot stays in place.
func (s *Service) Reload(dir string) error {
	kb, err := knowledge.Load(dir)
	if err != nil {
		metrics.RecordReload("error", time.Time{})
		return fmt.Errorf("reload knowledge: %w", err)
	}
	for _, issue := range faq.Validate(kb.FAQs) {
		log.Warn().Str("issue", issue.String()).Msg("⚠️ FAQ overlap")
	}

	s.current.Store(newSnapshot(kb))
	metrics.RecordReload("ok", kb.LoadedAt)
	log.Info().
		Int("services", len(kb.Services)).
		Int("team", len(kb.Team)).
		Int("faqs", len(kb.FAQs)).
		Msg("🔄 Knowledge base reloaded")
	return nil
}

type requestIDKey struct{}

// WithRequestID attaches the id used to correlate log lines of one request.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}

// LastUserMessage returns the trimmed content of the latest user turn.
func LastUserMessage(messages []Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == llm.RoleUser {
			return strings.TrimSpace(messages[i].Content)
		}
	}
	return ""
}

// Handle answers the latest user message. Earlier turns are not replayed.
// Errors are always *Error.
func (s *Service) Handle(ctx context.Context, messages []Message, lang knowledge.Lang) (Reply, error) {
	start := time.Now()
	logger := log.With().Str("request_id", requestID(ctx)).Str("lang", string(lang)).Logger()

	text := LastUserMessage(messages)
	if text == "" {
		metrics.RecordAnswer("error:"+KindValidation.String(), string(lang))
		return Reply{}, validationError(lang)
	}
	logger.Info().Str("query", utils.Preview(text, 80)).Msg("💬 Chat query")

	snap := s.current.Load()

	if r, ok := snap.pipeline.Answer(text, lang); ok {
		reply := Reply{Content: r.Content, Source: "faq:" + r.Rule}
		s.done(logger, reply.Source, lang, start)
		return reply, nil
	}

	conversation := []llm.Message{
		{Role: llm.RoleSystem, Content: snap.composer.SystemPrompt(lang, text)},
		{Role: llm.RoleUser, Content: prompt.UserTurn(lang, text)},
	}

	answer, err := s.answerer.Run(ctx, conversation, lang)
	if err != nil {
		chatErr := fromRunError(err, lang)
		logger.Error().Err(chatErr.Err).Str("kind", chatErr.Kind.String()).Msg("❌ Chat request failed")
		source := "error:" + chatErr.Kind.String()
		metrics.RecordAnswer(source, string(lang))
		metrics.ObserveChat(source, time.Since(start))
		return Reply{}, chatErr
	}

	reply := Reply{Content: answer.Content, Source: answer.Provider, Provider: answer.Provider, Model: answer.Model}
	s.done(logger.With().Str("model", answer.Model).Logger(), reply.Source, lang, start)
	return reply, nil
}

func (s *Service) done(logger zerolog.Logger, source string, lang knowledge.Lang, start time.Time) {
	metrics.RecordAnswer(source, string(lang))
	metrics.ObserveChat(source, time.Since(start))
	logger.Info().Str("source", source).Dur("took", time.Since(start)).Msg("✅ Chat response")
}
