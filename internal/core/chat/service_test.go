package chat

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DevAstrumAI/Funia/internal/core/knowledge"
	"github.com/DevAstrumAI/Funia/internal/core/llm"
)

const dataDir = "../../../data"

type stubAnswerer struct {
	answer llm.Answer
	err    error
	calls  [][]llm.Message
}

func (s *stubAnswerer) Run(_ context.Context, messages []llm.Message, _ knowledge.Lang) (llm.Answer, error) {
	s.calls = append(s.calls, messages)
	return s.answer, s.err
}

func newTestService(t *testing.T, a Answerer) *Service {
	t.Helper()
	kb, err := knowledge.Load(dataDir)
	require.NoError(t, err)
	return NewService(kb, a)
}

func user(text string) []Message {
	return []Message{{Role: "user", Content: text}}
}

func TestHandle_BlankInput(t *testing.T) {
	stub := &stubAnswerer{}
	s := newTestService(t, stub)

	for _, msgs := range [][]Message{nil, user("   "), {{Role: "assistant", Content: "Hallo"}}} {
		_, err := s.Handle(context.Background(), msgs, knowledge.EN)

		var chatErr *Error
		require.True(t, errors.As(err, &chatErr))
		assert.Equal(t, KindValidation, chatErr.Kind)
		assert.Equal(t, "No user message.", chatErr.Message)
	}
	assert.Empty(t, stub.calls)
}

func TestHandle_CannedAnswersSkipTheModel(t *testing.T) {
	stub := &stubAnswerer{}
	s := newTestService(t, stub)

	r, err := s.Handle(context.Background(), user("Hallo"), knowledge.DE)
	require.NoError(t, err)
	assert.Equal(t, "faq:greeting", r.Source)
	assert.Contains(t, r.Content, "FUNIA")

	r, err = s.Handle(context.Background(), user("Wo kann ich parkieren?"), knowledge.DE)
	require.NoError(t, err)
	assert.Equal(t, "faq:faq", r.Source)
	assert.NotEmpty(t, r.Content)

	assert.Empty(t, stub.calls)
}

func TestHandle_CannedAnswersAreStable(t *testing.T) {
	tests := []struct {
		rule string
		lang knowledge.Lang
		text string
	}{
		{"greeting", knowledge.DE, "Hallo"},
		{"greeting", knowledge.EN, "Hello"},
		{"greeting", knowledge.FR, "Bonjour"},
		{"wheelchair", knowledge.DE, "Ist die Praxis rollstuhlgängig?"},
		{"wheelchair", knowledge.EN, "Is it wheelchair accessible?"},
		{"wheelchair", knowledge.FR, "Accessible en fauteuil roulant ?"},
		{"what-makes-different", knowledge.DE, "Was unterscheidet functiomed von anderen?"},
		{"what-makes-different", knowledge.EN, "What makes functiomed different?"},
		{"what-makes-different", knowledge.FR, "Pourquoi choisir functiomed ?"},
		{"appointment-change", knowledge.DE, "Kann ich meinen Termin verschieben?"},
		{"appointment-change", knowledge.EN, "Can I reschedule my appointment?"},
		{"appointment-change", knowledge.FR, "Puis-je annuler mon rendez-vous ?"},
		{"faq", knowledge.DE, "Wo kann ich parkieren?"},
		{"faq", knowledge.EN, "Where can I park?"},
		{"faq", knowledge.FR, "Où puis-je me garer ?"},
		{"shop", knowledge.DE, "Welche Bücher habt ihr?"},
		{"shop", knowledge.EN, "Which books do you have?"},
		{"shop", knowledge.FR, "Quels livres avez-vous ?"},
	}

	stub := &stubAnswerer{}
	s := newTestService(t, stub)
	ctx := context.Background()

	for _, tt := range tests {
		t.Run(tt.rule+"/"+string(tt.lang), func(t *testing.T) {
			first, err := s.Handle(ctx, user(tt.text), tt.lang)
			require.NoError(t, err)
			assert.Equal(t, "faq:"+tt.rule, first.Source)
			require.NotEmpty(t, first.Content)

			second, err := s.Handle(ctx, user(tt.text), tt.lang)
			require.NoError(t, err)
			assert.Equal(t, first, second)

			shouted, err := s.Handle(ctx, user("  "+strings.ToUpper(tt.text)+"  "), tt.lang)
			require.NoError(t, err)
			assert.Equal(t, first, shouted)
		})
	}
	assert.Empty(t, stub.calls)
}

func TestHandle_OnlyLatestUserTurnReachesTheModel(t *testing.T) {
	stub := &stubAnswerer{answer: llm.Answer{Content: "Antwort", Provider: "Groq", Model: "m0"}}
	s := newTestService(t, stub)

	msgs := []Message{
		{Role: "user", Content: "Hallo"},
		{Role: "assistant", Content: "Hallo! Wie kann ich helfen?"},
		{Role: "user", Content: "  Wer arbeitet in der Physiotherapie?  "},
	}
	r, err := s.Handle(context.Background(), msgs, knowledge.EN)
	require.NoError(t, err)
	assert.Equal(t, Reply{Content: "Antwort", Source: "Groq", Provider: "Groq", Model: "m0"}, r)

	require.Len(t, stub.calls, 1)
	sent := stub.calls[0]
	require.Len(t, sent, 2)
	assert.Equal(t, llm.RoleSystem, sent[0].Role)
	assert.True(t, strings.HasPrefix(sent[0].Content, "Answer only in British English"))
	assert.Equal(t, llm.RoleUser, sent[1].Role)
	assert.True(t, strings.HasSuffix(sent[1].Content, "\n\nWer arbeitet in der Physiotherapie?"))
	assert.NotContains(t, sent[1].Content, "Hallo")
}

func TestHandle_FailureMapping(t *testing.T) {
	thirty := 30
	tests := []struct {
		name    string
		err     error
		lang    knowledge.Lang
		kind    ErrorKind
		message string
	}{
		{"rate limited", &llm.Failure{Kind: llm.FailureRateLimited, RetryAfter: &thirty}, knowledge.FR, KindRateLimited, "Limite de requêtes atteinte. Réessayez dans quelques minutes."},
		{"empty", &llm.Failure{Kind: llm.FailureEmpty}, knowledge.EN, KindEmptyResponse, "The request could not be answered. Please try again in a moment."},
		{"unavailable", &llm.Failure{Kind: llm.FailureUnavailable, Secondary: "mistral"}, knowledge.EN, KindProviderUnavailable, "No API key set and Ollama is not answering. Start Ollama with: ollama run mistral (or add GROQ_API_KEY to .env)."},
		{"unexpected", &llm.Failure{Kind: llm.FailureUnexpected, Err: errors.New("dial tcp: refused")}, knowledge.DE, KindUnexpected, "Die Anfrage ist fehlgeschlagen. Bitte versuchen Sie es später erneut."},
		{"unclassified", errors.New("boom"), knowledge.DE, KindUnexpected, "Die Anfrage ist fehlgeschlagen. Bitte versuchen Sie es später erneut."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestService(t, &stubAnswerer{err: tt.err})
			_, err := s.Handle(context.Background(), user("Wer arbeitet in der Physiotherapie?"), tt.lang)

			var chatErr *Error
			require.True(t, errors.As(err, &chatErr))
			assert.Equal(t, tt.kind, chatErr.Kind)
			assert.Equal(t, tt.message, chatErr.Message)
			assert.NotContains(t, chatErr.Message, "dial tcp")
		})
	}
}

func TestHandle_RateLimitKeepsRetryAfter(t *testing.T) {
	thirty := 30
	s := newTestService(t, &stubAnswerer{err: &llm.Failure{Kind: llm.FailureRateLimited, RetryAfter: &thirty}})

	_, err := s.Handle(context.Background(), user("Wer arbeitet in der Physiotherapie?"), knowledge.DE)
	var chatErr *Error
	require.True(t, errors.As(err, &chatErr))
	require.NotNil(t, chatErr.RetryAfter)
	assert.Equal(t, 30, *chatErr.RetryAfter)
}

func copyData(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	entries, err := os.ReadDir(dataDir)
	require.NoError(t, err)
	for _, e := range entries {
		raw, err := os.ReadFile(filepath.Join(dataDir, e.Name()))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, e.Name()), raw, 0o644))
	}
	return dir
}

func TestReload_SwapsSnapshot(t *testing.T) {
	dir := copyData(t)
	s := newTestService(t, &stubAnswerer{})
	before := s.Knowledge()

	require.NoError(t, os.WriteFile(filepath.Join(dir, knowledge.ServicesFile),
		[]byte(`{"services":[{"name":"Nur ein Angebot","description":"Test"}]}`), 0o644))
	require.NoError(t, s.Reload(dir))

	after := s.Knowledge()
	assert.NotSame(t, before, after)
	require.Len(t, after.Services, 1)
	assert.Equal(t, "Nur ein Angebot", after.Services[0].Name)
}

func TestReload_FailureKeepsCurrent(t *testing.T) {
	dir := copyData(t)
	s := newTestService(t, &stubAnswerer{})
	before := s.Knowledge()

	require.NoError(t, os.Remove(filepath.Join(dir, knowledge.TeamFile)))
	assert.Error(t, s.Reload(dir))
	assert.Same(t, before, s.Knowledge())
}

func TestLastUserMessage(t *testing.T) {
	assert.Equal(t, "", LastUserMessage(nil))
	assert.Equal(t, "b", LastUserMessage([]Message{
		{Role: "user", Content: "a"},
		{Role: "user", Content: " b "},
		{Role: "assistant", Content: "c"},
	}))
}
