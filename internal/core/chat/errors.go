package chat

import (
	"errors"
	"fmt"

	"github.com/DevAstrumAI/Funia/internal/core/knowledge"
	"github.com/DevAstrumAI/Funia/internal/core/llm"
)

// ErrorKind is the user-facing failure class of a chat request.
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindRateLimited
	KindEmptyResponse
	KindProviderUnavailable
	KindUnexpected
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindRateLimited:
		return "rate_limited"
	case KindEmptyResponse:
		return "empty_response"
	case KindProviderUnavailable:
		return "provider_unavailable"
	default:
		return "unexpected"
	}
}

// Error carries a localized Message for the widget. Err holds the internal
// cause and is only logged.
type Error struct {
	Kind       ErrorKind
	Message    string
	RetryAfter *int
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

var noUserMessage = map[knowledge.Lang]string{
	knowledge.DE: "Keine Nutzernachricht.",
	knowledge.EN: "No user message.",
	knowledge.FR: "Aucun message utilisateur.",
}

var emptyResponse = map[knowledge.Lang]string{
	knowledge.DE: "Die Anfrage konnte nicht beantwortet werden. Bitte versuchen Sie es in Kürze erneut.",
	knowledge.EN: "The request could not be answered. Please try again in a moment.",
	knowledge.FR: "La requête n’a pas pu être traitée. Veuillez réessayer dans un instant.",
}

var rateLimited = map[knowledge.Lang]string{
	knowledge.DE: "Rate-Limit erreicht. Bitte in einigen Minuten erneut versuchen.",
	knowledge.EN: "Rate limit reached. Please try again in a few minutes.",
	knowledge.FR: "Limite de requêtes atteinte. Réessayez dans quelques minutes.",
}

// %s is the secondary model name.
var providerUnavailable = map[knowledge.Lang]string{
	knowledge.DE: "Kein API-Schlüssel gesetzt und Ollama antwortet nicht. Ollama starten mit: ollama run %s (oder GROQ_API_KEY in .env eintragen).",
	knowledge.EN: "No API key set and Ollama is not answering. Start Ollama with: ollama run %s (or add GROQ_API_KEY to .env).",
	knowledge.FR: "Aucune clé API définie et Ollama ne répond pas. Démarrez Ollama avec : ollama run %s (ou ajoutez GROQ_API_KEY dans .env).",
}

var unexpected = map[knowledge.Lang]string{
	knowledge.DE: "Die Anfrage ist fehlgeschlagen. Bitte versuchen Sie es später erneut.",
	knowledge.EN: "The chat request failed. Please try again later.",
	knowledge.FR: "La requête a échoué. Veuillez réessayer plus tard.",
}

func localized(m map[knowledge.Lang]string, lang knowledge.Lang) string {
	if s, ok := m[lang]; ok {
		return s
	}
	return m[knowledge.DE]
}

func validationError(lang knowledge.Lang) *Error {
	return &Error{Kind: KindValidation, Message: localized(noUserMessage, lang)}
}

// fromRunError maps an orchestrator error onto the user-facing taxonomy.
func fromRunError(err error, lang knowledge.Lang) *Error {
	var f *llm.Failure
	if !errors.As(err, &f) {
		return &Error{Kind: KindUnexpected, Message: localized(unexpected, lang), Err: err}
	}

	switch f.Kind {
	case llm.FailureRateLimited:
		return &Error{Kind: KindRateLimited, Message: localized(rateLimited, lang), RetryAfter: f.RetryAfter, Err: f}
	case llm.FailureEmpty:
		return &Error{Kind: KindEmptyResponse, Message: localized(emptyResponse, lang), Err: f}
	case llm.FailureUnavailable:
		model := f.Secondary
		if model == "" {
			model = "llama3.2"
		}
		return &Error{Kind: KindProviderUnavailable, Message: fmt.Sprintf(localized(providerUnavailable, lang), model), Err: f}
	default:
		return &Error{Kind: KindUnexpected, Message: localized(unexpected, lang), Err: f}
	}
}
