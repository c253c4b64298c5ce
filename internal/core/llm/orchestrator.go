package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/DevAstrumAI/Funia/internal/core/knowledge"
	"github.com/DevAstrumAI/Funia/internal/core/textnorm"
	"github.com/DevAstrumAI/Funia/internal/shared/metrics"
)

// Secondary is the fallback model. Generate returns the final, possibly
// translated, answer text.
type Secondary interface {
	Generate(ctx context.Context, messages []Message, lang knowledge.Lang) (string, error)
	Name() string
	Model() string
}

// FailureKind classifies an orchestrator run that produced no answer.
type FailureKind int

const (
	FailureRateLimited FailureKind = iota + 1
	FailureEmpty
	FailureUnavailable
	FailureUnexpected
)

func (k FailureKind) String() string {
	switch k {
	case FailureRateLimited:
		return "rate_limited"
	case FailureEmpty:
		return "empty_response"
	case FailureUnavailable:
		return "provider_unavailable"
	default:
		return "unexpected"
	}
}

// Failure is returned by Run when neither the primary models nor the
// secondary produced an answer.
type Failure struct {
	Kind       FailureKind
	RetryAfter *int
	// Secondary is the secondary model name, used for remediation hints.
	Secondary string
	Err       error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %v", f.Kind, f.Err)
	}
	return f.Kind.String()
}

func (f *Failure) Unwrap() error { return f.Err }

// Answer is a post-processed model reply.
type Answer struct {
	Content  string
	Provider string
	Model    string
}

// DefaultPrimaryTimeout bounds each primary model call.
const DefaultPrimaryTimeout = 60 * time.Second

// Orchestrator runs the primary model list and the secondary fallback.
// Primary may be nil (no credentials) and secondary may be nil (disabled).
type Orchestrator struct {
	primary        Provider
	models         []string
	secondary      Secondary
	secondaryName  string
	primaryTimeout time.Duration
}

type OrchestratorConfig struct {
	Primary   Provider
	Models    []string
	Secondary Secondary
	// SecondaryModel names the secondary in remediation messages, even
	// when the secondary itself is disabled.
	SecondaryModel string
	PrimaryTimeout time.Duration
}

func NewOrchestrator(cfg OrchestratorConfig) *Orchestrator {
	o := &Orchestrator{
		primary:        cfg.Primary,
		models:         cfg.Models,
		secondary:      cfg.Secondary,
		secondaryName:  cfg.SecondaryModel,
		primaryTimeout: cfg.PrimaryTimeout,
	}
	if o.primaryTimeout == 0 {
		o.primaryTimeout = DefaultPrimaryTimeout
	}
	if o.secondaryName == "" && cfg.Secondary != nil {
		o.secondaryName = cfg.Secondary.Model()
	}
	return o
}

func (o *Orchestrator) HasPrimary() bool { return o.primary != nil && len(o.models) > 0 }

// Run answers messages. Each primary model is tried once in order; a rate
// limit or error moves on to the next model at once. The secondary runs
// after the last primary failure, after an empty primary answer, or
// directly when there is no primary.
func (o *Orchestrator) Run(ctx context.Context, messages []Message, lang knowledge.Lang) (Answer, error) {
	if !o.HasPrimary() {
		a, err := o.trySecondary(ctx, messages, lang)
		if err != nil {
			return Answer{}, &Failure{Kind: FailureUnavailable, Secondary: o.secondaryName, Err: err}
		}
		return a, nil
	}

	providerName := o.primary.GetProviderName()
	last := len(o.models) - 1
	for i, model := range o.models {
		res := o.callPrimary(ctx, model, messages)
		metrics.RecordProviderAttempt(providerName, model, res.Outcome.String())

		switch res.Outcome {
		case OutcomeSuccess:
			if content := strings.TrimSpace(res.Content); content != "" {
				return Answer{Content: PostProcess(content), Provider: providerName, Model: model}, nil
			}
			log.Warn().Str("provider", providerName).Str("model", model).Msg("⚠️ Empty completion, trying secondary")
			if a, err := o.trySecondary(ctx, messages, lang); err == nil {
				return a, nil
			}
			return Answer{}, &Failure{Kind: FailureEmpty}

		case OutcomeRateLimited:
			if i < last {
				log.Warn().Str("model", model).Str("next", o.models[i+1]).Msg("⚠️ Rate limited, trying next model")
				continue
			}
			log.Warn().Str("model", model).Msg("⚠️ Rate limited on last model")
			if a, err := o.trySecondary(ctx, messages, lang); err == nil {
				return a, nil
			}
			return Answer{}, &Failure{Kind: FailureRateLimited, RetryAfter: res.RetryAfter, Err: res.Err}

		default:
			if i < last {
				log.Warn().Err(res.Err).Str("model", model).Msg("⚠️ Model failed, trying next model")
				continue
			}
			log.Error().Err(res.Err).Str("model", model).Msg("❌ Last primary model failed")
			if a, err := o.trySecondary(ctx, messages, lang); err == nil {
				return a, nil
			}
			return Answer{}, &Failure{Kind: FailureUnexpected, Err: res.Err}
		}
	}
	return Answer{}, &Failure{Kind: FailureUnexpected, Err: errors.New("no primary model attempted")}
}

func (o *Orchestrator) callPrimary(ctx context.Context, model string, messages []Message) Result {
	ctx, cancel := context.WithTimeout(ctx, o.primaryTimeout)
	defer cancel()
	return o.primary.Complete(ctx, model, messages)
}

var errEmptySecondary = errors.New("secondary returned empty content")

func (o *Orchestrator) trySecondary(ctx context.Context, messages []Message, lang knowledge.Lang) (Answer, error) {
	if o.secondary == nil {
		return Answer{}, ErrOllamaDisabled
	}
	name, model := o.secondary.Name(), o.secondary.Model()

	content, err := o.secondary.Generate(ctx, messages, lang)
	if err == nil && strings.TrimSpace(content) == "" {
		err = errEmptySecondary
	}
	if err != nil {
		metrics.RecordProviderAttempt(name, model, OutcomeFailure.String())
		log.Warn().Err(err).Str("provider", name).Msg("⚠️ Secondary fallback failed")
		return Answer{}, err
	}
	metrics.RecordProviderAttempt(name, model, OutcomeSuccess.String())
	return Answer{Content: PostProcess(content), Provider: name, Model: model}, nil
}

// PostProcess prepares any model answer for the widget.
func PostProcess(content string) string {
	return textnorm.Model(strings.TrimSpace(content))
}
