package faq

import (
	"strings"
	"unicode/utf8"

	"github.com/DevAstrumAI/Funia/internal/core/knowledge"
)

// MatchKind ranks how a variant matched the input. Lower is better.
type MatchKind int

const (
	MatchExact MatchKind = iota
	MatchInputContainsVariant
	MatchVariantContainsInput
)

func (k MatchKind) String() string {
	switch k {
	case MatchExact:
		return "exact"
	case MatchInputContainsVariant:
		return "input-contains-variant"
	default:
		return "variant-contains-input"
	}
}

// minContainedInput is the shortest input, in runes, that may match as a
// fragment of a longer variant.
const minContainedInput = 3

type Match struct {
	SectionID string
	Answer    string
	Variant   string
	Kind      MatchKind
}

type compiledSection struct {
	id       string
	variants map[string][]string
	answers  map[string]string
}

// Matcher looks user text up in the generic FAQ table. It is immutable and
// safe for concurrent use.
type Matcher struct {
	sections []compiledSection
}

func NewMatcher(sections []knowledge.FAQSection) *Matcher {
	m := &Matcher{}
	for _, s := range sections {
		cs := compiledSection{
			id:       s.ID,
			variants: make(map[string][]string, len(s.Questions)),
			answers:  s.Answer,
		}
		for lang, qs := range s.Questions {
			for _, q := range qs {
				if k := Key(q); k != "" {
					cs.variants[lang] = append(cs.variants[lang], k)
				}
			}
		}
		m.sections = append(m.sections, cs)
	}
	return m
}

// Match returns the best matching section answer for text in lang.
//
// Ranking: an exact match beats an input that contains a variant at word
// boundaries, which beats a variant that contains the input. Among
// input-contains-variant matches the longest variant wins, among
// variant-contains-input matches the shortest one. Remaining ties go to the
// section that comes first in the table. Inputs shorter than
// minContainedInput only match exactly or by containing a variant.
func (m *Matcher) Match(text string, lang knowledge.Lang) (Match, bool) {
	input := Key(text)
	if input == "" {
		return Match{}, false
	}
	langKey := lang.Key()

	var best Match
	found := false
	for _, s := range m.sections {
		answer, ok := s.answers[langKey]
		if !ok || answer == "" {
			continue
		}
		for _, v := range s.variants[langKey] {
			kind, ok := classify(input, v)
			if !ok {
				continue
			}
			cand := Match{SectionID: s.id, Answer: answer, Variant: v, Kind: kind}
			if !found || better(cand, best) {
				best = cand
				found = true
			}
		}
	}
	return best, found
}

func classify(input, variant string) (MatchKind, bool) {
	switch {
	case input == variant:
		return MatchExact, true
	case containsWord(input, variant):
		return MatchInputContainsVariant, true
	case len(variant) > len(input) && utf8.RuneCountInString(input) >= minContainedInput && strings.Contains(variant, input):
		return MatchVariantContainsInput, true
	}
	return 0, false
}

func better(a, b Match) bool {
	if a.Kind != b.Kind {
		return a.Kind < b.Kind
	}
	switch a.Kind {
	case MatchInputContainsVariant:
		return len(a.Variant) > len(b.Variant)
	case MatchVariantContainsInput:
		return len(a.Variant) < len(b.Variant)
	}
	return false
}
