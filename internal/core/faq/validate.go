package faq

import (
	"fmt"
	"sort"
	"strings"

	"github.com/DevAstrumAI/Funia/internal/core/knowledge"
)

type IssueKind string

const (
	IssueDuplicateVariant IssueKind = "duplicate-variant"
	IssueMissingAnswer    IssueKind = "missing-answer"
)

// Issue is a data problem in the FAQ table. Sections are expected to be
// disjoint; the matcher's tie-break keeps results deterministic anyway.
type Issue struct {
	Kind     IssueKind
	Lang     string
	Variant  string
	Sections []string
}

func (i Issue) String() string {
	switch i.Kind {
	case IssueMissingAnswer:
		return fmt.Sprintf("faq section %s has %s questions but no %s answer", i.Sections[0], i.Lang, i.Lang)
	default:
		return fmt.Sprintf("faq variant %q (%s) appears in sections %s", i.Variant, i.Lang, strings.Join(i.Sections, ", "))
	}
}

// Validate reports duplicate normalized variants across sections and
// question languages without an answer.
func Validate(sections []knowledge.FAQSection) []Issue {
	var issues []Issue

	owners := map[string]map[string][]string{} // lang -> key -> section ids
	for _, s := range sections {
		langs := make([]string, 0, len(s.Questions))
		for lang := range s.Questions {
			langs = append(langs, lang)
		}
		sort.Strings(langs)

		for _, lang := range langs {
			if a, ok := s.Answer[lang]; !ok || a == "" {
				issues = append(issues, Issue{Kind: IssueMissingAnswer, Lang: lang, Sections: []string{s.ID}})
			}
			if owners[lang] == nil {
				owners[lang] = map[string][]string{}
			}
			seen := map[string]bool{}
			for _, q := range s.Questions[lang] {
				k := Key(q)
				if k == "" || seen[k] {
					continue
				}
				seen[k] = true
				owners[lang][k] = append(owners[lang][k], s.ID)
			}
		}
	}

	langs := make([]string, 0, len(owners))
	for lang := range owners {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	for _, lang := range langs {
		keys := make([]string, 0, len(owners[lang]))
		for k := range owners[lang] {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if ids := owners[lang][k]; len(ids) > 1 {
				issues = append(issues, Issue{Kind: IssueDuplicateVariant, Lang: lang, Variant: k, Sections: ids})
			}
		}
	}
	return issues
}
