// Package prompt builds the language specific system prompt from the
// knowledge base.
package prompt

import (
	"fmt"
	"strings"

	"github.com/DevAstrumAI/Funia/internal/core/knowledge"
)

// Composer holds the per-language base prompts. It is built once per
// knowledge base and is read-only afterwards.
type Composer struct {
	base map[knowledge.Lang]string
}

func NewComposer(kb *knowledge.Base) *Composer {
	c := &Composer{base: make(map[knowledge.Lang]string, len(knowledge.Langs))}
	for _, lang := range knowledge.Langs {
		c.base[lang] = buildBase(kb, lang)
	}
	return c
}

func buildBase(kb *knowledge.Base, lang knowledge.Lang) string {
	tpl := templates[lang]

	var sb strings.Builder
	sb.WriteString(tpl.persona)
	for _, r := range tpl.rules {
		sb.WriteString(" ")
		sb.WriteString(r)
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf(tpl.scope, kb.PracticeName()))
	sb.WriteString("\n")

	for _, b := range Blocks {
		sb.WriteString(b.Render(kb))
	}
	return sb.String()
}

// BasePrompt returns the memoized prompt for lang without the language
// instruction and request specific blocks.
func (c *Composer) BasePrompt(lang knowledge.Lang) string {
	if p, ok := c.base[lang]; ok {
		return p
	}
	return c.base[knowledge.DE]
}

// SystemPrompt returns the full system message for a request: language
// instruction, base prompt and any conditional block triggered by userText.
func (c *Composer) SystemPrompt(lang knowledge.Lang, userText string) string {
	var sb strings.Builder
	sb.WriteString(LanguageInstruction(lang))
	sb.WriteString("\n")
	sb.WriteString(c.BasePrompt(lang))
	for _, b := range Conditional {
		if b.Applies(userText) {
			sb.WriteString(b.Text)
		}
	}
	return sb.String()
}

func LanguageInstruction(lang knowledge.Lang) string {
	if s, ok := languageInstruction[lang]; ok {
		return s
	}
	return languageInstruction[knowledge.DE]
}

// UserTurn wraps the latest user message with the language hint label.
func UserTurn(lang knowledge.Lang, text string) string {
	hint, ok := lastUserHint[lang]
	if !ok {
		hint = lastUserHint[knowledge.DE]
	}
	return hint + "\n\n" + text
}
