package faq

import (
	"fmt"
	"strings"

	"github.com/DevAstrumAI/Funia/internal/core/knowledge"
	"github.com/DevAstrumAI/Funia/internal/core/textnorm"
)

// Rule names, also used as the "source" label in logs and metrics.
const (
	RuleGreeting     = "greeting"
	RuleWheelchair   = "wheelchair"
	RuleWhyDifferent = "what-makes-different"
	RuleAppointment  = "appointment-change"
	RuleFAQ          = "faq"
	RuleShop         = "shop"
)

// Section ids in faqs.json with dedicated detectors.
const (
	SectionWheelchair   = "wheelchair_access"
	SectionWhyDifferent = "what_makes_you_different"
	SectionAppointment  = "appointment_change"
)

var greetingResponses = map[knowledge.Lang]string{
	knowledge.DE: "Hallo! 👋 Ich bin FUNIA, deine Assistentin bei functiomed. Frag mich zu Leistungen, Team, Terminen oder Abos. Womit kann ich dir helfen?",
	knowledge.EN: "Hello! 👋 I’m FUNIA, your assistant at functiomed. Ask me about services, team, appointments or training abos. How can I help?",
	knowledge.FR: "Bonjour ! 👋 Je suis FUNIA, votre assistante chez functiomed. Posez-moi des questions sur nos prestations, l’équipe, les rendez-vous ou les abonnements. Comment puis-je vous aider ?",
}

var shopIntro = map[knowledge.Lang]string{
	knowledge.DE: "**Unsere Bücher:**",
	knowledge.EN: "**Our books:**",
	knowledge.FR: "**Nos livres :**",
}

// Rule is one short-circuit: a pure predicate over the raw user text and an
// answer lookup. Answer may still decline (e.g. the section is not loaded),
// in which case the next rule runs.
type Rule struct {
	Name   string
	Detect func(text string) bool
	Answer func(text string, lang knowledge.Lang) (string, bool)
	Post   func(string) string
}

type Reply struct {
	Rule    string
	Content string
}

// Pipeline evaluates its rules in order; the first answering rule wins.
type Pipeline struct {
	rules   []Rule
	matcher *Matcher
}

func NewPipeline(kb *knowledge.Base) *Pipeline {
	p := &Pipeline{matcher: NewMatcher(kb.FAQs)}

	// Priority order. Dedicated detectors run before the generic table so
	// that, for example, "reschedule" never lands on an opening-hours entry.
	p.rules = []Rule{
		{Name: RuleGreeting, Detect: IsGreeting, Answer: greetingAnswer, Post: textnorm.NormalizeEszett},
		{Name: RuleWheelchair, Detect: IsWheelchairQuestion, Answer: sectionAnswer(kb, SectionWheelchair), Post: textnorm.NormalizeEszett},
		{Name: RuleWhyDifferent, Detect: IsWhyDifferentQuestion, Answer: sectionAnswer(kb, SectionWhyDifferent), Post: textnorm.Canned},
		{Name: RuleAppointment, Detect: IsAppointmentChangeQuestion, Answer: sectionAnswer(kb, SectionAppointment), Post: textnorm.Canned},
		{Name: RuleFAQ, Detect: always, Answer: p.faqAnswer, Post: textnorm.Canned},
		{Name: RuleShop, Detect: IsShopQuestion, Answer: shopAnswer(kb.Shop), Post: textnorm.Canned},
	}
	return p
}

// Rules returns the rule names in evaluation order.
func (p *Pipeline) Rules() []string {
	names := make([]string, len(p.rules))
	for i, r := range p.rules {
		names[i] = r.Name
	}
	return names
}

// Answer returns a canned reply for text, or false when the model has to
// answer.
func (p *Pipeline) Answer(text string, lang knowledge.Lang) (Reply, bool) {
	for _, r := range p.rules {
		if !r.Detect(text) {
			continue
		}
		if a, ok := r.Answer(text, lang); ok {
			return Reply{Rule: r.Name, Content: r.Post(a)}, true
		}
	}
	return Reply{}, false
}

func (p *Pipeline) faqAnswer(text string, lang knowledge.Lang) (string, bool) {
	m, ok := p.matcher.Match(text, lang)
	if !ok {
		return "", false
	}
	return m.Answer, true
}

func always(string) bool { return true }

func greetingAnswer(_ string, lang knowledge.Lang) (string, bool) {
	g, ok := greetingResponses[lang]
	return g, ok
}

func sectionAnswer(kb *knowledge.Base, id string) func(string, knowledge.Lang) (string, bool) {
	section, found := kb.Section(id)
	return func(_ string, lang knowledge.Lang) (string, bool) {
		if !found {
			return "", false
		}
		return section.AnswerFor(lang)
	}
}

func shopAnswer(shop *knowledge.Shop) func(string, knowledge.Lang) (string, bool) {
	return func(_ string, lang knowledge.Lang) (string, bool) {
		if shop == nil || len(shop.Products) == 0 {
			return "", false
		}
		lines := make([]string, 0, len(shop.Products))
		for _, p := range shop.Products {
			line := fmt.Sprintf("• **%s** (%s)", p.Title, p.Author)
			if p.PriceNote != "" {
				line += " – " + p.PriceNote
			}
			lines = append(lines, line)
		}
		return fmt.Sprintf("%s\n\n%s\n\n[Shop](%s)", shopIntro[lang], strings.Join(lines, "\n"), shop.Source), true
	}
}
