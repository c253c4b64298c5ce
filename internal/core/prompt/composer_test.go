package prompt

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DevAstrumAI/Funia/internal/core/knowledge"
)

func loadShipped(t *testing.T) *knowledge.Base {
	t.Helper()
	kb, err := knowledge.Load("../../../data")
	require.NoError(t, err)
	return kb
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "kurz", Truncate("kurz", 85))
	assert.Equal(t, "äöü…", Truncate("äöüäöü", 3))
	assert.Equal(t, "abc", Truncate("abc", 3))
}

func TestServicesBlock_TruncatesDescriptions(t *testing.T) {
	long := strings.Repeat("Bewegungsapparat ", 10)
	kb := &knowledge.Base{Services: []knowledge.Service{
		{Name: "Lang", Description: long},
		{Name: "Leer", Description: "   "},
		{Name: "Kurz", Description: "Manuelle Therapie."},
	}}

	block := ServicesBlock(kb)
	want := string([]rune(strings.TrimSpace(long))[:MaxServiceDesc]) + "…"
	assert.Contains(t, block, "**Lang:** "+want+"\n")
	assert.Contains(t, block, "**Leer:** —\n")
	assert.Contains(t, block, "**Kurz:** Manuelle Therapie.\n")

	for _, line := range strings.Split(block, "\n") {
		if strings.HasPrefix(line, "**Lang:** ") {
			desc := strings.TrimPrefix(line, "**Lang:** ")
			assert.Equal(t, MaxServiceDesc+1, utf8.RuneCountInString(desc))
		}
	}
}

func TestServicesBlock_ShippedData(t *testing.T) {
	kb := loadShipped(t)
	block := ServicesBlock(kb)

	for _, s := range kb.Services {
		desc := strings.TrimSpace(s.Description)
		switch {
		case desc == "":
			assert.Contains(t, block, "**"+s.Name+":** —")
		case utf8.RuneCountInString(desc) > MaxServiceDesc:
			assert.Contains(t, block, "**"+s.Name+":** "+string([]rune(desc)[:MaxServiceDesc])+"…\n")
			assert.NotContains(t, block, desc)
		default:
			assert.Contains(t, block, "**"+s.Name+":** "+desc+"\n")
		}
	}
}

func TestTeamMemberLine(t *testing.T) {
	m := knowledge.TeamMember{
		Name:        "Prof. Martin Spring",
		Title:       "Gründer und Inhaber",
		Credentials: "Osteopath DO",
		Specialties: []string{"a", "b", "c", "d", "e", "f"},
		Languages:   []string{"Deutsch"},
	}
	assert.Equal(t, "Prof. Martin Spring – Gründer und Inhaber. Osteopath DO. Schwerpunkte: a, b, c, d, e. Sprachen: Deutsch", TeamMemberLine(m))

	assert.Equal(t, "Anna – —", TeamMemberLine(knowledge.TeamMember{Name: "Anna"}))

	long := TeamMemberLine(knowledge.TeamMember{Name: "Anna", Title: "MPA", Bio: strings.Repeat("ä", 400)})
	assert.Equal(t, MaxTeamMemberLine, utf8.RuneCountInString(long))
	assert.True(t, strings.HasSuffix(long, "…"))
}

func TestTeamGroups_OrderAndJoin(t *testing.T) {
	kb := loadShipped(t)
	groups := TeamGroups(kb)

	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.Name
	}
	assert.Equal(t, []string{
		DeptDoctors, DeptManagementMedical, DeptManagement, DeptOsteopathy, "Physiotherapie", "Empfang",
	}, names)

	byName := map[string][]string{}
	for _, g := range groups {
		byName[g.Name] = g.Lines
	}

	require.Len(t, byName[DeptDoctors], 2)
	assert.True(t, strings.HasPrefix(byName[DeptDoctors][0], "Dr. med. Manuel Haag – "))
	assert.True(t, strings.HasPrefix(byName[DeptDoctors][1], "Dr. med. Christoph Lienhard – "))

	require.Len(t, byName[DeptManagementMedical], 1)
	assert.True(t, strings.HasPrefix(byName[DeptManagementMedical][0], "Prof. Martin Spring – "))

	require.Len(t, byName[DeptManagement], 1)
	assert.True(t, strings.HasPrefix(byName[DeptManagement][0], "Dr. med. Manuel Haag – "))

	require.Len(t, byName[DeptOsteopathy], 2)
	assert.Equal(t, byName[DeptManagementMedical][0], byName[DeptOsteopathy][0])
}

func TestTeamBlock(t *testing.T) {
	kb := loadShipped(t)
	block := TeamBlock(kb)

	assert.True(t, strings.Index(block, "**Ärzte:**") < strings.Index(block, "**Geschäftsleitung mit ärztlicher Kompetenz:**"))
	assert.True(t, strings.Index(block, "**Geschäftsleitung:**") < strings.Index(block, "**Physiotherapie:**"))
	assert.Contains(t, block, "https://www.functiomed.ch")
	assert.Empty(t, TeamBlock(&knowledge.Base{}))
}

func TestShopBlock(t *testing.T) {
	kb := loadShipped(t)
	assert.Equal(t,
		"\n**Shop (Bücher, bei Shop-Fragen nennen):** • Rückenschmerzen verstehen (Martin Spring) – CHF 29.00 | • Bewegung als Medizin (functiomed Team). Erhältlich in der Praxis bzw. [Online-Shop](https://www.functiomed.ch/shop).\n",
		ShopBlock(kb))
	assert.Empty(t, ShopBlock(&knowledge.Base{}))
}

func TestDocumentsBlock_PricingBudget(t *testing.T) {
	long := strings.Repeat("x", 600)
	kb := &knowledge.Base{Documents: []knowledge.Document{
		{ID: "flyer-abo-26", Title: "Flyer", Content: long},
		{ID: "misc", Title: "Goldene Regeln", Content: long},
		{ID: "hausordnung", Title: "Hausordnung", Content: "  Bitte\n\nsaubere   Schuhe. " + long},
		{ID: "empty", Title: "Leer", Content: " "},
	}}

	block := DocumentsBlock(kb)
	assert.Contains(t, block, "**Flyer:** "+long[:MaxPricingDocExcerpt]+"…\n")
	assert.Contains(t, block, "**Goldene Regeln:** "+long[:MaxPricingDocExcerpt]+"…\n")
	assert.Contains(t, block, "**Hausordnung:** "+Truncate("Bitte saubere Schuhe. "+long, MaxDocExcerpt)+"\n")
	assert.NotContains(t, block, "Leer")

	assert.True(t, IsPricingDocument(knowledge.Document{ID: "x", Title: "functioTraining Preise"}))
	assert.False(t, IsPricingDocument(knowledge.Document{ID: "hausordnung", Title: "Hausordnung"}))
	assert.Empty(t, DocumentsBlock(&knowledge.Base{}))
}

func TestIsTrainingSubscriptionQuestion(t *testing.T) {
	assert.True(t, IsTrainingSubscriptionQuestion("Was kostet ein functioTraining Abo?"))
	assert.True(t, IsTrainingSubscriptionQuestion("functio training prices please"))
	assert.False(t, IsTrainingSubscriptionQuestion("Was ist functioTraining?"))
	assert.False(t, IsTrainingSubscriptionQuestion("Was kostet die Physiotherapie?"))
}

func TestSystemPrompt_ConditionalPricing(t *testing.T) {
	c := NewComposer(loadShipped(t))

	with := c.SystemPrompt(knowledge.DE, "Was kostet das functioTraining Abo?")
	assert.True(t, strings.HasSuffix(with, TrainingAbosBlock))

	without := c.SystemPrompt(knowledge.DE, "Wer ist im Team?")
	assert.NotContains(t, without, TrainingAbosBlock)
	assert.True(t, strings.HasPrefix(without, LanguageInstruction(knowledge.DE)+"\n"))
	assert.Equal(t, LanguageInstruction(knowledge.DE)+"\n"+c.BasePrompt(knowledge.DE), without)
}

func TestSystemPrompt_HardRulesWithoutData(t *testing.T) {
	c := NewComposer(&knowledge.Base{})

	rules := map[knowledge.Lang][]string{
		knowledge.DE: {
			"Bus Nr. 33, Haltestelle Schulhaus Altweg", MapLink,
			"Osteopathie ist keine Leistung der Grundversicherung",
			"functiomed (mit kleinem f)", "blauen Zone", "Invaliden-WC", "kontaktiert uns",
			"Jede Frage bezieht sich auf functiomed AG.",
		},
		knowledge.EN: {
			"bus no. 33, stop Schulhaus Altweg", MapLink,
			"Osteopathy is not covered by basic health insurance",
			"functiomed (lowercase f)", "blue zone", "disabled WC", "contact us",
			"British English",
		},
		knowledge.FR: {
			"bus no 33", MapLink,
			"L'ostéopathie n'est pas prise en charge par l'assurance de base",
			"functiomed (f minuscule)", "zone bleue", "toilettes adaptées", "contactez-nous",
		},
	}
	for lang, want := range rules {
		p := c.SystemPrompt(lang, "")
		for _, w := range want {
			assert.Contains(t, p, w, "%s prompt", lang)
		}
		assert.NotContains(t, p, "Leistungen / Services", "%s prompt", lang)
	}
}

func TestComposer_UnknownLanguageFallsBackToGerman(t *testing.T) {
	c := NewComposer(loadShipped(t))
	assert.Equal(t, c.BasePrompt(knowledge.DE), c.BasePrompt(knowledge.Lang("it")))
	assert.Equal(t, LanguageInstruction(knowledge.DE), LanguageInstruction(knowledge.Lang("it")))
}

func TestUserTurn(t *testing.T) {
	assert.Equal(t, "User asks (answer in British English):\n\nWho is on the team?", UserTurn(knowledge.EN, "Who is on the team?"))
	assert.Equal(t, "Nutzer fragt (auf Deutsch beantworten):\n\nWer?", UserTurn(knowledge.DE, "Wer?"))
}
