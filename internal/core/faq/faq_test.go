package faq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DevAstrumAI/Funia/internal/core/knowledge"
)

const shippedData = "../../../data"

func loadShipped(t *testing.T) *knowledge.Base {
	t.Helper()
	kb, err := knowledge.Load(shippedData)
	require.NoError(t, err)
	require.NotEmpty(t, kb.FAQs)
	return kb
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "ist die praxis rollstuhlgängig", Normalize("  Ist  die Praxis\trollstuhlgängig?! "))
	assert.Equal(t, "questce qui distingue", Normalize("Qu'est-ce qui distingue"))
	assert.Equal(t, "öffnungszeiten", Normalize("ÖFFNUNGSZEITEN"))
	assert.Equal(t, "", Normalize("?!..."))
}

func TestKey_FoldsDiacritics(t *testing.T) {
	assert.Equal(t, Key("rollstuhlgangig"), Key("Rollstuhlgängig"))
	assert.Equal(t, "heures douverture", Key("Heures d'ouverture"))
	assert.Equal(t, "hopital", Key("Hôpital"))
	assert.Equal(t, Key("hopital"), Key("hôpital"))
	assert.Equal(t, "senor", Key("Señor"))
	assert.Equal(t, "cœur", Key("Cœur"))
	assert.Equal(t, "hôpital", Normalize("Hôpital!"))
}

func TestContainsWord(t *testing.T) {
	assert.True(t, containsWord("was kostet ein abo", "abo"))
	assert.False(t, containsWord("tabor", "abo"))
	assert.True(t, containsWord("tabor abo", "abo"))
	assert.True(t, containsWord("abo", "abo"))
	assert.False(t, containsWord("abos", "abo"))
	assert.False(t, containsWord("anything", ""))
}

func sectionsFixture() []knowledge.FAQSection {
	return []knowledge.FAQSection{
		{
			ID:        "abo",
			Questions: map[string][]string{"DE": {"abo"}},
			Answer:    map[string]string{"DE": "ABO"},
		},
		{
			ID:        "abo_price",
			Questions: map[string][]string{"DE": {"abo preis"}},
			Answer:    map[string]string{"DE": "ABO-PREIS"},
		},
		{
			ID:        "hours",
			Questions: map[string][]string{"DE": {"wann habt ihr offen", "öffnungszeiten"}, "EN": {"opening hours"}},
			Answer:    map[string]string{"DE": "HOURS", "EN": "HOURS-EN"},
		},
	}
}

func TestMatcher_MatchKinds(t *testing.T) {
	m := NewMatcher(sectionsFixture())

	got, ok := m.Match("Öffnungszeiten?", knowledge.DE)
	require.True(t, ok)
	assert.Equal(t, "HOURS", got.Answer)
	assert.Equal(t, MatchExact, got.Kind)

	got, ok = m.Match("Sagt mir bitte die Öffnungszeiten", knowledge.DE)
	require.True(t, ok)
	assert.Equal(t, "hours", got.SectionID)
	assert.Equal(t, MatchInputContainsVariant, got.Kind)

	got, ok = m.Match("wann habt", knowledge.DE)
	require.True(t, ok)
	assert.Equal(t, "hours", got.SectionID)
	assert.Equal(t, MatchVariantContainsInput, got.Kind)

	_, ok = m.Match("Tabor", knowledge.DE)
	assert.False(t, ok)
}

func TestMatcher_TieBreakLongestContainedVariant(t *testing.T) {
	m := NewMatcher(sectionsFixture())

	got, ok := m.Match("was ist der abo preis genau", knowledge.DE)
	require.True(t, ok)
	assert.Equal(t, "abo_price", got.SectionID)

	got, ok = m.Match("ich will ein abo", knowledge.DE)
	require.True(t, ok)
	assert.Equal(t, "abo", got.SectionID)
}

func TestMatcher_ExactBeatsContainment(t *testing.T) {
	m := NewMatcher(sectionsFixture())

	// "abo" is also contained in "abo preis"; the exact variant wins.
	got, ok := m.Match("abo", knowledge.DE)
	require.True(t, ok)
	assert.Equal(t, "abo", got.SectionID)
	assert.Equal(t, MatchExact, got.Kind)
}

func TestMatcher_ShortFragmentsDoNotMatch(t *testing.T) {
	m := NewMatcher(sectionsFixture())

	for _, in := range []string{"a", "ab", "of"} {
		_, ok := m.Match(in, knowledge.DE)
		assert.False(t, ok, in)
	}

	got, ok := m.Match("wann", knowledge.DE)
	require.True(t, ok)
	assert.Equal(t, MatchVariantContainsInput, got.Kind)

	// Short inputs still match exactly.
	got, ok = m.Match("abo", knowledge.DE)
	require.True(t, ok)
	assert.Equal(t, MatchExact, got.Kind)
}

func TestMatcher_LanguageScoped(t *testing.T) {
	m := NewMatcher(sectionsFixture())

	_, ok := m.Match("öffnungszeiten", knowledge.EN)
	assert.False(t, ok)

	got, ok := m.Match("opening hours", knowledge.EN)
	require.True(t, ok)
	assert.Equal(t, "HOURS-EN", got.Answer)

	_, ok = m.Match("   ", knowledge.DE)
	assert.False(t, ok)
}

func TestMatcher_EveryShippedVariantMatchesItsSection(t *testing.T) {
	kb := loadShipped(t)
	m := NewMatcher(kb.FAQs)

	for _, s := range kb.FAQs {
		for _, lang := range knowledge.Langs {
			want, ok := s.AnswerFor(lang)
			if !ok {
				continue
			}
			for _, v := range s.Questions[lang.Key()] {
				got, ok := m.Match(v, lang)
				require.True(t, ok, "%s/%s: %q did not match", s.ID, lang, v)
				assert.Equal(t, want, got.Answer, "%s/%s: %q", s.ID, lang, v)
			}
		}
	}
}

func TestValidate_ShippedDataIsClean(t *testing.T) {
	kb := loadShipped(t)
	assert.Empty(t, Validate(kb.FAQs))
}

func TestValidate_ReportsOverlapAndMissingAnswer(t *testing.T) {
	sections := []knowledge.FAQSection{
		{ID: "a", Questions: map[string][]string{"DE": {"Termin buchen"}}, Answer: map[string]string{"DE": "A"}},
		{ID: "b", Questions: map[string][]string{"DE": {"termin buchen!"}, "EN": {"book"}}, Answer: map[string]string{"DE": "B"}},
	}

	issues := Validate(sections)
	require.Len(t, issues, 2)

	assert.Equal(t, IssueMissingAnswer, issues[0].Kind)
	assert.Equal(t, "EN", issues[0].Lang)
	assert.Equal(t, []string{"b"}, issues[0].Sections)

	assert.Equal(t, IssueDuplicateVariant, issues[1].Kind)
	assert.Equal(t, "termin buchen", issues[1].Variant)
	assert.Equal(t, []string{"a", "b"}, issues[1].Sections)
	assert.Contains(t, issues[1].String(), "a, b")
}
