package prompt

import (
	"regexp"
	"strings"
)

var (
	trainingRe     = regexp.MustCompile(`functiotraining|functio-training|functio training|training\s*abo`)
	trainingCostRe = regexp.MustCompile(`abo|abonnement|subscription|paket|package|preis|price|tarif|tarife|cost|kosten|preise|prices|kostet|kostenpflichtig|gebühr(en)?`)
)

// TrainingAbosBlock lists the functioTraining subscription packages.
const TrainingAbosBlock = "\n**functioTraining Abos (bei Abo-Fragen immer diese Pakete und Preise nennen):**\n" +
	"• Jahresabo BASIC: 810 CHF (inkl. 2×30min Einführung + Kontrolle)\n" +
	"• Halbjahresabo BASIC: 455 CHF (inkl. 2×30min Einführung + Kontrolle)\n" +
	"• Jahresabo PRO: 990 CHF (inkl. 5×30min Sitzung dipl. Physiotherapeut)\n" +
	"• Jahresabo PREMIUM: 1190 CHF (inkl. 10×30min Sitzung dipl. Physiotherapeut)\n" +
	"Öffnungszeiten Training: Mo–Do 07:00–19:30, Fr 07:00–17:30, Sa 08:00–15:30. 10% Rabatt für Studenten/AHV/IV.\n"

// IsTrainingSubscriptionQuestion needs both a training keyword and a
// price or subscription keyword.
func IsTrainingSubscriptionQuestion(text string) bool {
	t := strings.ToLower(text)
	return trainingRe.MatchString(t) && trainingCostRe.MatchString(t)
}

// ConditionalBlock is appended per request when its detector matches the
// user's message.
type ConditionalBlock struct {
	Name    string
	Applies func(userText string) bool
	Text    string
}

var Conditional = []ConditionalBlock{
	{Name: "pricing", Applies: IsTrainingSubscriptionQuestion, Text: TrainingAbosBlock},
}
