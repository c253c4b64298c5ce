package faq

import (
	"regexp"
	"strings"
)

var greetingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(hi|hey|hallo|hello|moin|servus|grüezi|grüessech|salut|bonjour|ciao|hoi)\s*!*$`),
	regexp.MustCompile(`(?i)^(guten\s*(morgen|tag|abend)|good\s*(morning|evening|day)|bonjour)\s*!*$`),
	regexp.MustCompile(`(?i)^hallo\s+funia\s*!*$`),
}

var (
	wheelchairRe = regexp.MustCompile(`(?i)\brollstuhl|barrierefrei|wheelchair|fauteuil\s*roulant|accessible\s*(en\s*fauteuil|for\s*wheelchair|aux?\s*fauteuils)?|invaliden\s*wc|disabled\s*wc|toilette?\s*handicap`)

	whyDifferentRe = regexp.MustCompile(`(?i)\bdistinguishes?\b.*(functiomed|you|us|other\s+health)\b|\b(functiomed|you|us)\b.*\bdistinguishes?\b|distinguishes?.*from\s+other\s+health|what\s+makes\s+(you|functiomed)\s+different|different\s+from\s+other\s+health|why\s+choose\s+functiomed|what('s|\s+is)\s+special\s+about\s+functiomed|what\s+sets\s+functiomed\s+apart|was\s+unterscheidet|was\s+macht\s+(euch|functiomed)\s+anders|wodurch\s+unterscheidet|warum\s+functiomed|en\s+quoi.*différent|qu'est-ce\s+qui\s+distingue|pourquoi\s+(choisir\s+)?functiomed`)

	appointmentChangeRe = regexp.MustCompile(`(?i)\b(reschedule|cancel|change|shift|move|postpone)\b.*\b(appointment|termin|rendez-vous|booking)\b|\b(appointment|termin|rendez-vous|booking)\b.*\b(reschedule|cancel|change|shift|move|postpone)\b|verschieben|absagen|reporter|annuler`)

	paymentRe = regexp.MustCompile(`\bbank\b|\btransfer\b|überweisung|zahlung|payment|invoice|rechnung|how to pay|wie (kann ich )?zahlen|pay\s+(for|required)|facture`)

	shopRe = regexp.MustCompile(`\bshop\b|bücher|books|livres|kaufen|kauf|bestellen|preis.*buch|buch.*preis|\b(book|books)\s+(order|bestellen|kaufen)|order\s+(book|books)`)
)

// IsGreeting matches a bare greeting; the whole message must be the greeting.
func IsGreeting(text string) bool {
	t := strings.TrimSpace(text)
	for _, re := range greetingPatterns {
		if re.MatchString(t) {
			return true
		}
	}
	return false
}

func IsWheelchairQuestion(text string) bool {
	return wheelchairRe.MatchString(text)
}

func IsWhyDifferentQuestion(text string) bool {
	return whyDifferentRe.MatchString(text)
}

func IsAppointmentChangeQuestion(text string) bool {
	return appointmentChangeRe.MatchString(text)
}

func IsPaymentQuestion(text string) bool {
	return paymentRe.MatchString(strings.ToLower(text))
}

// IsShopQuestion matches book/shop questions that are not about paying.
func IsShopQuestion(text string) bool {
	t := strings.ToLower(text)
	if IsPaymentQuestion(t) {
		return false
	}
	return shopRe.MatchString(t)
}
