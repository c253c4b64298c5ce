package knowledge

import (
	"strings"
	"time"
)

// Lang is one of the supported reply languages.
type Lang string

const (
	DE Lang = "de"
	EN Lang = "en"
	FR Lang = "fr"
)

// Langs lists the supported languages in a stable order.
var Langs = []Lang{DE, EN, FR}

// ParseLang maps any unsupported value to DE.
func ParseLang(s string) Lang {
	switch Lang(strings.ToLower(strings.TrimSpace(s))) {
	case EN:
		return EN
	case FR:
		return FR
	default:
		return DE
	}
}

// Key returns the upper-case key used by the FAQ tables ("DE", "EN", "FR").
func (l Lang) Key() string {
	return strings.ToUpper(string(l))
}

type Service struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url,omitempty"`
}

type TeamMember struct {
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Department  string   `json:"department"`
	Credentials string   `json:"credentials,omitempty"`
	Specialties []string `json:"specialties,omitempty"`
	Bio         string   `json:"bio,omitempty"`
	Languages   []string `json:"languages,omitempty"`
}

type Link struct {
	Label string `json:"label"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

type Site struct {
	Title   string `json:"title"`
	Contact struct {
		Address string `json:"address"`
		Phone   string `json:"phone"`
		Email   string `json:"email"`
	} `json:"contact"`
	Home struct {
		Booking Link `json:"booking"`
	} `json:"home"`
	Notfall      Link `json:"notfall"`
	OpeningHours struct {
		Secretariat string `json:"secretariat"`
	} `json:"openingHours"`
}

type ShopProduct struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	PriceNote string `json:"priceNote,omitempty"`
}

type Shop struct {
	Source   string        `json:"source"`
	Products []ShopProduct `json:"products"`
}

// Document is a text excerpt produced by the offline client-doc extraction.
type Document struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// FAQSection pairs per-language question variants with a canned answer.
// Language keys are upper-case ("DE", "EN", "FR").
type FAQSection struct {
	ID        string              `json:"-"`
	Questions map[string][]string `json:"questions"`
	Answer    map[string]string   `json:"answer"`
}

// AnswerFor returns the canned answer for lang, if the section has one.
func (s FAQSection) AnswerFor(lang Lang) (string, bool) {
	a, ok := s.Answer[lang.Key()]
	return a, ok && a != ""
}

// Base is the immutable set of business tables loaded at startup. Nothing
// mutates a Base after Load returns; a reload builds a new one.
type Base struct {
	Services    []Service
	Team        []TeamMember
	Departments []string
	Site        Site
	FAQs        []FAQSection
	Shop        *Shop
	Documents   []Document
	LoadedAt    time.Time
}

// Section returns the FAQ section with the given id.
func (b *Base) Section(id string) (FAQSection, bool) {
	for _, s := range b.FAQs {
		if s.ID == id {
			return s, true
		}
	}
	return FAQSection{}, false
}

// PracticeName derives the display name from the site title ("functiomed AG | ...").
func (b *Base) PracticeName() string {
	if name := strings.TrimSpace(strings.Split(b.Site.Title, "|")[0]); name != "" {
		return name
	}
	return "functiomed AG"
}
