package faq

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// keptAccents are the non-ASCII letters that survive punctuation stripping.
const keptAccents = "äöüßéèêëàâùûîïçôœæáíóúñÿ"

// Normalize lowercases s, drops every character that is not an ASCII word
// character, a kept accented letter or whitespace, and collapses whitespace.
func Normalize(s string) string {
	stripped := strings.Map(func(r rune) rune {
		switch {
		case r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'):
			return r
		case unicode.IsSpace(r):
			return ' '
		case strings.ContainsRune(keptAccents, r):
			return r
		}
		return -1
	}, strings.ToLower(s))
	return strings.Join(strings.Fields(stripped), " ")
}

// Key is the comparison form used by the matcher. Combining marks are
// removed before Normalize strips punctuation, so "Rollstuhlgängig" and
// "rollstuhlgangig" compare equal and no accented letter is dropped.
func Key(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		return Normalize(s)
	}
	return Normalize(folded)
}

// containsWord reports whether needle occurs in haystack with no word
// character directly before or after it ("abo" does not occur in "tabor").
func containsWord(haystack, needle string) bool {
	if needle == "" {
		return false
	}
	for start := 0; start <= len(haystack)-len(needle); {
		i := strings.Index(haystack[start:], needle)
		if i < 0 {
			return false
		}
		i += start
		end := i + len(needle)
		if wordBoundaryBefore(haystack, i) && wordBoundaryAfter(haystack, end) {
			return true
		}
		_, size := utf8.DecodeRuneInString(haystack[i:])
		start = i + size
	}
	return false
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func wordBoundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !isWordRune(r)
}

func wordBoundaryAfter(s string, end int) bool {
	if end >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[end:])
	return !isWordRune(r)
}
