// Package textnorm cleans up answer text before it is returned to the widget.
package textnorm

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	lineSplitRe  = regexp.MustCompile(`\r?\n`)
	bulletRe     = regexp.MustCompile(`^(\s*[-•]\s+)`)
	spacedHyphen = regexp.MustCompile(`\s-\s`)
	multiSpaceRe = regexp.MustCompile(`\s{2,}`)
	slashSepRe   = regexp.MustCompile(`\s/\s`)
	plainLineRe  = regexp.MustCompile(`^[\w\s&'-]+$`)
	terminalRe   = regexp.MustCompile(`[.!?]$`)
)

const (
	maxHeadingLen   = 70
	maxHeadingWords = 6
)

// NormalizeEszett replaces ß with ss (Swiss spelling).
func NormalizeEszett(s string) string {
	return strings.ReplaceAll(s, "ß", "ss")
}

// StripLeadingHeading drops short title-like lines ("Services / Shop",
// "Team") that models sometimes put before the actual answer. If nothing
// would remain, the input is returned unchanged.
func StripLeadingHeading(content string) string {
	if content == "" {
		return content
	}
	lines := strings.Split(content, "\n")
	for len(lines) > 0 {
		if !looksLikeHeading(strings.TrimSpace(lines[0])) {
			break
		}
		lines = lines[1:]
		if len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
			lines = lines[1:]
		}
	}
	if out := strings.TrimSpace(strings.Join(lines, "\n")); out != "" {
		return out
	}
	return content
}

func looksLikeHeading(line string) bool {
	if line == "" || utf8.RuneCountInString(line) >= maxHeadingLen {
		return false
	}
	slashed := slashSepRe.MatchString(line)
	plain := plainLineRe.MatchString(line) && !terminalRe.MatchString(line)
	if !slashed && !plain {
		return false
	}
	return slashed || len(strings.Fields(line)) <= maxHeadingWords
}

// NormalizeDashes removes en/em dashes and spaced hyphens inside prose.
// Bullet markers at the start of a line are kept.
func NormalizeDashes(text string) string {
	lines := lineSplitRe.Split(text, -1)
	for i, line := range lines {
		prefix := ""
		rest := line
		if m := bulletRe.FindString(line); m != "" {
			prefix = m
			rest = line[len(m):]
		}
		rest = strings.NewReplacer("–", " ", "—", " ").Replace(rest)
		rest = spacedHyphen.ReplaceAllString(rest, " ")
		rest = multiSpaceRe.ReplaceAllString(rest, " ")
		lines[i] = prefix + rest
	}
	return strings.Join(lines, "\n")
}

// Canned prepares a curated FAQ/shop answer.
func Canned(s string) string {
	return NormalizeDashes(NormalizeEszett(s))
}

// Model prepares a provider answer.
func Model(s string) string {
	return NormalizeDashes(NormalizeEszett(StripLeadingHeading(s)))
}
