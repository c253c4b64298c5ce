package main

import (
	"regexp"
	"strings"
)

var (
	boldStarRe  = regexp.MustCompile(`\*\*([^*\n]+)\*\*`)
	italStarRe  = regexp.MustCompile(`\*([^*\n]+)\*`)
	boldUnderRe = regexp.MustCompile(`__([^_\n]+)__`)
	italUnderRe = regexp.MustCompile(`\b_([^_\n]+)_\b`)
	linkRe      = regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`)
	codeRe      = regexp.MustCompile("`([^`]+)`")
	headingRe   = regexp.MustCompile(`^(#{1,6})\s*(.*)$`)
	starItemRe  = regexp.MustCompile(`^\*\s+`)
	dashItemRe  = regexp.MustCompile(`^-\s+`)
	blankRunRe  = regexp.MustCompile(`\n+`)
)

// stripMarkdown turns an answer into plain text: emphasis, links and code
// spans keep their text, headings lose their hashes, list items get bullets.
func stripMarkdown(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		switch {
		case headingRe.MatchString(trimmed):
			lines[i] = strings.TrimSpace(headingRe.FindStringSubmatch(trimmed)[2])
		case starItemRe.MatchString(trimmed):
			lines[i] = starItemRe.ReplaceAllString(trimmed, "• ")
		case dashItemRe.MatchString(trimmed):
			lines[i] = dashItemRe.ReplaceAllString(trimmed, "• ")
		}
	}

	out := strings.Join(lines, "\n")
	out = boldStarRe.ReplaceAllString(out, "$1")
	out = italStarRe.ReplaceAllString(out, "$1")
	out = boldUnderRe.ReplaceAllString(out, "$1")
	out = italUnderRe.ReplaceAllString(out, "$1")
	out = linkRe.ReplaceAllString(out, "$1")
	return codeRe.ReplaceAllString(out, "$1")
}

// formatAnswer indents every non-empty line by two spaces.
func formatAnswer(text string) string {
	if text == "" {
		return "(keine Antwort)"
	}
	lines := blankRunRe.Split(stripMarkdown(text), -1)
	for i, line := range lines {
		lines[i] = "  " + line
	}
	return strings.Join(lines, "\n")
}
