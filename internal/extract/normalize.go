package extract

import (
	"regexp"
	"strings"
	"unicode"
)

var blankLines = regexp.MustCompile(`\n[ \t]*\n[\s]*`)

// normalizeWhitespace collapses runs of spaces/tabs to a single space and
// runs of blank lines to exactly one, preserving paragraph structure.
func normalizeWhitespace(text string) string {
	text = blankLines.ReplaceAllString(text, "\n\n")
	var b strings.Builder
	b.Grow(len(text))
	wasSpace := false
	for _, r := range text {
		if r == '\n' {
			b.WriteRune('\n')
			wasSpace = false
			continue
		}
		if unicode.IsSpace(r) {
			if !wasSpace {
				b.WriteRune(' ')
				wasSpace = true
			}
		} else {
			b.WriteRune(r)
			wasSpace = false
		}
	}
	return strings.TrimSpace(b.String())
}

// collapseSpaces flattens all whitespace runs (including newlines) to single
// spaces. Used where line structure carries no meaning, e.g. DOC scrapes.
func collapseSpaces(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
