package extract

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var htmlTag = regexp.MustCompile(`<[^>]*>`)

// extractHTML parses content as a DOM, removes script/style subtrees, and
// returns the remaining text prefixed with the document title and
// meta-description when present. A DOM-parse problem degrades to a
// tag-stripped raw decode; only a failed byte decode is a CorruptedFile.
func extractHTML(content []byte) (string, error) {
	raw, err := extractPlain(content)
	if err != nil {
		return "", corruptedErr("HTML", "the file does not contain readable text", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return stripTags(raw), nil
	}

	doc.Find("script, style, noscript").Remove()

	var parts []string
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		parts = append(parts, title)
	}
	if desc := strings.TrimSpace(doc.Find(`meta[name="description"]`).AttrOr("content", "")); desc != "" {
		parts = append(parts, desc)
	}
	body := doc.Find("body").Text()
	if strings.TrimSpace(body) == "" {
		body = doc.Text()
	}
	if body = strings.TrimSpace(body); body != "" {
		parts = append(parts, body)
	}

	text := normalizeWhitespace(strings.Join(parts, "\n\n"))
	if text == "" {
		return stripTags(raw), nil
	}
	return text, nil
}

func stripTags(raw string) string {
	return collapseSpaces(htmlTag.ReplaceAllString(raw, " "))
}
