package extract

import (
	"archive/zip"
	"bytes"
	"strings"
	"unicode"
	"unicode/utf8"
)

const docCaveat = "[Limited extraction: this legacy Word document contains no " +
	"recoverable text. Re-save it as .docx or plain text for full extraction.]"

// extractDOC handles legacy .doc files, for which no structured parser is
// assumed. Some "doc" uploads are really renamed DOCX files, so the zip
// container is probed first and routed to the DOCX path when it matches.
// Everything else gets a best-effort scrape: decode as UTF-8, drop
// non-printable ranges, collapse whitespace. This path never fails; an empty
// scrape becomes an explicit caveat message.
func extractDOC(content []byte) string {
	if isRenamedDOCX(content) {
		if text, err := extractDOCX(content); err == nil && strings.TrimSpace(text) != "" {
			return text
		}
	}

	scraped := scrapePrintable(content)
	if scraped == "" {
		return docCaveat
	}
	return scraped
}

// isRenamedDOCX reports whether content is a zip archive carrying the OOXML
// main document entry.
func isRenamedDOCX(content []byte) bool {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return false
	}
	for _, f := range zr.File {
		if f.Name == docxDocumentXMLPath || f.Name == contentTypesPath {
			return true
		}
	}
	return false
}

// scrapePrintable decodes content as UTF-8 (invalid bytes dropped) and keeps
// printable runs, collapsing whitespace. Fragments shorter than a few
// characters are binary noise and are skipped.
func scrapePrintable(content []byte) string {
	decoded := strings.ToValidUTF8(string(content), " ")
	var b strings.Builder
	b.Grow(len(decoded) / 2)
	for _, r := range decoded {
		if r == utf8.RuneError {
			b.WriteByte(' ')
			continue
		}
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}

	const minFragment = 3
	var kept []string
	for _, f := range strings.Fields(b.String()) {
		if utf8.RuneCountInString(f) >= minFragment || isWordLike(f) {
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, " ")
}

// isWordLike keeps short fragments that are real words ("a", "of") rather
// than stray punctuation from binary structures.
func isWordLike(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}
