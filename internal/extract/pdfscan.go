package extract

import (
	"bytes"
	"compress/zlib"
	"io"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// The byte-scan fallback approximates a PDF content-stream text scan without
// a structured parser: it looks for literal parenthesized strings and
// hex-encoded string literals, both in the raw bytes and inside deflated
// stream bodies, and keeps the fragments that look like real words.

var (
	pdfLiteral = regexp.MustCompile(`\(((?:\\.|[^\\()]){2,})\)`)
	pdfHex     = regexp.MustCompile(`<([0-9A-Fa-f](?:[0-9A-Fa-f\s]{3,}))>`)
)

const (
	maxScanStreams    = 256
	maxInflatedStream = 4 << 20
)

// scanPDFText scans data for string literals and returns the plausible text
// fragments joined with spaces. Returns "" when nothing legible is found.
func scanPDFText(data []byte) string {
	sources := [][]byte{data}
	sources = append(sources, inflateStreams(data)...)

	var frags []string
	for _, src := range sources {
		for _, m := range pdfLiteral.FindAllSubmatch(src, -1) {
			if s := unescapeLiteral(string(m[1])); plausibleFragment(s) {
				frags = append(frags, strings.TrimSpace(s))
			}
		}
		for _, m := range pdfHex.FindAllSubmatch(src, -1) {
			if s := decodeHexString(m[1]); plausibleFragment(s) {
				frags = append(frags, strings.TrimSpace(s))
			}
		}
	}
	return strings.TrimSpace(strings.Join(frags, " "))
}

// inflateStreams finds stream...endstream bodies and returns those that
// decompress as zlib/deflate (the common FlateDecode filter). Bodies that do
// not decompress are skipped; uncompressed streams are already covered by
// the raw-byte scan.
func inflateStreams(data []byte) [][]byte {
	var out [][]byte
	rest := data
	for count := 0; count < maxScanStreams; count++ {
		start := bytes.Index(rest, []byte("stream"))
		if start < 0 {
			break
		}
		body := rest[start+len("stream"):]
		body = bytes.TrimPrefix(body, []byte("\r\n"))
		body = bytes.TrimPrefix(body, []byte("\n"))
		end := bytes.Index(body, []byte("endstream"))
		if end < 0 {
			break
		}
		if inflated := inflate(body[:end]); len(inflated) > 0 {
			out = append(out, inflated)
		}
		rest = body[end+len("endstream"):]
	}
	return out
}

func inflate(body []byte) []byte {
	zr, err := zlib.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil
	}
	defer zr.Close()
	out, err := io.ReadAll(io.LimitReader(zr, maxInflatedStream))
	if err != nil && len(out) == 0 {
		return nil
	}
	return out
}

// unescapeLiteral resolves PDF string escapes: \n \r \t \b \f \( \) \\ and
// octal \ddd. Unknown escapes keep the escaped character, per the PDF spec.
func unescapeLiteral(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'b', 'f':
			// Backspace/formfeed carry no text.
		case '0', '1', '2', '3', '4', '5', '6', '7':
			j := i
			for j < len(s) && j-i < 3 && s[j] >= '0' && s[j] <= '7' {
				j++
			}
			if n, err := strconv.ParseUint(s[i:j], 8, 16); err == nil && n > 0 && n < 256 {
				b.WriteByte(byte(n))
			}
			i = j - 1
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// decodeHexString decodes a <...> hex literal. Two-byte characters that look
// like UTF-16BE ASCII (high byte zero) are narrowed; anything else falls back
// to the raw byte interpretation.
func decodeHexString(raw []byte) string {
	var nibbles []byte
	for _, c := range raw {
		switch {
		case c >= '0' && c <= '9':
			nibbles = append(nibbles, c-'0')
		case c >= 'a' && c <= 'f':
			nibbles = append(nibbles, c-'a'+10)
		case c >= 'A' && c <= 'F':
			nibbles = append(nibbles, c-'A'+10)
		}
	}
	if len(nibbles)%2 == 1 {
		nibbles = append(nibbles, 0)
	}
	decoded := make([]byte, 0, len(nibbles)/2)
	for i := 0; i+1 < len(nibbles); i += 2 {
		decoded = append(decoded, nibbles[i]<<4|nibbles[i+1])
	}

	// UTF-16BE ASCII: 00 XX 00 XX ...
	if len(decoded) >= 4 && len(decoded)%2 == 0 {
		utf16 := true
		for i := 0; i < len(decoded); i += 2 {
			if decoded[i] != 0 {
				utf16 = false
				break
			}
		}
		if utf16 {
			narrow := make([]byte, 0, len(decoded)/2)
			for i := 1; i < len(decoded); i += 2 {
				narrow = append(narrow, decoded[i])
			}
			decoded = narrow
		}
	}
	return string(decoded)
}

// plausibleFragment reports whether s reads like text rather than binary
// noise: at least three runes, mostly letters/digits/spaces, and at least
// two ASCII letters.
func plausibleFragment(s string) bool {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) < 3 {
		return false
	}
	letters, wordish := 0, 0
	for _, r := range runes {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			letters++
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || unicode.IsPunct(r) {
			wordish++
		}
	}
	return letters >= 2 && wordish*100 >= len(runes)*80
}
