// Package chunker splits oversized text into bounded pieces for multi-call
// summarization.
package chunker

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultMaxChunkSize matches the multi-call threshold of the summarization
// boundary: content above it is summarized chunk by chunk.
const DefaultMaxChunkSize = 100000

// paragraphBreak matches blank-line runs separating paragraphs.
var paragraphBreak = regexp.MustCompile(`\n[ \t]*\n\s*`)

// sentenceEnd matches a sentence boundary: terminal punctuation followed by
// whitespace. The whitespace is consumed so packed sentences rejoin cleanly.
var sentenceEnd = regexp.MustCompile(`([.!?]+)\s+`)

// Chunker splits text along paragraph, then sentence, then character
// boundaries, greedily packing each level up to the size limit. A chunk only
// exceeds the limit when a single word does, in which case it is hard-sliced.
type Chunker struct {
	maxSize int
}

// New returns a Chunker with the given limit in characters (runes).
// Non-positive sizes fall back to DefaultMaxChunkSize.
func New(maxSize int) *Chunker {
	if maxSize <= 0 {
		maxSize = DefaultMaxChunkSize
	}
	return &Chunker{maxSize: maxSize}
}

// Split returns text in ordered pieces whose concatenation preserves the
// content. Text at or under the limit is returned as a single element with
// no normalization applied.
func (c *Chunker) Split(text string) []string {
	if utf8.RuneCountInString(text) <= c.maxSize {
		return []string{text}
	}

	var chunks []string
	var buf strings.Builder
	bufLen := 0

	flush := func() {
		if bufLen > 0 {
			chunks = append(chunks, buf.String())
			buf.Reset()
			bufLen = 0
		}
	}

	for _, para := range splitParagraphs(text) {
		paraLen := utf8.RuneCountInString(para)
		if paraLen > c.maxSize {
			// A single paragraph over the limit: flush what we have and
			// fall through to sentence-level packing.
			flush()
			chunks = append(chunks, c.splitBySentences(para)...)
			continue
		}
		// +2 for the paragraph separator restored on join.
		if bufLen > 0 && bufLen+2+paraLen > c.maxSize {
			flush()
		}
		if bufLen > 0 {
			buf.WriteString("\n\n")
			bufLen += 2
		}
		buf.WriteString(para)
		bufLen += paraLen
	}
	flush()
	return chunks
}

// splitBySentences greedily packs sentences; a single sentence over the
// limit falls through to fixed-width slicing.
func (c *Chunker) splitBySentences(para string) []string {
	var chunks []string
	var buf strings.Builder
	bufLen := 0

	flush := func() {
		if bufLen > 0 {
			chunks = append(chunks, buf.String())
			buf.Reset()
			bufLen = 0
		}
	}

	for _, sentence := range splitSentences(para) {
		sentLen := utf8.RuneCountInString(sentence)
		if sentLen > c.maxSize {
			flush()
			chunks = append(chunks, sliceRunes(sentence, c.maxSize)...)
			continue
		}
		if bufLen > 0 && bufLen+1+sentLen > c.maxSize {
			flush()
		}
		if bufLen > 0 {
			buf.WriteByte(' ')
			bufLen++
		}
		buf.WriteString(sentence)
		bufLen += sentLen
	}
	flush()
	return chunks
}

// splitParagraphs splits on blank-line runs, dropping empty paragraphs.
func splitParagraphs(text string) []string {
	parts := paragraphBreak.Split(text, -1)
	out := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

// splitSentences applies the punctuation-plus-whitespace heuristic. Text
// with no boundaries comes back as one piece.
func splitSentences(text string) []string {
	marked := sentenceEnd.ReplaceAllString(text, "$1\x00")
	parts := strings.Split(marked, "\x00")
	out := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

// sliceRunes hard-slices s into maxSize-rune pieces. Last resort for a
// single run with no internal boundaries.
func sliceRunes(s string, maxSize int) []string {
	runes := []rune(s)
	var out []string
	for start := 0; start < len(runes); start += maxSize {
		end := start + maxSize
		if end > len(runes) {
			end = len(runes)
		}
		out = append(out, string(runes[start:end]))
	}
	return out
}
