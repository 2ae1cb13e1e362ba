// Package language samples long text and identifies its language with a
// statistical trigram detector, normalizing the result to a display name.
package language

import (
	"strings"
	"unicode/utf8"

	"github.com/abadojack/whatlanggo"
)

// Unknown is returned whenever the input is too short or detection cannot
// settle on a language. Detection is best-effort and never fails the caller.
const Unknown = "unknown"

const (
	// defaultMinLength is the floor under which detection is unreliable.
	defaultMinLength = 20
	// wholeSampleLen: texts up to this length are detected whole.
	wholeSampleLen = 1000
	// zonedSampleLen: above this, sampling switches to three zones.
	zonedSampleLen = 2000
	// sampleWindow is the width of each sampled zone.
	sampleWindow = 600
)

// Detector identifies the language of a text.
type Detector struct {
	minLength int
}

// New returns a Detector. minLength is the shortest input (in runes) worth
// detecting; non-positive values use the default of 20.
func New(minLength int) *Detector {
	if minLength <= 0 {
		minLength = defaultMinLength
	}
	return &Detector{minLength: minLength}
}

// Detect returns the display name of text's language, the raw ISO 639-3
// code when no name is known for it, or Unknown for empty/short input or an
// undefined detection result.
func (d *Detector) Detect(text string) string {
	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) < d.minLength {
		return Unknown
	}
	info := whatlanggo.Detect(Sample(trimmed))
	code := whatlanggo.LangToString(info.Lang)
	if code == "" {
		return Unknown
	}
	if name, ok := languageNames[code]; ok {
		return name
	}
	return code
}

// Detect runs detection with default thresholds.
func Detect(text string) string {
	return New(0).Detect(text)
}

// Sample selects a representative slice of text for detection: short texts
// whole, medium texts truncated to the first 1000 runes, and long texts as
// three 600-rune zones (head, a window centered at the midpoint, and tail)
// joined with spaces. Mid/end zones reduce bias from boilerplate headers.
func Sample(text string) string {
	runes := []rune(text)
	n := len(runes)
	switch {
	case n <= wholeSampleLen:
		return text
	case n <= zonedSampleLen:
		return string(runes[:wholeSampleLen])
	default:
		midStart := n/2 - sampleWindow/2
		head := string(runes[:sampleWindow])
		mid := string(runes[midStart : midStart+sampleWindow])
		tail := string(runes[n-sampleWindow:])
		return head + " " + mid + " " + tail
	}
}
