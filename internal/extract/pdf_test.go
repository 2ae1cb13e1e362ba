package extract

import (
	"bytes"
	"compress/zlib"
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"
)

// fakePDF builds a byte blob that looks enough like a PDF for the byte-scan
// fallback: a header plus literal strings in a content stream. It is not a
// valid document, so the structured parser rejects it.
func fakePDF(literals ...string) []byte {
	var b bytes.Buffer
	b.WriteString("%PDF-1.4\n1 0 obj\n<< /Length 100 >>\nstream\nBT\n")
	for _, lit := range literals {
		b.WriteString("(" + lit + ") Tj\n")
	}
	b.WriteString("ET\nendstream\nendobj\n%%EOF")
	return b.Bytes()
}

func TestPDF_byteScanFallback(t *testing.T) {
	data := fakePDF(
		"The quick brown fox jumps over the lazy dog.",
		"A second line of recoverable content inside the stream.",
		"And a third sentence to clear the quality gate comfortably.",
	)
	got, err := extractNamed(t, "doc.pdf", "application/pdf", data)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got.Format != "PDF" {
		t.Errorf("format = %q", got.Format)
	}
	if !strings.Contains(got.Text, "quick brown fox") {
		t.Errorf("fallback missed literal text: %q", got.Text)
	}
	if len(got.Text) < 100 {
		t.Errorf("recovered only %d chars: %q", len(got.Text), got.Text)
	}
}

func TestPDF_scannedPlaceholder(t *testing.T) {
	// No legible literals anywhere: the engine reports a scanned document
	// instead of failing.
	got, err := extractNamed(t, "scan.pdf", "application/pdf", []byte("%PDF-1.4\n\x00\x01\x02\x03"))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got.Text != scannedPDFPlaceholder {
		t.Errorf("text = %q", got.Text)
	}
}

func TestPDF_neverErrors(t *testing.T) {
	engine := newPDFEngine(Config{}.withDefaults(), zap.NewNop())
	for _, data := range [][]byte{nil, {0xff}, []byte("%PDF-"), fakePDF("ok ok ok")} {
		if text := engine.extract(context.Background(), data); text == "" {
			t.Errorf("empty result for %q", data)
		}
	}
}

func TestScanPDFText_compressedStream(t *testing.T) {
	var payload bytes.Buffer
	zw := zlib.NewWriter(&payload)
	_, _ = zw.Write([]byte("BT (Compressed stream text survives inflation) Tj ET"))
	_ = zw.Close()

	var doc bytes.Buffer
	doc.WriteString("%PDF-1.4\nstream\n")
	doc.Write(payload.Bytes())
	doc.WriteString("endstream\n")

	got := scanPDFText(doc.Bytes())
	if !strings.Contains(got, "Compressed stream text survives inflation") {
		t.Errorf("got %q", got)
	}
}

func TestUnescapeLiteral(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`plain text`, "plain text"},
		{`line\none`, "line\none"},
		{`tab\there`, "tab\there"},
		{`paren \( inside \)`, "paren ( inside )"},
		{`back\\slash`, `back\slash`},
		{`octal \101\102`, "octal AB"},
		{`unknown \q escape`, "unknown q escape"},
	}
	for _, tt := range tests {
		if got := unescapeLiteral(tt.in); got != tt.want {
			t.Errorf("unescapeLiteral(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDecodeHexString(t *testing.T) {
	// Plain bytes.
	if got := decodeHexString([]byte("48656C6C6F")); got != "Hello" {
		t.Errorf("got %q", got)
	}
	// UTF-16BE ASCII narrows to one byte per character.
	if got := decodeHexString([]byte("00480069")); got != "Hi" {
		t.Errorf("utf16 got %q", got)
	}
	// Odd nibble count pads with zero.
	if got := decodeHexString([]byte("414")); got != "A@" {
		t.Errorf("odd got %q", got)
	}
}

func TestPlausibleFragment(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"real words here", true},
		{"ab", false},
		{"\x01\x02\x03\x04", false},
		{"a1 b2 c3", true},
		{"    ", false},
	}
	for _, tt := range tests {
		if got := plausibleFragment(tt.in); got != tt.want {
			t.Errorf("plausibleFragment(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
