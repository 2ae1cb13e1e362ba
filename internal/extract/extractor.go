// Package extract turns uploaded file bytes into plain text. One extractor
// per format family; the dispatcher routes on declared MIME type and file
// extension and owns the shared error contract.
package extract

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/divyamb08/multilingual-summarizer/internal/models"
)

// Config holds the tunable extraction thresholds. Zero values are replaced
// by the defaults below.
type Config struct {
	// DocTimeout bounds opening a PDF with the structured parser.
	DocTimeout time.Duration
	// PageTimeout bounds extracting a single PDF page.
	PageTimeout time.Duration
	// MinPDFTextLen is the quality gate: structured output shorter than this
	// triggers the byte-scan fallback.
	MinPDFTextLen int
	// MinRecoveredLen is how much text a per-page recovery pass must yield
	// to replace the page's error placeholder.
	MinRecoveredLen int
}

const (
	defaultDocTimeout      = 15 * time.Second
	defaultPageTimeout     = 5 * time.Second
	defaultMinPDFTextLen   = 80
	defaultMinRecoveredLen = 20
)

func (c Config) withDefaults() Config {
	if c.DocTimeout <= 0 {
		c.DocTimeout = defaultDocTimeout
	}
	if c.PageTimeout <= 0 {
		c.PageTimeout = defaultPageTimeout
	}
	if c.MinPDFTextLen <= 0 {
		c.MinPDFTextLen = defaultMinPDFTextLen
	}
	if c.MinRecoveredLen <= 0 {
		c.MinRecoveredLen = defaultMinRecoveredLen
	}
	return c
}

// Extractor extracts plain text from uploaded documents.
type Extractor struct {
	pdf    *pdfEngine
	logger *zap.Logger
}

// NewExtractor returns an Extractor with the given thresholds.
func NewExtractor(cfg Config, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg = cfg.withDefaults()
	return &Extractor{
		pdf:    newPDFEngine(cfg, logger),
		logger: logger,
	}
}

// ExtractFile reads the file at path and extracts it, inferring the MIME
// type from the extension. Convenience for the CLI path.
func (e *Extractor) ExtractFile(ctx context.Context, path string) (*models.ExtractionResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return e.Extract(ctx, &models.RawFile{
		Data:     data,
		FileName: filepath.Base(path),
		Size:     int64(len(data)),
	})
}

// Extract routes file to the extractor for its format and returns the
// extracted text with a format tag. Matching is checked in a fixed
// precedence order; the first family whose MIME type or extension matches
// wins. Files matching no family fall back to a direct text decode when the
// declared MIME type is empty or text-like and the bytes look like text;
// otherwise an UnsupportedFormat error is returned.
//
// Per-format failure policy: PDF and legacy DOC never fail, they degrade to
// a descriptive text result. DOCX, HTML, CSV, and JSON return typed
// CorruptedFile errors with remediation hints.
func (e *Extractor) Extract(ctx context.Context, file *models.RawFile) (*models.ExtractionResult, error) {
	mimeType := normalizeMIME(file.MIMEType)
	ext := strings.ToLower(filepath.Ext(file.FileName))

	switch {
	case mimeType == "application/pdf" || ext == ".pdf":
		return e.result(file, "PDF", e.pdf.extract(ctx, file.Data)), nil

	case mimeType == mimeDOCX || ext == ".docx":
		text, err := extractDOCX(file.Data)
		if err != nil {
			return nil, err
		}
		return e.result(file, "DOCX", text), nil

	case mimeType == "application/msword" || ext == ".doc":
		return e.result(file, "DOC", extractDOC(file.Data)), nil

	case isPlainTextFamily(mimeType, ext):
		text, err := extractPlain(file.Data)
		if err != nil {
			return nil, err
		}
		return e.result(file, plainFormatTag(ext), text), nil

	case mimeType == "text/html" || mimeType == "application/xhtml+xml" || ext == ".html" || ext == ".htm":
		text, err := extractHTML(file.Data)
		if err != nil {
			return nil, err
		}
		return e.result(file, "HTML", text), nil

	case mimeType == "text/csv" || ext == ".csv":
		text, err := extractCSV(file.Data)
		if err != nil {
			return nil, err
		}
		return e.result(file, "CSV", text), nil

	case isSpreadsheet(mimeType, ext):
		tag := "XLSX"
		if ext == ".xls" {
			tag = "XLS"
		}
		return e.result(file, tag, extractSpreadsheet(file.Data, ext)), nil

	case mimeType == "application/json" || ext == ".json":
		text, err := extractJSON(file.Data)
		if err != nil {
			return nil, err
		}
		return e.result(file, "JSON", text), nil

	default:
		// Last resort: if the client declared nothing (or something
		// text-like) and the bytes look like text, decode them directly.
		if (mimeType == "" || strings.HasPrefix(mimeType, "text/")) && looksLikeText(file.Data) {
			text, err := extractPlain(file.Data)
			if err != nil {
				return nil, err
			}
			return e.result(file, "TXT", text), nil
		}
		return nil, unsupportedErr(file.MIMEType, file.FileName)
	}
}

func (e *Extractor) result(file *models.RawFile, format, text string) *models.ExtractionResult {
	e.logger.Debug("extracted document",
		zap.String("file", file.FileName),
		zap.String("format", format),
		zap.Int("chars", len(text)))
	return &models.ExtractionResult{
		Text:     text,
		Format:   format,
		FileName: file.FileName,
	}
}

const mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// normalizeMIME lowercases the declared type and strips parameters
// (e.g. "text/html; charset=utf-8" -> "text/html").
func normalizeMIME(mimeType string) string {
	mimeType = strings.TrimSpace(strings.ToLower(mimeType))
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	return mimeType
}

func isPlainTextFamily(mimeType, ext string) bool {
	switch ext {
	case ".txt", ".md", ".markdown", ".rtf":
		return true
	}
	switch mimeType {
	case "text/plain", "text/markdown", "application/rtf", "text/rtf":
		return true
	}
	return false
}

func plainFormatTag(ext string) string {
	switch ext {
	case ".md", ".markdown":
		return "MD"
	case ".rtf":
		return "RTF"
	default:
		return "TXT"
	}
}

func isSpreadsheet(mimeType, ext string) bool {
	switch ext {
	case ".xlsx", ".xls":
		return true
	}
	switch mimeType {
	case "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"application/vnd.ms-excel":
		return true
	}
	return false
}

// looksLikeText reports whether data plausibly holds generic text: non-empty,
// no NUL bytes in the first KiB, and mostly printable.
func looksLikeText(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	probe := data
	if len(probe) > 1024 {
		probe = probe[:1024]
	}
	printable := 0
	for _, b := range probe {
		if b == 0 {
			return false
		}
		if b == '\n' || b == '\r' || b == '\t' || (b >= 0x20 && b != 0x7f) {
			printable++
		}
	}
	return printable*100 >= len(probe)*85
}
