package extract

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

const scannedPDFPlaceholder = "This PDF appears to contain no extractable text. " +
	"It is likely a scanned or image-based document, or it uses unsupported " +
	"encryption. Try an OCR tool, remove the password, or paste the text directly."

// pdfEngine runs the structured extraction pipeline for PDFs:
// load (time-boxed) -> per-page extract (time-boxed, with a recovery pass
// per failed page) -> whitespace post-processing -> quality gate with a
// raw byte-scan fallback. Extraction failures are a normal outcome for this
// format, so the engine never returns an error: anything unrecoverable
// becomes a descriptive text result the caller can show as-is.
type pdfEngine struct {
	docTimeout      time.Duration
	pageTimeout     time.Duration
	minTextLen      int
	minRecoveredLen int
	logger          *zap.Logger
}

func newPDFEngine(cfg Config, logger *zap.Logger) *pdfEngine {
	return &pdfEngine{
		docTimeout:      cfg.DocTimeout,
		pageTimeout:     cfg.PageTimeout,
		minTextLen:      cfg.MinPDFTextLen,
		minRecoveredLen: cfg.MinRecoveredLen,
		logger:          logger,
	}
}

func (p *pdfEngine) extract(ctx context.Context, data []byte) string {
	r, err := p.open(ctx, data)
	if err != nil {
		p.logger.Warn("pdf structured parse failed, trying byte scan", zap.Error(err))
		return p.fallback(data)
	}

	numPages := r.NumPage()
	parts := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		text, err := p.extractPage(ctx, r, i)
		if err != nil || strings.TrimSpace(text) == "" {
			if err != nil {
				p.logger.Debug("page extraction failed", zap.Int("page", i), zap.Error(err))
			}
			// Recovery pass: raw content items, no run combination.
			recovered, recErr := p.recoverPage(ctx, r, i)
			if recErr == nil && len(strings.TrimSpace(recovered)) > p.minRecoveredLen {
				p.logger.Debug("page text recovered", zap.Int("page", i))
				text = recovered
			} else {
				text = fmt.Sprintf("[Error extracting text from page %d]", i)
			}
		}
		parts = append(parts, strings.TrimSpace(text))
	}

	// Page separators only exist for multi-page documents; the blank-line
	// collapse in normalizeWhitespace keeps exactly one per boundary.
	text := normalizeWhitespace(strings.Join(parts, "\n\n"))
	if len(text) >= p.minTextLen {
		return text
	}
	p.logger.Debug("pdf text under quality gate, trying byte scan",
		zap.Int("chars", len(text)), zap.Int("gate", p.minTextLen))
	if fb := p.fallback(data); len(fb) >= len(text) {
		return fb
	}
	return text
}

// open parses the document container inside the document time budget.
// The parser runs in its own goroutine so a pathological file cannot block
// past the deadline; the deferred cancel releases the timer on the normal
// branch. ledongthuc/pdf panics on some malformed inputs, so panics are
// converted to errors here.
func (p *pdfEngine) open(ctx context.Context, data []byte) (*pdf.Reader, error) {
	ctx, cancel := context.WithTimeout(ctx, p.docTimeout)
	defer cancel()

	type openResult struct {
		r   *pdf.Reader
		err error
	}
	ch := make(chan openResult, 1)
	go func() {
		defer func() {
			if v := recover(); v != nil {
				ch <- openResult{nil, fmt.Errorf("pdf parser panic: %v", v)}
			}
		}()
		r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
		ch <- openResult{r, err}
	}()

	select {
	case res := <-ch:
		return res.r, res.err
	case <-ctx.Done():
		return nil, timeoutErr("opening the PDF document")
	}
}

// extractPage runs the primary per-page extraction (library-combined text
// runs) inside the page time budget.
func (p *pdfEngine) extractPage(ctx context.Context, r *pdf.Reader, pageNum int) (string, error) {
	return p.timeboxed(ctx, fmt.Sprintf("extracting page %d", pageNum), func() (string, error) {
		page := r.Page(pageNum)
		if page.V.IsNull() {
			return "", fmt.Errorf("page %d has no content object", pageNum)
		}
		return page.GetPlainText(nil)
	})
}

// recoverPage is the simpler second extraction mode: it reads the raw
// positioned text items and joins them without the library's text-run
// combination, which sometimes survives fonts that break GetPlainText.
func (p *pdfEngine) recoverPage(ctx context.Context, r *pdf.Reader, pageNum int) (string, error) {
	return p.timeboxed(ctx, fmt.Sprintf("recovering page %d", pageNum), func() (string, error) {
		page := r.Page(pageNum)
		if page.V.IsNull() {
			return "", fmt.Errorf("page %d has no content object", pageNum)
		}
		content := page.Content()
		var b strings.Builder
		for _, item := range content.Text {
			if item.S == "" {
				continue
			}
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(item.S)
		}
		return b.String(), nil
	})
}

// timeboxed races fn against the page timeout. The result channel is
// buffered so a late fn can finish and be collected by the GC instead of
// leaking a blocked goroutine, and the deferred cancel guarantees the timer
// is released on the non-timeout branch.
func (p *pdfEngine) timeboxed(ctx context.Context, what string, fn func() (string, error)) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.pageTimeout)
	defer cancel()

	type pageResult struct {
		text string
		err  error
	}
	ch := make(chan pageResult, 1)
	go func() {
		defer func() {
			if v := recover(); v != nil {
				ch <- pageResult{"", fmt.Errorf("%s: parser panic: %v", what, v)}
			}
		}()
		text, err := fn()
		ch <- pageResult{text, err}
	}()

	select {
	case res := <-ch:
		return res.text, res.err
	case <-ctx.Done():
		return "", timeoutErr(what)
	}
}

// fallback is the independent last-chance path: scan the raw bytes for
// string literals in content streams. When even that finds nothing
// meaningful, the result is a descriptive placeholder, not an error.
func (p *pdfEngine) fallback(data []byte) string {
	text := scanPDFText(data)
	if len(text) >= p.minTextLen {
		p.logger.Info("pdf byte-scan fallback recovered text", zap.Int("chars", len(text)))
		return text
	}
	return scannedPDFPlaceholder
}
