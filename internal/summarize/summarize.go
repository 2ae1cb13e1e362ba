// Package summarize produces summaries in a target language and length via
// an LLM provider, splitting oversized content across multiple calls.
package summarize

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/divyamb08/multilingual-summarizer/internal/chunker"
	"github.com/divyamb08/multilingual-summarizer/internal/models"
)

// Provider is a minimal LLM completion boundary. Prompt construction stays
// in this package so providers are interchangeable.
type Provider interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}

// Options configures a provider client.
type Options struct {
	APIKey    string
	Model     string
	BaseURL   string // OpenAI-compatible endpoints only
	MaxTokens int
	Timeout   time.Duration
}

func (o Options) withDefaults(model string) Options {
	if o.Model == "" {
		o.Model = model
	}
	if o.MaxTokens <= 0 {
		o.MaxTokens = 1024
	}
	if o.Timeout <= 0 {
		o.Timeout = 60 * time.Second
	}
	return o
}

// Service orchestrates summarization: direct single-call for content under
// the multi-call threshold, otherwise chunked summaries condensed by a final
// combining call.
type Service struct {
	provider  Provider
	chunker   *chunker.Chunker
	threshold int
	logger    *zap.Logger
}

// NewService returns a Service. threshold is the content length (runes)
// above which multi-call summarization kicks in; non-positive values use the
// chunker default.
func NewService(provider Provider, threshold int, logger *zap.Logger) *Service {
	if threshold <= 0 {
		threshold = chunker.DefaultMaxChunkSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		provider:  provider,
		chunker:   chunker.New(threshold),
		threshold: threshold,
		logger:    logger,
	}
}

// Summarize produces a summary for req. Content over the threshold is split,
// summarized chunk by chunk, and condensed with a second-stage call.
func (s *Service) Summarize(ctx context.Context, req *models.SummaryRequest) (string, error) {
	if strings.TrimSpace(req.Content) == "" {
		return "", fmt.Errorf("nothing to summarize")
	}
	length := req.SummaryLength
	if !length.Valid() {
		length = models.LengthMedium
	}

	if utf8.RuneCountInString(req.Content) <= s.threshold {
		return s.provider.Complete(ctx, buildPrompt(req, length, req.Content))
	}

	pieces := s.chunker.Split(req.Content)
	s.logger.Info("content over multi-call threshold, summarizing in chunks",
		zap.Int("chunks", len(pieces)),
		zap.String("provider", s.provider.Name()))

	partials := make([]string, 0, len(pieces))
	for i, piece := range pieces {
		partial, err := s.provider.Complete(ctx, buildPrompt(req, length, piece))
		if err != nil {
			return "", fmt.Errorf("summarize chunk %d/%d: %w", i+1, len(pieces), err)
		}
		partials = append(partials, partial)
	}
	return s.provider.Complete(ctx, buildCombinePrompt(req, length, partials))
}

// lengthInstruction spells out what each SummaryLength means to the model.
func lengthInstruction(length models.SummaryLength) string {
	switch length {
	case models.LengthShort:
		return "a short summary of 2-3 sentences"
	case models.LengthLong:
		return "a detailed summary of several paragraphs covering all major points"
	default:
		return "a summary of one to two paragraphs"
	}
}

func buildPrompt(req *models.SummaryRequest, length models.SummaryLength, content string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write %s in %s of the following text.", lengthInstruction(length), req.TargetLanguage)
	if req.SourceLanguage != "" && req.SourceLanguage != "unknown" {
		fmt.Fprintf(&b, " The text is in %s.", req.SourceLanguage)
	}
	if req.FileName != "" {
		fmt.Fprintf(&b, " It was extracted from the file %q.", req.FileName)
	}
	b.WriteString(" Respond with the summary only.\n\n")
	b.WriteString(content)
	return b.String()
}

func buildCombinePrompt(req *models.SummaryRequest, length models.SummaryLength, partials []string) string {
	var b strings.Builder
	fmt.Fprintf(&b,
		"The following are summaries of consecutive parts of one document. "+
			"Combine them into %s in %s, reading as one cohesive summary. "+
			"Respond with the summary only.\n\n",
		lengthInstruction(length), req.TargetLanguage)
	for i, p := range partials {
		fmt.Fprintf(&b, "Part %d:\n%s\n\n", i+1, p)
	}
	return strings.TrimSpace(b.String())
}
