package summarize

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// OpenAI is a Provider backed by the OpenAI chat completions API (or any
// compatible endpoint via Options.BaseURL). Calls go through a circuit
// breaker and retry with backoff.
type OpenAI struct {
	client  *openai.Client
	opts    Options
	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger
}

// NewOpenAI returns an OpenAI provider.
func NewOpenAI(opts Options, logger *zap.Logger) *OpenAI {
	opts = opts.withDefaults("gpt-4o-mini")
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OpenAI{
		client:  openai.NewClientWithConfig(cfg),
		opts:    opts,
		breaker: newAPIBreaker("openai-api"),
		logger:  logger,
	}
}

// Name implements Provider.
func (o *OpenAI) Name() string { return "openai" }

// Complete implements Provider.
func (o *OpenAI) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.opts.Timeout)
	defer cancel()

	var out string
	err := withBackoff(ctx, apiRetry, func() error {
		res, err := o.breaker.Execute(func() (interface{}, error) {
			return o.doComplete(ctx, prompt)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				o.logger.Warn("openai circuit breaker open, request rejected")
				return fmt.Errorf("openai api unavailable: circuit breaker open")
			}
			return err
		}
		out = res.(string)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("openai summarize failed: %w", err)
	}
	return out, nil
}

func (o *OpenAI) doComplete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     o.opts.Model,
		MaxTokens: o.opts.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	o.logger.Debug("openai completion",
		zap.String("model", o.opts.Model),
		zap.Duration("duration", time.Since(start)),
		zap.Int("prompt_chars", len(prompt)))
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// newAPIBreaker builds the circuit breaker both providers share the shape
// of: trip after five consecutive failures, probe again after 30 seconds.
func newAPIBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    name,
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
}
