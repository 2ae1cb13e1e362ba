package summarize

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// Claude is a Provider backed by the Anthropic Messages API.
type Claude struct {
	client  anthropic.Client
	opts    Options
	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger
}

// NewClaude returns a Claude provider.
func NewClaude(opts Options, logger *zap.Logger) *Claude {
	opts = opts.withDefaults(string(anthropic.ModelClaudeSonnet4_5_20250929))
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Claude{
		client:  anthropic.NewClient(option.WithAPIKey(opts.APIKey)),
		opts:    opts,
		breaker: newAPIBreaker("claude-api"),
		logger:  logger,
	}
}

// Name implements Provider.
func (c *Claude) Name() string { return "claude" }

// Complete implements Provider.
func (c *Claude) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	var out string
	err := withBackoff(ctx, apiRetry, func() error {
		res, err := c.breaker.Execute(func() (interface{}, error) {
			return c.doComplete(ctx, prompt)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				c.logger.Warn("claude circuit breaker open, request rejected")
				return fmt.Errorf("claude api unavailable: circuit breaker open")
			}
			return err
		}
		out = res.(string)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("claude summarize failed: %w", err)
	}
	return out, nil
}

func (c *Claude) doComplete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.opts.Model),
		MaxTokens: int64(c.opts.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("messages api: %w", err)
	}
	if len(message.Content) == 0 {
		return "", fmt.Errorf("messages api returned no content")
	}
	textBlock, ok := message.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		return "", fmt.Errorf("messages api returned non-text content")
	}
	c.logger.Debug("claude completion",
		zap.String("model", c.opts.Model),
		zap.Duration("duration", time.Since(start)),
		zap.Int("prompt_chars", len(prompt)))
	return strings.TrimSpace(textBlock.Text), nil
}
