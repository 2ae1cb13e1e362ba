package summarize

import (
	"context"
	"math"
	"time"
)

type retryConfig struct {
	maxAttempts int
	baseDelay   time.Duration
	maxDelay    time.Duration
}

var apiRetry = retryConfig{
	maxAttempts: 3,
	baseDelay:   500 * time.Millisecond,
	maxDelay:    8 * time.Second,
}

// withBackoff retries fn with exponential backoff and jitter, respecting
// context cancellation between attempts.
func withBackoff(ctx context.Context, cfg retryConfig, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt < cfg.maxAttempts; attempt++ {
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
		}
		if attempt == cfg.maxAttempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoffDelay(cfg, attempt)):
		}
	}
	return lastErr
}

func backoffDelay(cfg retryConfig, attempt int) time.Duration {
	delay := float64(cfg.baseDelay) * math.Pow(2, float64(attempt))
	// Up to 25% jitter to avoid synchronized retries.
	jitter := delay * 0.25 * (float64(time.Now().UnixNano()%1000)/1000 - 0.5)
	d := time.Duration(delay + jitter)
	if d > cfg.maxDelay {
		d = cfg.maxDelay
	}
	return d
}
