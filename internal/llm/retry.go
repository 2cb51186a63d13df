package llm

import (
	"context"
	"errors"
	"time"
)

// retryConfig bounds the exponential backoff applied to throttled
// completion calls.
type retryConfig struct {
	maxAttempts int
	baseDelay   time.Duration
	maxDelay    time.Duration
}

var (
	insightRetry = retryConfig{maxAttempts: 4, baseDelay: 2 * time.Second, maxDelay: 30 * time.Second}
	swotRetry    = retryConfig{maxAttempts: 3, baseDelay: 2 * time.Second, maxDelay: 10 * time.Second}
)

// completeWithRetry retries only throttled failures; anything else
// propagates immediately.
func completeWithRetry(
	ctx context.Context,
	client Client,
	prompt string,
	cfg retryConfig,
) (string, error) {

	delay := cfg.baseDelay
	var lastErr error

	for attempt := 1; attempt <= cfg.maxAttempts; attempt++ {
		out, err := client.Complete(ctx, prompt)
		if err == nil {
			return out, nil
		}
		lastErr = err

		if !errors.Is(err, ErrThrottled) {
			return "", err
		}
		if attempt == cfg.maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delay):
		}

		delay *= 2
		if delay > cfg.maxDelay {
			delay = cfg.maxDelay
		}
	}

	return "", lastErr
}
