package llm

import (
	"context"
	"errors"
)

var (
	// ErrThrottled marks transient provider failures (rate limiting,
	// timeouts, 5xx). Only these are retried.
	ErrThrottled = errors.New("provider throttled")

	// ErrMalformedResponse marks unparsable provider output. Never retried.
	ErrMalformedResponse = errors.New("invalid LLM JSON output")
)

type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
