package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

type scriptedClient struct {
	responses []func() (string, error)
	calls     int
}

func (s *scriptedClient) Complete(ctx context.Context, prompt string) (string, error) {
	if s.calls >= len(s.responses) {
		return "", errors.New("no more scripted responses")
	}
	resp := s.responses[s.calls]
	s.calls++
	return resp()
}

func throttled() (string, error) {
	return "", fmt.Errorf("%w: 429", ErrThrottled)
}

func ok(body string) func() (string, error) {
	return func() (string, error) { return body, nil }
}

var testRetry = retryConfig{maxAttempts: 4, baseDelay: time.Millisecond, maxDelay: 4 * time.Millisecond}

func TestCompleteWithRetry_RecoversFromThrottling(t *testing.T) {
	client := &scriptedClient{responses: []func() (string, error){
		throttled,
		throttled,
		ok(`{"executive_summary":"ok"}`),
	}}

	out, err := completeWithRetry(context.Background(), client, "p", testRetry)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out == "" {
		t.Fatal("expected completion output")
	}
	if client.calls != 3 {
		t.Errorf("expected 3 calls, got %d", client.calls)
	}
}

func TestCompleteWithRetry_BoundedAttempts(t *testing.T) {
	client := &scriptedClient{responses: []func() (string, error){
		throttled, throttled, throttled, throttled, throttled,
	}}

	_, err := completeWithRetry(context.Background(), client, "p", testRetry)
	if !errors.Is(err, ErrThrottled) {
		t.Fatalf("expected ErrThrottled, got %v", err)
	}
	if client.calls != testRetry.maxAttempts {
		t.Errorf("expected %d calls, got %d", testRetry.maxAttempts, client.calls)
	}
}

func TestCompleteWithRetry_NoRetryOnPermanentError(t *testing.T) {
	client := &scriptedClient{responses: []func() (string, error){
		func() (string, error) { return "", errors.New("invalid api key") },
		ok("{}"),
	}}

	_, err := completeWithRetry(context.Background(), client, "p", testRetry)
	if err == nil {
		t.Fatal("expected error")
	}
	if client.calls != 1 {
		t.Errorf("expected exactly 1 call, got %d", client.calls)
	}
}
