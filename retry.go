package gotms

import (
	"context"
	"net/url"
	"time"
)

// RetryConfig holds configuration for retry behavior.
type RetryConfig struct {
	MaxRetries int           // Maximum number of retry attempts
	BaseDelay  time.Duration // Initial delay between retries
	MaxDelay   time.Duration // Maximum delay between retries
}

// DefaultRetryConfig returns sensible defaults for retry behavior.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: 3,
		BaseDelay:  1 * time.Second,
		MaxDelay:   30 * time.Second,
	}
}

// RetryFunc is a function that can be retried.
type RetryFunc[T any] func() (T, error)

// WithRetry executes a function with exponential backoff retry. Only errors
// marked retryable (see IsRetryable) are retried.
func WithRetry[T any](ctx context.Context, cfg RetryConfig, fn RetryFunc[T]) (T, error) {
	var lastErr error
	var zero T

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		default:
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}

		lastErr = err

		if !IsRetryable(err) {
			return zero, err
		}

		// Don't sleep after the last attempt
		if attempt < cfg.MaxRetries {
			delay := cfg.BaseDelay * time.Duration(1<<attempt)
			if delay > cfg.MaxDelay {
				delay = cfg.MaxDelay
			}

			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return zero, lastErr
}

// RetryableAgent wraps a Requester with retry logic. The core client itself
// never retries; wrap the agent before handing it to NewClient when retries
// are wanted.
type RetryableAgent struct {
	agent  Requester
	config RetryConfig
}

// NewRetryableAgent creates a Requester with retry logic.
func NewRetryableAgent(agent Requester, cfg RetryConfig) *RetryableAgent {
	return &RetryableAgent{
		agent:  agent,
		config: cfg,
	}
}

// Request implements Requester with retry logic.
func (a *RetryableAgent) Request(ctx context.Context, method, endpoint string, params url.Values) (Body, error) {
	return WithRetry(ctx, a.config, func() (Body, error) {
		return a.agent.Request(ctx, method, endpoint, params)
	})
}
