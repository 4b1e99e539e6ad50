package utils

import (
	"context"
	"time"
)

// RetryPolicy describes how often and how fast a failing call is retried
type RetryPolicy struct {
	MaxRetries     int
	InitialBackoff time.Duration
	Retryable      func(error) bool
}

// Retry runs fn until it succeeds, returns a non-retryable error, or retries run out.
// The backoff doubles after every failed attempt.
func Retry(ctx context.Context, policy RetryPolicy, fn func(ctx context.Context) error) error {
	backoff := policy.InitialBackoff
	var err error
	for attempt := 0; attempt <= policy.MaxRetries; attempt++ {
		err = fn(ctx)
		if err == nil {
			return nil
		}
		if policy.Retryable == nil || !policy.Retryable(err) {
			return err
		}
		if attempt == policy.MaxRetries {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
			backoff *= 2
		}
	}
	return err
}
