// Package retry wraps an operation with exponential backoff, retrying only
// the errors a caller-supplied predicate classifies as retryable.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
)

type Policy struct {
	// MaxAttempts counts the first call, so 4 means one call plus three retries.
	MaxAttempts int
	IsRetryable func(error) bool
	// NewBackOff builds a fresh schedule per Do call. Nil means Exponential(time.Second).
	NewBackOff func() backoff.BackOff
	// OnRetry is called before each wait.
	OnRetry func(err error, wait time.Duration)
}

// Exponential doubles the wait after each failure, starting at base, without jitter.
func Exponential(base time.Duration) func() backoff.BackOff {
	return func() backoff.BackOff {
		b := backoff.NewExponentialBackOff()
		b.InitialInterval = base
		b.Multiplier = 2
		b.RandomizationFactor = 0
		b.MaxInterval = base * 64
		b.Reset()
		return b
	}
}

func Do[T any](ctx context.Context, p Policy, op func(ctx context.Context) (T, error)) (T, error) {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	newBackOff := p.NewBackOff
	if newBackOff == nil {
		newBackOff = Exponential(time.Second)
	}

	operation := func() (T, error) {
		res, err := op(ctx)
		if err == nil {
			return res, nil
		}
		if p.IsRetryable == nil || !p.IsRetryable(err) {
			return res, backoff.Permanent(err)
		}
		return res, err
	}

	opts := []backoff.RetryOption{
		backoff.WithBackOff(newBackOff()),
		backoff.WithMaxTries(uint(attempts)),
	}
	if p.OnRetry != nil {
		opts = append(opts, backoff.WithNotify(p.OnRetry))
	}

	return backoff.Retry(ctx, operation, opts...)
}
