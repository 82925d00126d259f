package render

import (
	"context"
	"time"
)

// RetryPolicy controls retry behavior for broker operations
type RetryPolicy struct {
	MaxRetries  int           //max retry attempts
	BaseBackoff time.Duration //initial backoff duration
	MaxBackoff  time.Duration // upper bound on backoff
	JitterFn    func(time.Duration) time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:  5,
		BaseBackoff: 200 * time.Millisecond,
		MaxBackoff:  5 * time.Second,
		JitterFn:    func(d time.Duration) time.Duration { return d / 2 }, //default jitter:50%
	}
}

// Retry executes fn with retries, backoff, and cancellation support.
//
// fn must return nil on success.
// Any non-nil error is treated as retryable.
func Retry(
	ctx context.Context,
	policy RetryPolicy,
	fn func() error,
) error {

	var attempt int
	var backoff = policy.BaseBackoff

	for {
		err := fn()
		if err == nil {
			return nil
		}

		attempt++
		if attempt > policy.MaxRetries {
			return err
		}

		delay := backoff
		if policy.JitterFn != nil {
			delay += policy.JitterFn(backoff)
		}
		if delay > policy.MaxBackoff {
			delay = policy.MaxBackoff
		}

		select {
		case <-time.After(delay):
			backoff *= 2
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
