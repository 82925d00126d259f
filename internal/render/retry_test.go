package render

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func noJitter(time.Duration) time.Duration { return 0 }

func TestRetry(t *testing.T) {
	t.Run("success_on_first_attempt", func(t *testing.T) {
		cfg := RetryPolicy{
			MaxRetries:  3,
			BaseBackoff: 10 * time.Millisecond,
			MaxBackoff:  100 * time.Millisecond,
			JitterFn:    noJitter,
		}

		err := Retry(context.Background(), cfg, func() error {
			return nil
		})
		assert.NoError(t, err)
	})

	t.Run("success_after_retry", func(t *testing.T) {
		attempts := 0

		cfg := RetryPolicy{
			MaxRetries:  3,
			BaseBackoff: 1 * time.Millisecond,
			MaxBackoff:  10 * time.Millisecond,
			JitterFn:    noJitter,
		}

		err := Retry(context.Background(), cfg, func() error {
			attempts++
			if attempts < 2 {
				return errors.New("broker unavailable")
			}
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 2, attempts)
	})

	t.Run("exhaust_retries", func(t *testing.T) {
		attempts := 0

		cfg := RetryPolicy{
			MaxRetries:  2,
			BaseBackoff: 1 * time.Millisecond,
			MaxBackoff:  5 * time.Millisecond,
			JitterFn:    noJitter,
		}

		err := Retry(context.Background(), cfg, func() error {
			attempts++
			return errors.New("broker unavailable")
		})
		assert.Error(t, err)
		assert.Equal(t, 3, attempts)
	})

	t.Run("context_cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		cfg := RetryPolicy{
			MaxRetries:  5,
			BaseBackoff: 10 * time.Millisecond,
			MaxBackoff:  100 * time.Millisecond,
			JitterFn:    noJitter,
		}

		err := Retry(ctx, cfg, func() error {
			return errors.New("broker unavailable")
		})
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("default_policy_jitter", func(t *testing.T) {
		p := DefaultRetryPolicy()
		assert.Equal(t, p.BaseBackoff/2, p.JitterFn(p.BaseBackoff))
	})
}
