package confluence

import (
	"context"
	"time"

	"github.com/MacHu-GWU/docpack-confluence-go/internal/docerrors"
)

// RetryOptions configures ExecuteWithRetry.
type RetryOptions struct {
	Attempts     int
	InitialDelay time.Duration
}

// DefaultRetryOptions is the backoff schedule Request uses: three
// attempts, delay doubling from one second.
func DefaultRetryOptions() RetryOptions {
	return RetryOptions{Attempts: 3, InitialDelay: time.Second}
}

// ExecuteWithRetry calls fn, retrying only errors marked transient: an
// *APIError with Transient=true, or an error wrapped in
// docerrors.Retryable. Non-transient errors (4xx other than
// 429, parse failures) return immediately. Delay doubles after each
// attempt and the wait itself respects ctx cancellation.
func ExecuteWithRetry[T any](ctx context.Context, opts RetryOptions, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	delay := opts.InitialDelay
	var lastErr error

	for attempt := 0; attempt < opts.Attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}

		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !isTransient(err) {
			return zero, err
		}
	}

	return zero, lastErr
}

func isTransient(err error) bool {
	if docerrors.IsRetryable(err) {
		return true
	}
	if apiErr, ok := err.(*APIError); ok {
		return apiErr.Transient
	}
	return false
}
