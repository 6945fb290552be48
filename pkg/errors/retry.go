package errors

import (
	"context"
	"errors"
	"time"
)

// Backend connection defaults used when dialing Redis and MongoDB.
const (
	DefaultAttempts = 3
	DefaultDelay    = time.Second
)

// RetryableError marks an error as transient. [Retry] only repeats calls
// that fail with one.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable wraps err as a RetryableError. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// IsRetryable reports whether err or anything it wraps is a RetryableError.
func IsRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}

// Retry calls fn up to attempts times, doubling delay after each
// retryable failure. Non-retryable errors are returned immediately, and
// ctx.Err() is returned if ctx ends while waiting.
//
//	err := errors.Retry(ctx, errors.DefaultAttempts, errors.DefaultDelay, func() error {
//	    if err := client.Ping(ctx).Err(); err != nil {
//	        return errors.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "ping redis"))
//	    }
//	    return nil
//	})
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := range attempts {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !IsRetryable(err) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}
