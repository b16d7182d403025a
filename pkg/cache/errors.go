package cache

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for caching operations.
var (
	// ErrUnavailable is returned when a remote backend cannot be reached.
	ErrUnavailable = errors.New("cache backend unavailable")

	// ErrInvalidConfig is returned when a backend is configured incompletely.
	ErrInvalidConfig = errors.New("invalid cache config")
)

// RetryableError wraps an error to indicate it should trigger a retry.
type RetryableError struct{ Err error }

// Retryable wraps an error as a RetryableError.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// Error returns the error message of the wrapped error.
func (e *RetryableError) Error() string { return e.Err.Error() }

// Unwrap returns the wrapped error.
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable checks if an error is wrapped with RetryableError.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// Backoff schedule for RetryWithBackoff. The delay doubles after each
// failed attempt and never exceeds retryMaxDelay.
var (
	retryAttempts = 3
	retryDelay    = time.Second
	retryMaxDelay = 4 * time.Second
)

// RetryWithBackoff calls fn until it succeeds, returns an error that is not
// [Retryable], or runs out of attempts. A cancelled ctx ends the wait
// between attempts and its error is returned.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	delay := retryDelay
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil || !IsRetryable(err) || attempt >= retryAttempts {
			return err
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay = min(2*delay, retryMaxDelay)
	}
}
