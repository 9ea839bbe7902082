package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNetwork marks a remote backend that could not be reached.
	ErrNetwork = errors.New("network error")

	// ErrConfig marks an unusable backend configuration, such as a bad URL.
	ErrConfig = errors.New("invalid cache configuration")
)

// RetryableError marks a failure worth another attempt.
type RetryableError struct{ Err error }

// Retryable marks err as retryable. It returns nil for a nil err.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }

func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err was marked with [Retryable].
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// backoff runs an operation up to attempts times, doubling the wait after
// each retryable failure. Other errors return at once.
type backoff struct {
	attempts int
	delay    time.Duration
}

var defaultBackoff = backoff{attempts: 3, delay: 200 * time.Millisecond}

func (b backoff) do(ctx context.Context, fn func() error) error {
	delay := b.delay
	var err error
	for i := range b.attempts {
		if err = fn(); err == nil || !IsRetryable(err) {
			return err
		}
		if i == b.attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return err
}
