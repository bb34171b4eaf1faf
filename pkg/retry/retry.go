package retry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"
)

// Backoff describes how often and how long an operation is retried
type Backoff struct {
	// Attempts is the total number of tries, including the first one
	Attempts int
	Initial  time.Duration
	Max      time.Duration
	// Multiplier grows the wait after every failed attempt
	Multiplier float64
	// Jitter is a fraction (0-1) of the wait randomly added or removed
	Jitter float64
}

// Constant returns a Backoff that waits the same interval between tries
func Constant(attempts int, interval time.Duration) Backoff {
	return Backoff{Attempts: attempts, Initial: interval, Max: interval, Multiplier: 1}
}

// Exponential returns a Backoff doubling from initial up to maxWait with 10% jitter
func Exponential(attempts int, initial, maxWait time.Duration) Backoff {
	return Backoff{Attempts: attempts, Initial: initial, Max: maxWait, Multiplier: 2, Jitter: 0.1}
}

func (b Backoff) normalized() Backoff {
	if b.Attempts < 1 {
		b.Attempts = 1
	}
	if b.Initial < 0 {
		b.Initial = 0
	}
	if b.Max < b.Initial {
		b.Max = b.Initial
	}
	if b.Multiplier < 1 {
		b.Multiplier = 1
	}
	b.Jitter = math.Min(math.Max(b.Jitter, 0), 1)
	return b
}

// Wait returns the pause after the given zero-based failed attempt
func (b Backoff) Wait(attempt int) time.Duration {
	b = b.normalized()
	wait := float64(b.Initial) * math.Pow(b.Multiplier, float64(attempt))
	if b.Jitter > 0 {
		wait += (rand.Float64()*2 - 1) * wait * b.Jitter
	}
	if wait > float64(b.Max) {
		wait = float64(b.Max)
	}
	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err so Do returns it without further attempts
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// OnRetry is called before every wait with the failed attempt number (1-based)
type OnRetry func(attempt int, err error, wait time.Duration)

// Do runs op until it succeeds, returns a Permanent error, exhausts the
// attempts or ctx is done. The returned error wraps the last failure.
func Do(ctx context.Context, b Backoff, op func(ctx context.Context) error, onRetry OnRetry) error {
	b = b.normalized()

	var lastErr error
	for attempt := 0; attempt < b.Attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return joinCtx(err, lastErr)
		}

		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}

		var perm *permanentError
		if errors.As(lastErr, &perm) {
			return perm.err
		}
		if attempt == b.Attempts-1 {
			break
		}

		wait := b.Wait(attempt)
		if onRetry != nil {
			onRetry(attempt+1, lastErr, wait)
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return joinCtx(ctx.Err(), lastErr)
		case <-timer.C:
		}
	}

	return fmt.Errorf("gave up after %d attempts: %w", b.Attempts, lastErr)
}

func joinCtx(ctxErr, lastErr error) error {
	if lastErr == nil {
		return ctxErr
	}
	return errors.Join(ctxErr, lastErr)
}
