// Package retrylimit pairs an adaptive rate limiter with a small retry
// helper, for clients of upstreams that throttle or flake (YouTube search
// and metadata endpoints, mostly).
package retrylimit

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// AdaptiveLimiter wraps rate.Limiter with a limit that drifts up on
// sustained success and is cut down on failure. Safe for concurrent use.
type AdaptiveLimiter struct {
	mu        sync.Mutex
	limiter   *rate.Limiter
	minLimit  rate.Limit
	maxLimit  rate.Limit
	stepUp    rate.Limit
	stepDown  float64
	lastError time.Time
}

// NewAdaptiveLimiter starts at initial requests per second, never dropping
// below min or climbing above max. stepUp is added per success streak,
// stepDown is the multiplier applied on failure (0.5 halves the rate).
func NewAdaptiveLimiter(initial, min, max, stepUp rate.Limit, stepDown float64) *AdaptiveLimiter {
	if initial < 1 {
		initial = 1
	}
	if min < 1 {
		min = 1
	}
	return &AdaptiveLimiter{
		limiter:  rate.NewLimiter(initial, int(initial)),
		minLimit: min,
		maxLimit: max,
		stepUp:   stepUp,
		stepDown: stepDown,
	}
}

// Wait blocks until a token is available or the context ends.
func (a *AdaptiveLimiter) Wait(ctx context.Context) error {
	return a.limiter.Wait(ctx)
}

// Success nudges the rate up, but only once the last failure is ten
// seconds behind us.
func (a *AdaptiveLimiter) Success() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if time.Since(a.lastError) > 10*time.Second {
		a.setLimit(a.limiter.Limit() + a.stepUp)
	}
}

// Failure cuts the rate down.
func (a *AdaptiveLimiter) Failure() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastError = time.Now()
	a.setLimit(rate.Limit(float64(a.limiter.Limit()) * a.stepDown))
}

// CurrentLimit returns the current requests per second.
func (a *AdaptiveLimiter) CurrentLimit() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return float64(a.limiter.Limit())
}

func (a *AdaptiveLimiter) setLimit(l rate.Limit) {
	if l > a.maxLimit {
		l = a.maxLimit
	} else if l < a.minLimit {
		l = a.minLimit
	}
	if l != a.limiter.Limit() {
		a.limiter.SetLimit(l)
		burst := int(l)
		if burst < 1 {
			burst = 1
		}
		a.limiter.SetBurst(burst)
	}
}

// FatalError marks an error that must not be retried.
type FatalError struct {
	Err error
}

func (f *FatalError) Error() string { return f.Err.Error() }
func (f *FatalError) Unwrap() error { return f.Err }

// Fatal wraps err so WithRetry gives up on it immediately.
func Fatal(err error) error { return &FatalError{Err: err} }

// WithRetry runs fn up to attempts times with exponential backoff, pacing
// each attempt through the limiter and feeding outcomes back into it.
// A FatalError or context cancellation stops the retries at once.
func WithRetry(ctx context.Context, attempts int, fn func() error, lim *AdaptiveLimiter) error {
	if attempts < 1 {
		attempts = 1
	}
	delay := 500 * time.Millisecond
	const maxDelay = 10 * time.Second

	var err error
	for i := 0; i < attempts; i++ {
		if lim != nil {
			if werr := lim.Wait(ctx); werr != nil {
				return werr
			}
		}

		err = fn()
		if err == nil {
			if lim != nil {
				lim.Success()
			}
			return nil
		}
		if lim != nil {
			lim.Failure()
		}

		var fatal *FatalError
		if errors.As(err, &fatal) {
			return fatal.Err
		}
		if i == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
		if delay > maxDelay {
			delay = maxDelay
		}
	}
	return err
}
