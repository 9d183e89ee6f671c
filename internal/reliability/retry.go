// Package reliability retries operations against remote backends.
package reliability

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Policy decides whether and when a failed operation is tried again.
type Policy struct {
	// MaxAttempts is the maximum number of attempts (including the initial attempt)
	MaxAttempts int
	// InitialDelay is the delay before the first retry
	InitialDelay time.Duration
	// MaxDelay is the maximum delay between retries
	MaxDelay time.Duration
	// Retryable reports whether err is worth another attempt. Nil retries
	// everything except context cancellation.
	Retryable func(err error) bool
}

// DefaultPolicy returns a default retry policy
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:  3,
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     5 * time.Second,
	}
}

func (p Policy) withDefaults() Policy {
	d := DefaultPolicy()
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = d.MaxAttempts
	}
	if p.InitialDelay <= 0 {
		p.InitialDelay = d.InitialDelay
	}
	if p.MaxDelay < p.InitialDelay {
		p.MaxDelay = p.InitialDelay
	}
	return p
}

func (p Policy) retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if p.Retryable == nil {
		return true
	}
	return p.Retryable(err)
}

// Executor runs operations under a Policy. It is safe for concurrent use.
type Executor struct {
	policy  Policy
	onRetry func(attempt int, delay time.Duration, err error)
}

// NewExecutor creates a new retry executor with the given policy
func NewExecutor(policy Policy) *Executor {
	return &Executor{
		policy:  policy.withDefaults(),
		onRetry: func(int, time.Duration, error) {},
	}
}

// OnRetry sets a callback function to be called before each retry
func (r *Executor) OnRetry(callback func(attempt int, delay time.Duration, err error)) {
	if callback != nil {
		r.onRetry = callback
	}
}

// Policy returns the effective policy.
func (r *Executor) Policy() Policy { return r.policy }

// Execute runs operation until it succeeds, fails with an error the policy does
// not retry, runs out of attempts or ctx is done. The last error is returned.
func (r *Executor) Execute(ctx context.Context, operation func(context.Context) error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.policy.InitialDelay
	b.MaxInterval = r.policy.MaxDelay
	b.MaxElapsedTime = 0
	b.Reset()

	var lastErr error
	for attempt := 0; attempt < r.policy.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			if lastErr != nil {
				return lastErr
			}
			return err
		}

		err := operation(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if !r.policy.retryable(err) || attempt == r.policy.MaxAttempts-1 {
			break
		}

		delay := b.NextBackOff()
		r.onRetry(attempt+1, delay, err)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return lastErr
		case <-timer.C:
		}
	}
	return lastErr
}
