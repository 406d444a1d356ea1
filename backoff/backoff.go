// Package backoff provides pluggable delay strategies for status
// polling and transient-error retries against the remote scheduling
// service. All strategies are safe for concurrent use (they are
// stateless).
package backoff

import (
	"math"
	"math/rand"
	"time"
)

// Strategy computes the delay before poll or retry attempt n.
type Strategy interface {
	// Delay returns how long to wait before attempt n (1-indexed).
	// Attempt 1 is the first repeat after the initial call.
	Delay(attempt int) time.Duration
}

// Constant always returns the same delay regardless of attempt number.
// A zero interval disables waiting entirely, which is what tests want.
type Constant struct {
	Interval time.Duration
}

// NewConstant creates a constant backoff strategy.
func NewConstant(interval time.Duration) *Constant {
	return &Constant{Interval: interval}
}

// Delay returns the fixed interval.
func (c *Constant) Delay(_ int) time.Duration {
	return c.Interval
}

// Exponential doubles the delay each attempt.
// Delay = min(Base * 2^(attempt-1), Cap).
type Exponential struct {
	Base time.Duration
	Cap  time.Duration
}

// NewExponential creates an exponential backoff strategy.
func NewExponential(base, cap time.Duration) *Exponential {
	return &Exponential{Base: base, Cap: cap}
}

// Delay returns Base * 2^(attempt-1), capped at Cap. The cap is
// applied in the float domain: converting to int64 first saturates
// negative once the doubling passes MaxInt64, around attempt 33 with a
// seconds-scale base.
func (e *Exponential) Delay(attempt int) time.Duration {
	d := float64(e.Base) * math.Pow(2, float64(attempt-1))
	if e.Cap > 0 && d > float64(e.Cap) {
		return e.Cap
	}
	if d > math.MaxInt64 {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(d)
}

// ExponentialWithJitter applies full jitter to an exponential base.
// Delay = random value in [0, min(Base * 2^(attempt-1), Cap)].
// Jitter desynchronizes the poll cycles of concurrent invocations so
// they do not hit a throttling service in lockstep.
type ExponentialWithJitter struct {
	Base time.Duration
	Cap  time.Duration
}

// NewExponentialWithJitter creates an exponential backoff with full jitter.
func NewExponentialWithJitter(base, cap time.Duration) *ExponentialWithJitter {
	return &ExponentialWithJitter{Base: base, Cap: cap}
}

// Delay returns a random duration in [0, min(Base * 2^(attempt-1), Cap)].
func (e *ExponentialWithJitter) Delay(attempt int) time.Duration {
	d := float64(e.Base) * math.Pow(2, float64(attempt-1))
	if e.Cap > 0 && d > float64(e.Cap) {
		d = float64(e.Cap)
	}
	if d > math.MaxInt64 {
		d = math.MaxInt64
	}
	return time.Duration(rand.Float64() * d) //nolint:gosec // jitter intentionally uses non-crypto rand
}

// DefaultPolling returns the delay strategy used between status polls
// when none is configured: exponential with full jitter, 5s base,
// capped at 10m. Together with the default attempt budget this covers
// roughly 48 hours of polling.
func DefaultPolling() Strategy {
	return NewExponentialWithJitter(5*time.Second, 10*time.Minute)
}

// DefaultStatusRetry returns the delay strategy used between retries of
// a single describe call that failed transiently: exponential with full
// jitter, 1s base, capped at 10s. These retries recover from throttling
// and timeouts within one poll attempt, so the cap stays small.
func DefaultStatusRetry() Strategy {
	return NewExponentialWithJitter(time.Second, 10*time.Second)
}
