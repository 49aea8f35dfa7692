// Package backoff computes retry delays for calls to external services.
package backoff

import "time"

const (
	// DefaultBase is the delay before the first retry.
	DefaultBase = 500 * time.Millisecond
	// DefaultMax caps every delay.
	DefaultMax = 5 * time.Second
)

// Exponential returns base * 2^retry capped at max.
// A negative retry returns base.
func Exponential(retry int, base, max time.Duration) time.Duration {
	if retry < 0 {
		return base
	}
	// 2^30 * base already exceeds any sensible cap
	if retry > 30 {
		return max
	}
	d := base * time.Duration(1<<retry)
	if d > max || d <= 0 {
		return max
	}
	return d
}

// Default is Exponential with DefaultBase and DefaultMax.
func Default(retry int) time.Duration {
	return Exponential(retry, DefaultBase, DefaultMax)
}
