package resilience

import (
	"sync"
	"time"
)

// ---------------------------------------------------------------------------
// RateLimiter – fixed window with timestamp pruning
// ---------------------------------------------------------------------------

// RateLimiter caps the number of calls inside a fixed sliding window. The
// check-and-record pair is atomic under one mutex so concurrent scoring
// calls cannot double-count a window slot.
type RateLimiter struct {
	mu       sync.Mutex
	window   time.Duration
	maxCalls int
	calls    []time.Time
	now      func() time.Time
}

// NewRateLimiter builds a limiter allowing maxCalls per window.
func NewRateLimiter(maxCalls int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		window:   window,
		maxCalls: maxCalls,
		now:      time.Now,
	}
}

// Allow prunes timestamps outside the window and, when capacity remains,
// records this attempt and returns true. A false return consumes nothing.
func (r *RateLimiter) Allow() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	cutoff := now.Add(-r.window)

	kept := r.calls[:0]
	for _, t := range r.calls {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	r.calls = kept

	if len(r.calls) >= r.maxCalls {
		return false
	}
	r.calls = append(r.calls, now)
	return true
}

// SetClock replaces the time source; tests only.
func (r *RateLimiter) SetClock(now func() time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.now = now
}
