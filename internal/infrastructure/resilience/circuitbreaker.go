package resilience

import (
	"sync"
	"time"
)

// ---------------------------------------------------------------------------
// CircuitBreaker – failure counting with hysteresis
// ---------------------------------------------------------------------------

// breakerState is the breaker's lifecycle position.
type breakerState int

const (
	stateClosed breakerState = iota
	stateOpen
	stateHalfOpen
)

// CircuitBreaker opens after a run of consecutive failures and stays open for
// resetTimeout plus a hysteresis delay before permitting a single retry. The
// extra delay prevents rapid open/close flapping under bursty failures.
type CircuitBreaker struct {
	mu               sync.Mutex
	failureThreshold int
	resetTimeout     time.Duration
	hysteresis       time.Duration

	state       breakerState
	failures    int
	lastFailure time.Time
	now         func() time.Time
}

// NewCircuitBreaker builds a closed breaker.
func NewCircuitBreaker(failureThreshold int, resetTimeout, hysteresis time.Duration) *CircuitBreaker {
	return &CircuitBreaker{
		failureThreshold: failureThreshold,
		resetTimeout:     resetTimeout,
		hysteresis:       hysteresis,
		state:            stateClosed,
		now:              time.Now,
	}
}

// Allow reports whether a call may proceed. When the open period has fully
// elapsed (reset timeout plus hysteresis) the breaker moves to half-open and
// admits exactly one probe.
func (b *CircuitBreaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case stateClosed:
		return true
	case stateHalfOpen:
		// One probe is already in flight.
		return false
	default:
		if b.now().Sub(b.lastFailure) >= b.resetTimeout+b.hysteresis {
			b.state = stateHalfOpen
			return true
		}
		return false
	}
}

// RecordSuccess closes the breaker and clears the failure run.
func (b *CircuitBreaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = stateClosed
	b.failures = 0
}

// RecordFailure extends the failure run and opens the breaker once the
// threshold is reached. A failed half-open probe re-opens immediately.
func (b *CircuitBreaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failures++
	b.lastFailure = b.now()

	if b.state == stateHalfOpen || b.failures >= b.failureThreshold {
		b.state = stateOpen
	}
}

// IsOpen reports whether the breaker is currently rejecting calls.
func (b *CircuitBreaker) IsOpen() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state == stateOpen
}

// SetClock replaces the time source; tests only.
func (b *CircuitBreaker) SetClock(now func() time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.now = now
}
