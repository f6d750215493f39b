package httpapi

import (
	"errors"
	"sync"
	"time"

	"github.com/andrescamacho/stellar-hauler/internal/domain/shared"
)

// CircuitState represents the state of the circuit breaker
type CircuitState int

const (
	// CircuitClosed lets every request through
	CircuitClosed CircuitState = iota
	// CircuitOpen fails fast until the cooldown has passed
	CircuitOpen
	// CircuitHalfOpen lets one probe through
	CircuitHalfOpen
)

// ErrCircuitOpen is returned while the game server is considered down
var ErrCircuitOpen = errors.New("circuit breaker open: game server unavailable")

// CircuitBreaker stops the console from hammering a server that keeps failing.
// Client errors (4xx) are answers, not failures, and never trip it.
type CircuitBreaker struct {
	mu          sync.Mutex
	maxFailures int
	cooldown    time.Duration
	state       CircuitState
	failures    int
	lastFailure time.Time
	clock       shared.Clock
}

// NewCircuitBreaker creates a closed breaker. A nil clock uses the real one.
func NewCircuitBreaker(maxFailures int, cooldown time.Duration, clock shared.Clock) *CircuitBreaker {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &CircuitBreaker{
		maxFailures: maxFailures,
		cooldown:    cooldown,
		state:       CircuitClosed,
		clock:       clock,
	}
}

// Call runs fn unless the circuit is open
func (cb *CircuitBreaker) Call(fn func() error) error {
	cb.mu.Lock()
	if cb.state == CircuitOpen {
		if cb.clock.Now().Sub(cb.lastFailure) < cb.cooldown {
			cb.mu.Unlock()
			return ErrCircuitOpen
		}
		cb.state = CircuitHalfOpen
	}
	cb.mu.Unlock()

	// not under the lock: fn may sleep between retries
	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()
	if countsAsFailure(err) {
		cb.failures++
		cb.lastFailure = cb.clock.Now()
		if cb.state == CircuitHalfOpen || cb.failures >= cb.maxFailures {
			cb.state = CircuitOpen
		}
		return err
	}

	cb.failures = 0
	cb.state = CircuitClosed
	return err
}

func countsAsFailure(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status >= 500
	}
	return true
}

// State returns the current state
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Failures returns the consecutive failure count
func (cb *CircuitBreaker) Failures() int {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.failures
}
