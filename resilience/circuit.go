package resilience

import (
	"context"
	"sync"
	"time"
)

// CircuitState is the state of a circuit breaker.
type CircuitState int

const (
	// StateClosed lets calls through and counts consecutive failures.
	StateClosed CircuitState = iota
	// StateOpen rejects calls until ResetTimeout has elapsed.
	StateOpen
	// StateHalfOpen lets a limited number of probes through.
	StateHalfOpen
)

// String returns the state name.
func (s CircuitState) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreakerConfig configures a CircuitBreaker.
type CircuitBreakerConfig struct {
	// MaxFailures is the consecutive failure count that opens the circuit.
	// Default: 5
	MaxFailures int

	// ResetTimeout is how long the circuit stays open. Default: 30s
	ResetTimeout time.Duration

	// HalfOpenMaxCalls bounds concurrent probes while half-open. Default: 1
	HalfOpenMaxCalls int

	// OnStateChange is called after every transition, outside the lock.
	OnStateChange func(from, to CircuitState)
}

// CircuitBreaker fails fast against a backend that keeps failing.
type CircuitBreaker struct {
	config CircuitBreakerConfig

	mu       sync.Mutex
	state    CircuitState
	failures int
	openedAt time.Time
	inFlight int
	now      func() time.Time
}

// NewCircuitBreaker creates a closed circuit breaker.
func NewCircuitBreaker(config CircuitBreakerConfig) *CircuitBreaker {
	if config.MaxFailures <= 0 {
		config.MaxFailures = 5
	}
	if config.ResetTimeout <= 0 {
		config.ResetTimeout = 30 * time.Second
	}
	if config.HalfOpenMaxCalls <= 0 {
		config.HalfOpenMaxCalls = 1
	}
	return &CircuitBreaker{config: config, now: time.Now}
}

// State returns the current state, moving an expired open circuit to
// half-open.
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	notify := cb.expireLocked()
	state := cb.state
	cb.mu.Unlock()
	notify()
	return state
}

// Reset closes the circuit and clears the failure count.
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	notify := cb.transitionLocked(StateClosed)
	cb.mu.Unlock()
	notify()
}

// Execute runs op if the circuit admits it and records the outcome.
func (cb *CircuitBreaker) Execute(ctx context.Context, op func(context.Context) error) error {
	if err := cb.admit(); err != nil {
		return err
	}
	err := op(ctx)
	cb.record(err)
	return err
}

func (cb *CircuitBreaker) admit() error {
	cb.mu.Lock()
	notify := cb.expireLocked()
	var err error
	switch cb.state {
	case StateOpen:
		err = ErrCircuitOpen
	case StateHalfOpen:
		if cb.inFlight >= cb.config.HalfOpenMaxCalls {
			err = ErrCircuitOpen
		} else {
			cb.inFlight++
		}
	}
	cb.mu.Unlock()
	notify()
	return err
}

func (cb *CircuitBreaker) record(err error) {
	cb.mu.Lock()
	notify := func() {}
	switch cb.state {
	case StateHalfOpen:
		cb.inFlight--
		if err != nil {
			notify = cb.transitionLocked(StateOpen)
		} else {
			notify = cb.transitionLocked(StateClosed)
		}
	case StateClosed:
		if err == nil {
			cb.failures = 0
			break
		}
		cb.failures++
		if cb.failures >= cb.config.MaxFailures {
			notify = cb.transitionLocked(StateOpen)
		}
	}
	cb.mu.Unlock()
	notify()
}

func (cb *CircuitBreaker) expireLocked() func() {
	if cb.state == StateOpen && cb.now().Sub(cb.openedAt) >= cb.config.ResetTimeout {
		return cb.transitionLocked(StateHalfOpen)
	}
	return func() {}
}

// transitionLocked changes state and returns the callback to run once the
// lock is released.
func (cb *CircuitBreaker) transitionLocked(to CircuitState) func() {
	from := cb.state
	cb.state = to
	cb.failures = 0
	cb.inFlight = 0
	if to == StateOpen {
		cb.openedAt = cb.now()
	}
	if from == to || cb.config.OnStateChange == nil {
		return func() {}
	}
	hook := cb.config.OnStateChange
	return func() { hook(from, to) }
}
