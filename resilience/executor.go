package resilience

import (
	"context"
	"sync"
	"time"
)

// Executor composes a circuit breaker, a retry and a timeout. Any of them
// may be absent.
type Executor struct {
	circuit *CircuitBreaker
	retry   *Retry
	timeout *Timeout
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// NewExecutor creates an executor from opts.
func NewExecutor(opts ...ExecutorOption) *Executor {
	e := &Executor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WithCircuitBreaker adds a circuit breaker.
func WithCircuitBreaker(cb *CircuitBreaker) ExecutorOption {
	return func(e *Executor) { e.circuit = cb }
}

// WithRetry adds a retry.
func WithRetry(r *Retry) ExecutorOption {
	return func(e *Executor) { e.retry = r }
}

// WithTimeout bounds every attempt to d.
func WithTimeout(d time.Duration) ExecutorOption {
	return func(e *Executor) { e.timeout = NewTimeout(TimeoutConfig{Timeout: d}) }
}

// WithTimeoutGuard uses an existing Timeout.
func WithTimeoutGuard(t *Timeout) ExecutorOption {
	return func(e *Executor) { e.timeout = t }
}

// CircuitBreaker returns the configured breaker, or nil.
func (e *Executor) CircuitBreaker() *CircuitBreaker {
	return e.circuit
}

// Execute runs op through circuit breaker, retry and timeout, in that order
// from the outside in.
func (e *Executor) Execute(ctx context.Context, op func(context.Context) error) error {
	attempt := op
	if e.timeout != nil {
		attempt = func(ctx context.Context) error { return e.timeout.Execute(ctx, op) }
	}

	retried := attempt
	if e.retry != nil {
		retried = func(ctx context.Context) error { return e.retry.Execute(ctx, attempt) }
	}

	if e.circuit != nil {
		return e.circuit.Execute(ctx, retried)
	}
	return retried(ctx)
}

// Call runs op through e and returns the value of the successful attempt.
// A nil executor runs op directly. Values produced by abandoned attempts
// are discarded.
func Call[T any](ctx context.Context, e *Executor, op func(context.Context) (T, error)) (T, error) {
	if e == nil {
		return op(ctx)
	}

	var (
		mu     sync.Mutex
		result T
		closed bool
	)
	err := e.Execute(ctx, func(ctx context.Context) error {
		v, err := op(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		if !closed && ctx.Err() == nil {
			result = v
		}
		mu.Unlock()
		return nil
	})

	mu.Lock()
	defer mu.Unlock()
	closed = true
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}
