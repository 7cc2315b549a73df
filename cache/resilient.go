package cache

import (
	"context"
	"errors"
	"time"

	"github.com/jonwraymond/sitehealth/resilience"
)

// ResilientCache runs every backend call through a resilience.Executor.
type ResilientCache struct {
	inner Cache
	exec  *resilience.Executor
}

// NewResilientCache wraps inner. A nil exec uses DefaultBackendExecutor.
func NewResilientCache(inner Cache, exec *resilience.Executor) *ResilientCache {
	if exec == nil {
		exec = DefaultBackendExecutor()
	}
	return &ResilientCache{inner: inner, exec: exec}
}

// DefaultBackendExecutor retries transient failures twice, opens a circuit
// after five consecutive failures and bounds each attempt to two seconds.
func DefaultBackendExecutor() *resilience.Executor {
	return resilience.NewExecutor(
		resilience.WithCircuitBreaker(resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
			MaxFailures:  5,
			ResetTimeout: 30 * time.Second,
		})),
		resilience.WithRetry(resilience.NewRetry(resilience.RetryConfig{
			MaxAttempts:  3,
			InitialDelay: 50 * time.Millisecond,
			MaxDelay:     time.Second,
			Jitter:       true,
			RetryIf:      isTransient,
		})),
		resilience.WithTimeout(2*time.Second),
	)
}

func isTransient(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, context.Canceled) &&
		!errors.Is(err, ErrInvalidKey) &&
		!errors.Is(err, ErrKeyTooLong)
}

// Get retrieves a value through the executor.
func (c *ResilientCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	type got struct {
		value []byte
		ok    bool
	}
	res, err := resilience.Call(ctx, c.exec, func(ctx context.Context) (got, error) {
		v, ok, err := c.inner.Get(ctx, key)
		return got{value: v, ok: ok}, err
	})
	if err != nil {
		return nil, false, wrapBackend(err)
	}
	return res.value, res.ok, nil
}

// Set stores a value through the executor.
func (c *ResilientCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := c.exec.Execute(ctx, func(ctx context.Context) error {
		return c.inner.Set(ctx, key, value, ttl)
	})
	return wrapBackend(err)
}

// Delete removes a value through the executor.
func (c *ResilientCache) Delete(ctx context.Context, key string) error {
	err := c.exec.Execute(ctx, func(ctx context.Context) error {
		return c.inner.Delete(ctx, key)
	})
	return wrapBackend(err)
}

// wrapBackend marks executor failures (open circuit, timeout) as backend
// errors so callers can test a single sentinel.
func wrapBackend(err error) error {
	if err == nil || errors.Is(err, ErrBackend) {
		return err
	}
	return errors.Join(ErrBackend, err)
}

var _ Cache = (*ResilientCache)(nil)
