// Package resilience bounds and protects calls that leave the process.
//
// Health checks probe databases, caches and remote hosts; any of them can
// hang or flap. The package offers three composable guards:
//
//   - Timeout bounds a single call. Call runs a value-returning operation
//     under a Timeout and abandons it when the deadline passes.
//   - Retry re-runs failed calls with constant, linear or exponential backoff.
//   - CircuitBreaker stops calling a backend after repeated failures and
//     probes it again after a cool-down.
//
// Executor composes them. From the outside in: circuit breaker, retry,
// timeout, so every attempt gets its own deadline and an open circuit
// short-circuits the retries:
//
//	exec := resilience.NewExecutor(
//	    resilience.WithCircuitBreaker(resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{})),
//	    resilience.WithRetry(resilience.NewRetry(resilience.RetryConfig{MaxAttempts: 3})),
//	    resilience.WithTimeout(2*time.Second),
//	)
//
//	err := exec.Execute(ctx, func(ctx context.Context) error {
//	    return client.Ping(ctx).Err()
//	})
package resilience
