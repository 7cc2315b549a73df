package resilience

import (
	"context"
	"errors"
	"time"
)

// DefaultTimeout applies when TimeoutConfig.Timeout is not positive.
const DefaultTimeout = 30 * time.Second

// TimeoutConfig configures a Timeout.
type TimeoutConfig struct {
	// Timeout is the maximum duration for the operation.
	// Default: 30 seconds
	Timeout time.Duration
}

// Timeout bounds how long an operation may run.
//
// The operation runs in its own goroutine with a derived context. When the
// deadline passes, Execute returns ErrTimeout without waiting; an operation
// that ignores its context keeps running in the background.
type Timeout struct {
	config TimeoutConfig
}

// NewTimeout creates a timeout guard.
func NewTimeout(config TimeoutConfig) *Timeout {
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	return &Timeout{config: config}
}

// Duration returns the configured timeout.
func (t *Timeout) Duration() time.Duration {
	return t.config.Timeout
}

// Execute runs op with the timeout applied.
func (t *Timeout) Execute(ctx context.Context, op func(context.Context) error) error {
	_, err := runWithin(ctx, t.config.Timeout, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	})
	return err
}

// CallWithin runs op under t and returns its value.
func CallWithin[T any](ctx context.Context, t *Timeout, op func(context.Context) (T, error)) (T, error) {
	return runWithin(ctx, t.config.Timeout, op)
}

type outcome[T any] struct {
	value T
	err   error
}

func runWithin[T any](ctx context.Context, d time.Duration, op func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	// Buffered so an abandoned operation can still deliver and exit.
	done := make(chan outcome[T], 1)
	go func() {
		v, err := op(ctx)
		done <- outcome[T]{value: v, err: err}
	}()

	select {
	case out := <-done:
		if out.err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			var zero T
			return zero, ErrTimeout
		}
		return out.value, out.err
	case <-ctx.Done():
		var zero T
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return zero, ErrTimeout
		}
		return zero, ctx.Err()
	}
}
