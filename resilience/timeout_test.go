package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNewTimeout_Default(t *testing.T) {
	if got := NewTimeout(TimeoutConfig{}).Duration(); got != DefaultTimeout {
		t.Errorf("Duration() = %v, want %v", got, DefaultTimeout)
	}
}

func TestTimeout_Execute(t *testing.T) {
	tests := []struct {
		name    string
		op      func(context.Context) error
		wantErr error
	}{
		{name: "completes", op: succeeding},
		{name: "propagates error", op: failing, wantErr: errBackend},
		{
			name: "exceeds deadline",
			op: func(ctx context.Context) error {
				<-ctx.Done()
				return ctx.Err()
			},
			wantErr: ErrTimeout,
		},
		{
			name: "ignores context",
			op: func(ctx context.Context) error {
				time.Sleep(200 * time.Millisecond)
				return nil
			},
			wantErr: ErrTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			to := NewTimeout(TimeoutConfig{Timeout: 20 * time.Millisecond})
			err := to.Execute(context.Background(), tt.op)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Execute() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTimeout_ParentCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	to := NewTimeout(TimeoutConfig{Timeout: time.Second})
	err := to.Execute(ctx, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("Execute() error = %v, want context.Canceled", err)
	}
}

func TestCallWithin(t *testing.T) {
	to := NewTimeout(TimeoutConfig{Timeout: 50 * time.Millisecond})

	got, err := CallWithin(context.Background(), to, func(ctx context.Context) (string, error) {
		return "pong", nil
	})
	if err != nil || got != "pong" {
		t.Errorf("CallWithin() = %q, %v; want pong, nil", got, err)
	}

	got, err = CallWithin(context.Background(), to, func(ctx context.Context) (string, error) {
		<-ctx.Done()
		return "late", nil
	})
	if !errors.Is(err, ErrTimeout) || got != "" {
		t.Errorf("CallWithin() = %q, %v; want \"\", ErrTimeout", got, err)
	}
}
