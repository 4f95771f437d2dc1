package generation

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetrySucceedsOnThirdAttempt(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 3, Delay: time.Millisecond, Retryable: func(error) bool { return true }}

	calls := 0
	err := policy.Do(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
}

func TestRetryExhaustionReturnsLastError(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 3, Delay: time.Millisecond, Retryable: func(error) bool { return true }}

	calls := 0
	wantErr := errors.New("still down")
	err := policy.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want last error", err)
	}
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
}

func TestRetryNonRetryableStopsImmediately(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 3, Delay: time.Millisecond, Retryable: func(err error) bool { return false }}

	calls := 0
	_ = policy.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return errors.New("fatal")
	})
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestRetryContextCancelledWhileWaiting(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 3, Delay: time.Hour, Retryable: func(error) bool { return true }}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := policy.Do(ctx, func(ctx context.Context) error {
		return errors.New("transient")
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
