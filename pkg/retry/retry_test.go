package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastPolicy(retries int) Policy {
	return Policy{
		Retries:       retries,
		BaseDelay:     time.Millisecond,
		MaxDelay:      5 * time.Millisecond,
		BackoffFactor: 2,
	}
}

func TestDoSucceedsFirstAttempt(t *testing.T) {
	calls := 0
	got, err := Do(context.Background(), fastPolicy(3), func() (string, error) {
		calls++
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ok" {
		t.Errorf("result = %q, want ok", got)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestDoRetriesUntilSuccess(t *testing.T) {
	calls := 0
	got, err := Do(context.Background(), fastPolicy(5), func() (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("transient")
		}
		return "recovered", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "recovered" {
		t.Errorf("result = %q, want recovered", got)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestDoExhaustsAndReturnsLastError(t *testing.T) {
	wantErr := errors.New("still broken")
	calls := 0
	_, err := Do(context.Background(), fastPolicy(4), func() (string, error) {
		calls++
		if calls < 4 {
			return "", errors.New("earlier failure")
		}
		return "", wantErr
	})
	if calls != 4 {
		t.Errorf("calls = %d, want 4", calls)
	}
	if !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want last error %v", err, wantErr)
	}
}

func TestDoZeroRetriesStillRunsOnce(t *testing.T) {
	calls := 0
	_, _ = Do(context.Background(), Policy{}, func() (string, error) {
		calls++
		return "", errors.New("fail")
	})
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestDoContextCancelsBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	p := Policy{Retries: 5, BaseDelay: time.Hour, BackoffFactor: 2}

	done := make(chan struct{})
	var err error
	go func() {
		_, err = Do(ctx, p, func() (string, error) {
			calls++
			return "", errors.New("fail")
		})
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Do did not return after context cancellation")
	}

	if calls != 1 {
		t.Errorf("calls = %d, want 1 before cancellation", calls)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
