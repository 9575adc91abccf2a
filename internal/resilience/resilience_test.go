package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetry(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name      string
		attempts  int
		failures  int
		permanent bool
		wantCalls int
		wantErr   bool
	}{
		{"first try", 3, 0, false, 1, false},
		{"recovers", 3, 2, false, 3, false},
		{"exhausted", 3, 5, false, 3, true},
		{"permanent stops", 3, 5, true, 1, true},
		{"zero attempts runs once", 0, 0, false, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := Retry(context.Background(), tt.attempts, time.Millisecond, func() error {
				calls++
				if calls <= tt.failures {
					if tt.permanent {
						return &Permanent{Err: boom}
					}
					return boom
				}
				return nil
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v", err)
			}
			if err != nil && !errors.Is(err, boom) {
				t.Errorf("err %v does not wrap the cause", err)
			}
		})
	}
}

func TestRetryHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := Retry(ctx, 5, time.Hour, func() error {
		calls++
		cancel()
		return errors.New("fail")
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d", calls)
	}
}

func TestCircuitBreakerOpens(t *testing.T) {
	cb := NewCircuitBreaker[int](BreakerSettings{Name: "test", Threshold: 2, Timeout: time.Hour})
	fail := func() (int, error) { return 0, errors.New("down") }

	for i := 0; i < 2; i++ {
		if _, err := cb.Execute(fail); err == nil {
			t.Fatal("expected failure")
		}
	}

	_, err := cb.Execute(func() (int, error) { return 1, nil })
	if !errors.Is(err, ErrOpen) {
		t.Fatalf("err = %v, want ErrOpen", err)
	}
}

func TestCircuitBreakerIgnoresPermanent(t *testing.T) {
	cb := NewCircuitBreaker[int](BreakerSettings{Name: "test-permanent", Threshold: 1, Timeout: time.Hour})

	for i := 0; i < 3; i++ {
		_, err := cb.Execute(func() (int, error) { return 0, &Permanent{Err: errors.New("404")} })
		if errors.Is(err, ErrOpen) {
			t.Fatalf("breaker opened on client errors (iteration %d)", i)
		}
	}

	got, err := cb.Execute(func() (int, error) { return 7, nil })
	if err != nil || got != 7 {
		t.Errorf("Execute = %d, %v", got, err)
	}
}
