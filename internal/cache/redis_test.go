package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := NewClient(mr.Addr())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestIsRateLimited(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestClient(t)

	for i := 1; i <= 4; i++ {
		limited, err := c.IsRateLimited(ctx, "10.0.0.1", 3, time.Minute)
		if err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
		if want := i > 3; limited != want {
			t.Errorf("call %d: limited = %v, want %v", i, limited, want)
		}
	}

	if ttl := mr.TTL("ratelimit:10.0.0.1"); ttl <= 0 || ttl > time.Minute {
		t.Errorf("ttl = %v", ttl)
	}

	mr.FastForward(time.Minute + time.Second)
	limited, err := c.IsRateLimited(ctx, "10.0.0.1", 3, time.Minute)
	if err != nil || limited {
		t.Errorf("after window: limited = %v, err = %v", limited, err)
	}
}

func TestIsRateLimitedKeepsWindow(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestClient(t)

	if _, err := c.IsRateLimited(ctx, "ip", 10, time.Minute); err != nil {
		t.Fatal(err)
	}
	mr.FastForward(40 * time.Second)
	if _, err := c.IsRateLimited(ctx, "ip", 10, time.Minute); err != nil {
		t.Fatal(err)
	}
	if ttl := mr.TTL("ratelimit:ip"); ttl > 20*time.Second {
		t.Errorf("later hit extended the window: ttl = %v", ttl)
	}
}

func TestIsRateLimitedRearmsCounterWithoutExpiry(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestClient(t)

	// A counter left over limit with no TTL, as after a lost EXPIRE.
	if err := mr.Set("ratelimit:stuck", "50"); err != nil {
		t.Fatal(err)
	}

	limited, err := c.IsRateLimited(ctx, "stuck", 10, time.Minute)
	if err != nil || !limited {
		t.Fatalf("limited = %v, err = %v", limited, err)
	}
	if ttl := mr.TTL("ratelimit:stuck"); ttl <= 0 {
		t.Fatalf("counter still has no expiry: ttl = %v", ttl)
	}

	mr.FastForward(time.Minute + time.Second)
	if limited, _ := c.IsRateLimited(ctx, "stuck", 10, time.Minute); limited {
		t.Error("client still limited after the window elapsed")
	}
}

func TestClientGetSet(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClient(t)

	if _, err := c.Get(ctx, "absent"); !errors.Is(err, ErrMiss) {
		t.Errorf("Get(absent) err = %v, want ErrMiss", err)
	}
	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatal(err)
	}
	b, err := c.Get(ctx, "k")
	if err != nil || string(b) != "v" {
		t.Errorf("Get(k) = %q, %v", b, err)
	}
}
