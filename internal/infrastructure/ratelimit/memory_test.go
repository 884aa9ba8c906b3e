package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestMemoryCounter_IncrementsWithinWindow(t *testing.T) {
	m := NewMemoryCounter()
	ctx := context.Background()

	for want := int64(1); want <= 5; want++ {
		got, err := m.Incr(ctx, "rl:r:client", time.Minute)
		if err != nil {
			t.Fatalf("incr: %v", err)
		}
		if got != want {
			t.Fatalf("expected count %d, got %d", want, got)
		}
	}
}

func TestMemoryCounter_ResetsAtWindowBoundary(t *testing.T) {
	m := NewMemoryCounter()
	now := time.Unix(1000, 0)
	m.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := m.Incr(ctx, "k", time.Minute); err != nil {
			t.Fatalf("incr: %v", err)
		}
	}

	// Still inside the window.
	now = now.Add(59 * time.Second)
	if n, _ := m.Incr(ctx, "k", time.Minute); n != 4 {
		t.Fatalf("expected 4 inside window, got %d", n)
	}

	// Window elapsed: a fresh window starts at 1.
	now = now.Add(2 * time.Second)
	if n, _ := m.Incr(ctx, "k", time.Minute); n != 1 {
		t.Fatalf("expected reset to 1 after window, got %d", n)
	}
}

func TestMemoryCounter_IndependentKeys(t *testing.T) {
	m := NewMemoryCounter()
	ctx := context.Background()

	if _, err := m.Incr(ctx, "rl:reports:a", time.Minute); err != nil {
		t.Fatalf("incr: %v", err)
	}
	if n, _ := m.Incr(ctx, "rl:reports:b", time.Minute); n != 1 {
		t.Fatalf("keys must not share windows, got %d", n)
	}
	if n, _ := m.Incr(ctx, "rl:bans:a", time.Minute); n != 1 {
		t.Fatalf("routes must not share windows, got %d", n)
	}
}

func TestMemoryCounter_ConcurrentIncrementsAreExact(t *testing.T) {
	m := NewMemoryCounter()
	ctx := context.Background()

	const goroutines = 50
	const perGoroutine = 20

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				if _, err := m.Incr(ctx, "shared", time.Hour); err != nil {
					t.Errorf("incr: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	// No increment may be lost: two concurrent requests must never observe
	// the same pre-increment count.
	n, err := m.Incr(ctx, "shared", time.Hour)
	if err != nil {
		t.Fatalf("incr: %v", err)
	}
	if n != goroutines*perGoroutine+1 {
		t.Fatalf("expected %d, got %d", goroutines*perGoroutine+1, n)
	}
}

func TestMemoryCounter_EvictsDeadWindows(t *testing.T) {
	m := NewMemoryCounter()
	now := time.Unix(1000, 0)
	m.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		key := string(rune('a' + i))
		if _, err := m.Incr(ctx, key, time.Minute); err != nil {
			t.Fatalf("incr: %v", err)
		}
	}

	// Far past every window; the next rollover sweeps the dead entries.
	now = now.Add(10 * time.Minute)
	if _, err := m.Incr(ctx, "a", time.Minute); err != nil {
		t.Fatalf("incr: %v", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.windows) != 1 {
		t.Fatalf("expected stale windows evicted, %d remain", len(m.windows))
	}
}
