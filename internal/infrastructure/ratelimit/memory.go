// Package ratelimit provides the in-process fixed-window counter store used
// when no shared Redis counter is configured.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

type window struct {
	count int64
	start time.Time
}

// MemoryCounter keeps one fixed window per admission key. Increment and
// rollover happen under a single lock, so the counter update and the caller's
// comparison against the limit operate on a value no concurrent request can
// also have observed.
type MemoryCounter struct {
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
}

func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

// Incr starts a new window at count 1 when none exists or the current one has
// elapsed, otherwise increments. Counters are monotonic within a window and
// never decremented.
func (m *MemoryCounter) Incr(_ context.Context, key string, windowDur time.Duration) (int64, error) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.windows[key]
	if !ok || now.Sub(w.start) >= windowDur {
		m.windows[key] = &window{count: 1, start: now}
		m.evictExpired(now, windowDur)
		return 1, nil
	}

	w.count++
	return w.count, nil
}

// evictExpired drops windows that ended long ago. Called on rollover so the
// map cannot grow unboundedly with one-off client identities.
func (m *MemoryCounter) evictExpired(now time.Time, windowDur time.Duration) {
	cutoff := 2 * windowDur
	for key, w := range m.windows {
		if now.Sub(w.start) >= cutoff {
			delete(m.windows, key)
		}
	}
}
