package ports

import (
	"context"
	"time"
)

// RateCounter is a fixed-window counter store shared by all in-flight
// requests. Incr atomically bumps the counter for key within the current
// window and returns the post-increment count; the first hit of a window
// starts it at 1.
type RateCounter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}
