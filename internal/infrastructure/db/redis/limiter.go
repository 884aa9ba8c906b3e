package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateCounter implements fixed-window admission counters on Redis so the
// window state is shared across gateway replicas.
// Key format: rl:<route>:<client_identity>:<window_start_unix>
type RateCounter struct {
	client *redis.Client
}

// NewRateCounter creates a RateCounter wrapping the given Redis client.
func NewRateCounter(client *redis.Client) *RateCounter {
	return &RateCounter{client: client}
}

// Incr bumps the counter for key within the current window and returns the
// post-increment count. INCR is atomic on the server, so two concurrent
// requests can never observe the same count. The key carries its window start,
// making rollover automatic; the TTL only reclaims dead windows.
func (r *RateCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	windowKey := r.key(key, window)

	n, err := r.client.Incr(ctx, windowKey).Result()
	if err != nil {
		return 0, fmt.Errorf("rate incr: %w", err)
	}
	if n == 1 {
		// First hit of this window; expire a little past the boundary.
		r.client.Expire(ctx, windowKey, window+time.Second)
	}
	return n, nil
}

func (r *RateCounter) key(key string, window time.Duration) string {
	secs := int64(window.Seconds())
	if secs <= 0 {
		secs = 1
	}
	windowStart := time.Now().Unix() / secs * secs
	return fmt.Sprintf("%s:%d", key, windowStart)
}
