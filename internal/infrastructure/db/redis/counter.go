package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CounterStore implements fixed-window counting on Redis. Each key is
// INCRed and, on first hit, given a TTL equal to the window; the count
// resets when the key expires.
type CounterStore struct {
	client *redis.Client
}

func NewCounterStore(client *redis.Client) *CounterStore {
	return &CounterStore{client: client}
}

// Incr increments the counter for key and returns the new count. The window
// starts at the first increment; INCR and EXPIRE run in one pipeline so a
// crash between them cannot leave an immortal key.
func (s *CounterStore) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("counter incr %q: %w", key, err)
	}
	return incr.Val(), nil
}
