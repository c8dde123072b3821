package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const statsKey = "jobportal:stats:candidates"

// StatsCache keeps the dashboard candidate-status counts out of the DB hot
// path. Misses are not errors; callers fall through to the repo.
type StatsCache struct {
	client *Client
	ttl    time.Duration
}

func NewStatsCache(client *Client, ttl time.Duration) *StatsCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}

	return &StatsCache{client: client, ttl: ttl}
}

func (s *StatsCache) Get(ctx context.Context) (map[string]int, bool) {
	if s == nil || s.client == nil {
		return nil, false
	}

	raw, err := s.client.redisdb.Get(ctx, statsKey).Bytes()

	if err != nil {
		if !errors.Is(err, redis.Nil) {
			// treat transport errors as a miss; stats are best-effort
			return nil, false
		}
		return nil, false
	}

	var counts map[string]int

	if err := json.Unmarshal(raw, &counts); err != nil {
		return nil, false
	}

	return counts, true
}

func (s *StatsCache) Set(ctx context.Context, counts map[string]int) {
	if s == nil || s.client == nil {
		return
	}

	raw, err := json.Marshal(counts)

	if err != nil {
		return
	}

	_ = s.client.redisdb.Set(ctx, statsKey, raw, s.ttl).Err()
}

// Invalidate drops the cached counts after a pipeline mutation.
func (s *StatsCache) Invalidate(ctx context.Context) {
	if s == nil || s.client == nil {
		return
	}

	_ = s.client.redisdb.Del(ctx, statsKey).Err()
}
