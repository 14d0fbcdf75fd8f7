package services

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisLimiterStore keeps fixed-window counters in Redis so multiple
// instances share one quota. Window expiry rides on key TTLs, which makes
// Sweep a no-op.
type redisLimiterStore struct {
	client *redis.Client
	prefix string
}

func newRedisLimiterStore(client *redis.Client, prefix string) *redisLimiterStore {
	return &redisLimiterStore{client: client, prefix: prefix}
}

func (s *redisLimiterStore) key(key string) string {
	return s.prefix + ":" + key
}

func (s *redisLimiterStore) Hit(key string, window time.Duration, now time.Time) (int, time.Time, error) {
	ctx := context.Background()
	k := s.key(key)

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	ttl := pipe.PTTL(ctx, k)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, time.Time{}, err
	}

	count := int(incr.Val())
	remaining := ttl.Val()

	// A fresh key (or one whose TTL was lost) gets the full window.
	if remaining < 0 {
		remaining = window
		if err := s.client.PExpire(ctx, k, window).Err(); err != nil {
			return 0, time.Time{}, err
		}
	}

	return count, now.Add(remaining), nil
}

func (s *redisLimiterStore) Peek(key string, now time.Time) (int, time.Time, bool, error) {
	ctx := context.Background()
	k := s.key(key)

	pipe := s.client.TxPipeline()
	get := pipe.Get(ctx, k)
	ttl := pipe.PTTL(ctx, k)
	if _, err := pipe.Exec(ctx); err != nil {
		if err == redis.Nil {
			return 0, time.Time{}, false, nil
		}
		return 0, time.Time{}, false, err
	}

	count, err := get.Int()
	if err != nil {
		return 0, time.Time{}, false, err
	}

	remaining := ttl.Val()
	if remaining < 0 {
		return 0, time.Time{}, false, nil
	}

	return count, now.Add(remaining), true, nil
}

func (s *redisLimiterStore) Remove(key string) error {
	return s.client.Del(context.Background(), s.key(key)).Err()
}

func (s *redisLimiterStore) Sweep(now time.Time) {}
