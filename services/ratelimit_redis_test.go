package services

import (
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedisStore(t *testing.T) (*redisLimiterStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return newRedisLimiterStore(client, "rl"), mr
}

func TestRedisStoreHitIncrements(t *testing.T) {
	store, _ := newTestRedisStore(t)
	now := time.Now()

	for want := 1; want <= 3; want++ {
		count, resetAt, err := store.Hit("k", time.Minute, now)
		if err != nil {
			t.Fatalf("Hit error: %v", err)
		}
		if count != want {
			t.Fatalf("expected count=%d, got %d", want, count)
		}
		if resetAt.Before(now) {
			t.Fatalf("reset time in the past: %v", resetAt)
		}
	}
}

func TestRedisStoreWindowExpiry(t *testing.T) {
	store, mr := newTestRedisStore(t)
	now := time.Now()

	if _, _, err := store.Hit("k", time.Minute, now); err != nil {
		t.Fatalf("Hit error: %v", err)
	}
	if _, _, err := store.Hit("k", time.Minute, now); err != nil {
		t.Fatalf("Hit error: %v", err)
	}

	mr.FastForward(61 * time.Second)

	count, _, err := store.Hit("k", time.Minute, now)
	if err != nil {
		t.Fatalf("Hit error: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected fresh window count=1 after TTL expiry, got %d", count)
	}
}

func TestRedisStorePeek(t *testing.T) {
	store, _ := newTestRedisStore(t)
	now := time.Now()

	if _, _, ok, err := store.Peek("missing", now); err != nil || ok {
		t.Fatalf("expected not found for missing key, ok=%v err=%v", ok, err)
	}

	if _, _, err := store.Hit("k", time.Minute, now); err != nil {
		t.Fatalf("Hit error: %v", err)
	}

	count, resetAt, ok, err := store.Peek("k", now)
	if err != nil || !ok {
		t.Fatalf("Peek error: ok=%v err=%v", ok, err)
	}
	if count != 1 {
		t.Fatalf("expected count=1, got %d", count)
	}
	if !resetAt.After(now) {
		t.Fatalf("expected future reset time, got %v", resetAt)
	}

	// Peek must not consume.
	if count, _, _, _ := store.Peek("k", now); count != 1 {
		t.Fatalf("peek mutated the counter: %d", count)
	}
}

func TestRedisStoreRemove(t *testing.T) {
	store, _ := newTestRedisStore(t)
	now := time.Now()

	if _, _, err := store.Hit("k", time.Minute, now); err != nil {
		t.Fatalf("Hit error: %v", err)
	}
	if err := store.Remove("k"); err != nil {
		t.Fatalf("Remove error: %v", err)
	}

	if _, _, ok, _ := store.Peek("k", now); ok {
		t.Fatalf("expected key gone after Remove")
	}

	count, _, err := store.Hit("k", time.Minute, now)
	if err != nil || count != 1 {
		t.Fatalf("expected fresh key after Remove, count=%d err=%v", count, err)
	}
}
