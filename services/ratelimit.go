package services

import (
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/autolane-tms/autolane_api/dto"
	"github.com/autolane-tms/autolane_api/shared"
)

// limiterStore holds fixed-window counters. The in-memory implementation is
// the default; the Redis one is the scale-out path when counters must be
// shared across instances.
type limiterStore interface {
	// Hit creates the window on first sight (or after expiry) and otherwise
	// increments it. Returns the post-increment count and the window reset time.
	Hit(key string, window time.Duration, now time.Time) (int, time.Time, error)
	// Peek reads the current window without mutating it. ok is false when the
	// key has no open window.
	Peek(key string, now time.Time) (int, time.Time, bool, error)
	Remove(key string) error
	Sweep(now time.Time)
}

type RateLimitService struct {
	context.DefaultService

	store   limiterStore
	configs map[string]dto.RateLimitConfig
	mutex   sync.RWMutex

	now           func() time.Time
	sweepInterval time.Duration
	closed        chan struct{}

	redisSvc  *RedisService
	storeKind string
}

const RATE_LIMIT_SVC = "rate_limit_svc"

func (svc RateLimitService) Id() string {
	return RATE_LIMIT_SVC
}

func (svc *RateLimitService) Configure(ctx *context.Context) error {
	svc.now = time.Now
	svc.sweepInterval = 5 * time.Minute
	svc.closed = make(chan struct{})
	svc.storeKind = envOr("RATE_LIMIT_STORE", "memory")
	svc.initDefaultConfigs()
	return svc.DefaultService.Configure(ctx)
}

func (svc *RateLimitService) Start() error {
	if svc.storeKind == "redis" {
		svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
		svc.store = newRedisLimiterStore(svc.redisSvc.GetClient(), "rl")
		log.Info("Rate limiter using shared redis store")
	} else {
		svc.store = newMemoryLimiterStore()
	}

	go svc.startSweepJob()
	return nil
}

func (svc *RateLimitService) Shutdown() {
	close(svc.closed)
}

// ==================== CONFIGURATION ====================

func (svc *RateLimitService) initDefaultConfigs() {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	svc.configs = map[string]dto.RateLimitConfig{
		"login":          {Limit: 5, Window: 5 * time.Minute},
		"password_reset": {Limit: 3, Window: time.Hour},
		"api_calculator": {Limit: 50, Window: time.Minute},
		"api_general":    {Limit: 100, Window: time.Minute},
	}
}

func (svc *RateLimitService) Config(endpointType string) (dto.RateLimitConfig, bool) {
	svc.mutex.RLock()
	defer svc.mutex.RUnlock()

	config, exists := svc.configs[endpointType]
	return config, exists
}

// ==================== CORE FIXED-WINDOW LOGIC ====================

// Check consumes one unit from the key's window. It never fails: a store
// error allows the request rather than blocking users on system issues.
func (svc *RateLimitService) Check(key string, config dto.RateLimitConfig) dto.RateLimitResult {
	now := svc.now()

	count, resetAt, err := svc.store.Hit(key, config.Window, now)
	if err != nil {
		log.Errorf("Rate limit store error for %s: %v", key, err)
		return dto.RateLimitResult{Allowed: true, Remaining: config.Limit - 1, ResetAt: now.Add(config.Window)}
	}

	if count > config.Limit {
		return dto.RateLimitResult{
			Allowed:           false,
			Remaining:         0,
			ResetAt:           resetAt,
			RetryAfterSeconds: retryAfterSeconds(resetAt, now),
		}
	}

	return dto.RateLimitResult{
		Allowed:   true,
		Remaining: config.Limit - count,
		ResetAt:   resetAt,
	}
}

// Status is the read-only variant used for UI display of remaining attempts.
func (svc *RateLimitService) Status(key string, config dto.RateLimitConfig) dto.RateLimitResult {
	now := svc.now()

	count, resetAt, ok, err := svc.store.Peek(key, now)
	if err != nil {
		log.Errorf("Rate limit peek error for %s: %v", key, err)
		ok = false
	}
	if !ok {
		return dto.RateLimitResult{Allowed: true, Remaining: config.Limit, ResetAt: now.Add(config.Window)}
	}

	if count >= config.Limit {
		return dto.RateLimitResult{
			Allowed:           false,
			Remaining:         0,
			ResetAt:           resetAt,
			RetryAfterSeconds: retryAfterSeconds(resetAt, now),
		}
	}

	return dto.RateLimitResult{
		Allowed:   true,
		Remaining: config.Limit - count,
		ResetAt:   resetAt,
	}
}

// Reset deletes the key's window entirely; the next Check behaves like a
// never-seen key. Used after a successful login.
func (svc *RateLimitService) Reset(key string) {
	if err := svc.store.Remove(key); err != nil {
		log.Errorf("Rate limit reset error for %s: %v", key, err)
	}
}

func retryAfterSeconds(resetAt, now time.Time) int {
	secs := int(math.Ceil(resetAt.Sub(now).Seconds()))
	if secs < 1 {
		secs = 1
	}
	return secs
}

// ==================== MIDDLEWARE ====================

// RateLimit applies the named configuration keyed by client IP and attaches
// the standard rate-limit headers.
func (svc *RateLimitService) RateLimit(endpointType string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		config, exists := svc.Config(endpointType)
		if !exists {
			return c.Next()
		}

		key := endpointType + ":" + ClientIP(c)
		result := svc.Check(key, config)

		svc.addRateLimitHeaders(c, config, result)

		if !result.Allowed {
			recordRateLimitDenied(endpointType)
			return svc.handleRateLimitExceeded(c, result)
		}

		return c.Next()
	}
}

func (svc *RateLimitService) addRateLimitHeaders(c *fiber.Ctx, config dto.RateLimitConfig, result dto.RateLimitResult) {
	c.Set("X-RateLimit-Limit", strconv.Itoa(config.Limit))
	c.Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	c.Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
}

func (svc *RateLimitService) handleRateLimitExceeded(c *fiber.Ctx, result dto.RateLimitResult) error {
	if result.RetryAfterSeconds > 0 {
		c.Set("Retry-After", strconv.Itoa(result.RetryAfterSeconds))
	}

	return shared.ResponseJSON(c, fiber.StatusTooManyRequests, "Too many requests. Please try again later.", map[string]interface{}{
		"retry_after": result.RetryAfterSeconds,
	})
}

// ==================== BACKGROUND SWEEP ====================

// startSweepJob drops expired windows on a timer so memory stays bounded.
// The interval is independent of any individual key's window.
func (svc *RateLimitService) startSweepJob() {
	ticker := time.NewTicker(svc.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			svc.store.Sweep(svc.now())
		case <-svc.closed:
			return
		}
	}
}

// ==================== CLIENT IP POLICY ====================

// ClientIP takes the first X-Forwarded-For entry, then X-Real-IP, then a
// shared "anonymous" sentinel. Clients without either header deliberately
// collapse onto one bucket.
func ClientIP(c *fiber.Ctx) string {
	forwarded := c.Get("X-Forwarded-For")
	if forwarded != "" {
		ips := strings.Split(forwarded, ",")
		if ip := strings.TrimSpace(ips[0]); ip != "" {
			return ip
		}
	}

	if realIP := c.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	return "anonymous"
}

// ==================== IN-MEMORY STORE ====================

type limiterEntry struct {
	count   int
	resetAt time.Time
}

type memoryLimiterStore struct {
	mutex   sync.Mutex
	entries map[string]*limiterEntry
}

func newMemoryLimiterStore() *memoryLimiterStore {
	return &memoryLimiterStore{entries: make(map[string]*limiterEntry)}
}

func (s *memoryLimiterStore) Hit(key string, window time.Duration, now time.Time) (int, time.Time, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	entry, ok := s.entries[key]
	if !ok || !now.Before(entry.resetAt) {
		// Expired windows are replaced, not merged.
		entry = &limiterEntry{count: 1, resetAt: now.Add(window)}
		s.entries[key] = entry
		return entry.count, entry.resetAt, nil
	}

	entry.count++
	return entry.count, entry.resetAt, nil
}

func (s *memoryLimiterStore) Peek(key string, now time.Time) (int, time.Time, bool, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	entry, ok := s.entries[key]
	if !ok || !now.Before(entry.resetAt) {
		return 0, time.Time{}, false, nil
	}
	return entry.count, entry.resetAt, true, nil
}

func (s *memoryLimiterStore) Remove(key string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.entries, key)
	return nil
}

func (s *memoryLimiterStore) Sweep(now time.Time) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for key, entry := range s.entries {
		if !now.Before(entry.resetAt) {
			delete(s.entries, key)
		}
	}
}
