package middleware

import (
	"log"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
)

type Limiter interface {
	Allow(key string, limit int, window time.Duration) bool
}

// MemoryLimiter is a fixed-window limiter local to this process.
type MemoryLimiter struct {
	mu      sync.Mutex
	buckets map[string]*rateBucket
	now     func() time.Time
}

type rateBucket struct {
	count     int
	windowEnd time.Time
}

func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{buckets: make(map[string]*rateBucket), now: time.Now}
}

func (r *MemoryLimiter) Allow(key string, limit int, window time.Duration) bool {
	if key == "" || limit <= 0 || window <= 0 {
		return true
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	bucket, ok := r.buckets[key]
	if !ok || !now.Before(bucket.windowEnd) {
		r.sweep(now)
		r.buckets[key] = &rateBucket{count: 1, windowEnd: now.Add(window)}
		return true
	}
	if bucket.count >= limit {
		return false
	}
	bucket.count++
	return true
}

// sweep drops expired windows once the map grows.
func (r *MemoryLimiter) sweep(now time.Time) {
	if len(r.buckets) < 1024 {
		return
	}
	for k, b := range r.buckets {
		if !now.Before(b.windowEnd) {
			delete(r.buckets, k)
		}
	}
}

type RateLimitMiddleware struct {
	limiter Limiter
	logger  *log.Logger
}

func NewRateLimitMiddleware(limiter Limiter, logger *log.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{limiter: limiter, logger: logger}
}

// Limit rejects with 429 once keyFn's key exceeds limit hits per window.
// An empty key skips limiting.
func (m *RateLimitMiddleware) Limit(name string, keyFn func(fiber.Ctx) string, limit int, window time.Duration) fiber.Handler {
	return func(c fiber.Ctx) error {
		if m == nil || m.limiter == nil || limit <= 0 {
			return c.Next()
		}
		key := keyFn(c)
		if key == "" {
			return c.Next()
		}
		if !m.limiter.Allow(name+":"+key, limit, window) {
			if m.logger != nil {
				m.logger.Printf("[RateLimit] rejected rule=%s key=%s", name, key)
			}
			return NewAppError(fiber.StatusTooManyRequests, "Too many requests. Please try again later.", nil, nil)
		}
		return c.Next()
	}
}

func ClientIPKey(c fiber.Ctx) string {
	return c.IP()
}
