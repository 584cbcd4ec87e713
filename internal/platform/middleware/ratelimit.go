package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// RateLimitConfig sizes the per-client token bucket.
type RateLimitConfig struct {
	RequestsPerSecond float64
	BurstSize         int
}

// DefaultRateLimitConfig allows 100 req/s with a burst of 200, generous
// enough that only abusive clients ever see a 429.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: 100,
		BurstSize:         200,
	}
}

// bucket is a classic token bucket refilled lazily on each check.
type bucket struct {
	mu       sync.Mutex
	tokens   float64
	max      float64
	rate     float64
	lastSeen time.Time
}

func (b *bucket) take() (ok bool, retryAfter int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.tokens += now.Sub(b.lastSeen).Seconds() * b.rate
	if b.tokens > b.max {
		b.tokens = b.max
	}
	b.lastSeen = now

	if b.tokens >= 1 {
		b.tokens--
		return true, 0
	}
	if b.rate <= 0 {
		return false, 1
	}
	return false, int((1-b.tokens)/b.rate) + 1
}

// clientStore keeps one bucket per remote IP and evicts entries that have
// been idle long enough to be full again anyway.
type clientStore struct {
	mu      sync.Mutex
	clients map[string]*bucket
	cfg     RateLimitConfig
}

func newClientStore(cfg RateLimitConfig) *clientStore {
	return &clientStore{
		clients: make(map[string]*bucket),
		cfg:     cfg,
	}
}

func (s *clientStore) get(ip string) *bucket {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b, ok := s.clients[ip]; ok {
		return b
	}
	if len(s.clients) > 10000 {
		s.evictIdleLocked()
	}
	b := &bucket{
		tokens:   float64(s.cfg.BurstSize),
		max:      float64(s.cfg.BurstSize),
		rate:     s.cfg.RequestsPerSecond,
		lastSeen: time.Now(),
	}
	s.clients[ip] = b
	return b
}

func (s *clientStore) evictIdleLocked() {
	cutoff := time.Now().Add(-10 * time.Minute)
	for ip, b := range s.clients {
		b.mu.Lock()
		idle := b.lastSeen.Before(cutoff)
		b.mu.Unlock()
		if idle {
			delete(s.clients, ip)
		}
	}
}

// RateLimit rejects clients that exceed cfg with 429 and a Retry-After hint.
func RateLimit(cfg RateLimitConfig) echo.MiddlewareFunc {
	store := newClientStore(cfg)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ok, retryAfter := store.get(c.RealIP()).take()
			if !ok {
				c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfter))
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}
