package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/simp-lee/gonotes/internal/pkg"
)

// RateLimitConfig configures the token-bucket limiter.
type RateLimitConfig struct {
	RPS   float64
	Burst int
	// StaleAfter is how long an idle client keeps its bucket. Defaults to 10 minutes.
	StaleAfter time.Duration
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterStore maps client keys (user or IP) to token buckets.
// Idle entries are dropped lazily on access.
type limiterStore struct {
	mu         sync.Mutex
	entries    map[string]*limiterEntry
	limit      rate.Limit
	burst      int
	staleAfter time.Duration
	lastSweep  time.Time
	now        func() time.Time
}

func newLimiterStore(cfg RateLimitConfig) *limiterStore {
	staleAfter := cfg.StaleAfter
	if staleAfter <= 0 {
		staleAfter = 10 * time.Minute
	}
	return &limiterStore{
		entries:    make(map[string]*limiterEntry),
		limit:      rate.Limit(cfg.RPS),
		burst:      cfg.Burst,
		staleAfter: staleAfter,
		now:        time.Now,
	}
}

func (s *limiterStore) allow(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) >= s.staleAfter {
		cutoff := now.Add(-s.staleAfter)
		for k, e := range s.entries {
			if e.lastSeen.Before(cutoff) {
				delete(s.entries, k)
			}
		}
		s.lastSweep = now
	}

	e, ok := s.entries[key]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(s.limit, s.burst)}
		s.entries[key] = e
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}

// RateLimit returns a gin middleware that applies a per-client token bucket.
// Authenticated requests are keyed by user ID, others by client IP.
// Preflight requests are never limited.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.RPS <= 0 || cfg.Burst <= 0 {
		panic("middleware.RateLimit: rps and burst must be positive")
	}
	store := newLimiterStore(cfg)

	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		key := "ip:" + c.ClientIP()
		if userID, ok := GetUserID(c); ok {
			key = "uid:" + strconv.FormatUint(uint64(userID), 10)
		}

		if !store.allow(key) {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, pkg.Response{
				Code:    http.StatusTooManyRequests,
				Message: "too many requests",
			})
			return
		}

		c.Next()
	}
}
