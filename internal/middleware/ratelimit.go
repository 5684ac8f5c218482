package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"scholarship-portal/internal/logger"
	"scholarship-portal/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	clientIdleTTL = 10 * time.Minute
	pruneEvery    = 1024
)

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP and forgets clients that
// have been idle for longer than clientIdleTTL.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientBucket
	limit   rate.Limit
	burst   int
	calls   int
	now     func() time.Time
}

// NewRateLimiter creates a limiter admitting rps requests per second per
// client with bursts of up to burst.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*clientBucket),
		limit:   rate.Limit(rps),
		burst:   burst,
		now:     time.Now,
	}
}

// Allow reports whether the client may proceed and, if not, how long until
// its next token.
func (rl *RateLimiter) Allow(client string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if rl.calls++; rl.calls%pruneEvery == 0 {
		rl.prune(now)
	}

	bucket, ok := rl.clients[client]
	if !ok {
		bucket = &clientBucket{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[client] = bucket
	}
	bucket.lastSeen = now

	reservation := bucket.limiter.ReserveN(now, 1)
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// Prune drops clients idle since before the TTL and returns how many were
// removed.
func (rl *RateLimiter) Prune() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return rl.prune(rl.now())
}

func (rl *RateLimiter) prune(now time.Time) int {
	cutoff := now.Add(-clientIdleTTL)
	removed := 0
	for client, bucket := range rl.clients {
		if bucket.lastSeen.Before(cutoff) {
			delete(rl.clients, client)
			removed++
		}
	}
	return removed
}

// RateLimitMiddleware applies a per-IP token bucket. A non-positive rps
// disables limiting.
func RateLimitMiddleware(rps float64, burst int) gin.HandlerFunc {
	if rps <= 0 {
		return func(c *gin.Context) {
			c.Next()
		}
	}
	if burst < 1 {
		burst = 1
	}

	limiter := NewRateLimiter(rps, burst)

	return func(c *gin.Context) {
		ip := c.ClientIP()
		allowed, retryAfter := limiter.Allow(ip)
		if !allowed {
			logger.ForRequest(GetRequestID(c)).Warn("Rate limit exceeded",
				logger.Event("rate_limited"),
				zap.String("ip", ip),
				zap.String("path", c.Request.URL.Path),
				zap.Duration("retry_after", retryAfter),
			)

			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			utils.ErrorResponse(c, http.StatusTooManyRequests, "Too many requests, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
