package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/Midoriya12/calsnap/internal/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// KeyFunc picks the bucket a request is counted against.
type KeyFunc func(c *gin.Context) string

// clientLimiter is one bucket plus the last time it was used.
type clientLimiter struct {
	limiter *rate.Limiter

	mu       sync.Mutex
	lastSeen time.Time
}

func (l *clientLimiter) touch(now time.Time) {
	l.mu.Lock()
	l.lastSeen = now
	l.mu.Unlock()
}

func (l *clientLimiter) idleSince(now time.Time) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	return now.Sub(l.lastSeen)
}

// RateLimit allows rps requests per second per key, with a burst of rps.
// Buckets idle for longer than expiration are dropped every cleanupInterval.
func RateLimit(rps int, key KeyFunc, cleanupInterval, expiration time.Duration) gin.HandlerFunc {
	var limiters sync.Map

	go func() {
		for range time.Tick(cleanupInterval) {
			now := time.Now()
			limiters.Range(func(k, v interface{}) bool {
				if v.(*clientLimiter).idleSince(now) > expiration {
					limiters.Delete(k)
				}
				return true
			})
		}
	}()

	retryAfter := strconv.Itoa(int(math.Ceil(1 / float64(rps))))

	return func(c *gin.Context) {
		k := key(c)
		actual, _ := limiters.LoadOrStore(k, &clientLimiter{
			limiter: rate.NewLimiter(rate.Limit(rps), rps),
		})
		l := actual.(*clientLimiter)
		l.touch(time.Now())

		if !l.limiter.Allow() {
			logger.FromContext(c).Warn("rate limit exceeded",
				zap.String("key", k),
				zap.String("path", c.FullPath()))
			c.Header("Retry-After", retryAfter)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			return
		}

		c.Next()
	}
}

// RateLimitByIP limits requests per client IP address.
func RateLimitByIP(rps int, cleanupInterval, expiration time.Duration) gin.HandlerFunc {
	return RateLimit(rps, func(c *gin.Context) string { return "ip:" + c.ClientIP() }, cleanupInterval, expiration)
}

// RateLimitByUser limits requests per authenticated user. It must run after
// VerifyTokenMiddleware; requests without a user fall back to the client IP.
func RateLimitByUser(rps int, cleanupInterval, expiration time.Duration) gin.HandlerFunc {
	return RateLimit(rps, func(c *gin.Context) string {
		if id, ok := c.Get("user_id"); ok {
			if s, ok := id.(string); ok && s != "" {
				return "user:" + s
			}
		}
		return "ip:" + c.ClientIP()
	}, cleanupInterval, expiration)
}
