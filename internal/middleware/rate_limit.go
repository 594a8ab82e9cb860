// internal/middleware/rate_limit.go
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/couturehub/couture-backend/internal/utils"
)

// ipLimiter hands out one token bucket per client IP and forgets buckets
// that have been idle long enough to refill anyway.
type ipLimiter struct {
	buckets map[string]*bucket
	mtx     sync.Mutex
	rate    rate.Limit
	burst   int
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newIPLimiter(r rate.Limit, burst int) *ipLimiter {
	l := &ipLimiter{
		buckets: make(map[string]*bucket),
		rate:    r,
		burst:   burst,
	}

	go l.evictIdle()

	return l
}

func (l *ipLimiter) evictIdle() {
	for {
		time.Sleep(time.Minute)
		l.mtx.Lock()
		for ip, b := range l.buckets {
			if time.Since(b.lastSeen) > 3*time.Minute {
				delete(l.buckets, ip)
			}
		}
		l.mtx.Unlock()
	}
}

func (l *ipLimiter) get(ip string) *rate.Limiter {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	b, exists := l.buckets[ip]
	if !exists {
		limiter := rate.NewLimiter(l.rate, l.burst)
		l.buckets[ip] = &bucket{limiter, time.Now()}
		return limiter
	}

	b.lastSeen = time.Now()
	return b.limiter
}

func (l *ipLimiter) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.get(c.ClientIP()).Allow() {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "RATE_LIMITED",
				"Too many requests. Please try again later.", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

// Tiers: browsing traffic is generous, credential guessing and bulk image
// uploads are not.
var (
	generalLimiter = newIPLimiter(rate.Every(time.Second), 10)
	authLimiter    = newIPLimiter(rate.Every(time.Minute), 5)
	uploadLimiter  = newIPLimiter(rate.Every(time.Minute), 10)
)

func GeneralRateLimit() gin.HandlerFunc {
	return generalLimiter.middleware()
}

func AuthRateLimit() gin.HandlerFunc {
	return authLimiter.middleware()
}

func UploadRateLimit() gin.HandlerFunc {
	return uploadLimiter.middleware()
}
