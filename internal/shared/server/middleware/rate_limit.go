package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"placement-backend/internal/shared/server/respond"
)

// RateLimit bounds requests per client identity using a token bucket per key.
// The key is the authenticated user ID when present, the client IP otherwise.
// Idle buckets are dropped after an hour to keep the map from growing.
func RateLimit(perMinute, burst int) gin.HandlerFunc {
	if perMinute <= 0 {
		perMinute = 10
	}
	if burst <= 0 {
		burst = 1
	}

	type bucket struct {
		limiter  *rate.Limiter
		lastSeen time.Time
	}

	var (
		mu      sync.Mutex
		buckets = make(map[string]*bucket)
	)

	limit := rate.Every(time.Minute / time.Duration(perMinute))

	cleanup := func(now time.Time) {
		for key, b := range buckets {
			if now.Sub(b.lastSeen) > time.Hour {
				delete(buckets, key)
			}
		}
	}

	return func(c *gin.Context) {
		key := UserIDFromContext(c)
		if key == "" {
			key = c.ClientIP()
		}

		now := time.Now()
		mu.Lock()
		b, ok := buckets[key]
		if !ok {
			b = &bucket{limiter: rate.NewLimiter(limit, burst)}
			buckets[key] = b
			if len(buckets)%256 == 0 {
				cleanup(now)
			}
		}
		b.lastSeen = now
		allowed := b.limiter.Allow()
		mu.Unlock()

		if !allowed {
			respond.Error(c, http.StatusTooManyRequests, "rate_limited", "Too many analysis requests. Try again shortly.", nil)
			return
		}

		c.Next()
	}
}
