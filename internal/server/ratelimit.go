package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

// rateLimiter hands out one token bucket per client address. A non-positive
// rate disables limiting.
type rateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*clientLimiter
	rate     rate.Limit
	burst    int
	now      func() time.Time
}

type clientLimiter struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

func newRateLimiter(perSecond float64, burst int) *rateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &rateLimiter{
		limiters: make(map[string]*clientLimiter),
		rate:     rate.Limit(perSecond),
		burst:    burst,
		now:      time.Now,
	}
}

func (r *rateLimiter) allow(key string) bool {
	if r == nil || r.rate <= 0 {
		return true
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	entry, ok := r.limiters[key]
	if !ok {
		r.sweep(now)
		entry = &clientLimiter{lim: rate.NewLimiter(r.rate, r.burst)}
		r.limiters[key] = entry
	}
	entry.lastSeen = now
	return entry.lim.AllowN(now, 1)
}

// sweep drops buckets that have been idle long enough to be full again.
func (r *rateLimiter) sweep(now time.Time) {
	for key, entry := range r.limiters {
		if now.Sub(entry.lastSeen) > limiterIdleTTL {
			delete(r.limiters, key)
		}
	}
}

func (s *Server) limitWrites(c *gin.Context) {
	if !s.limiter.allow(c.ClientIP()) {
		respondError(c, http.StatusTooManyRequests, "too many requests")
		return
	}
	c.Next()
}
