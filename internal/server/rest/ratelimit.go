package rest

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// ipRateLimiter keeps one token bucket per client IP. The bucket refills at
// ceiling/window and bursts up to the full ceiling, approximating the
// fixed-window limiter of the original deployment. This is the only rate
// limiting in the system: OTP guessing has no dedicated limiter.
//
// Idle entries are swept so the map stays bounded by the set of IPs active
// within the last window. An entry idle for a full window has refilled to
// full burst, which is exactly the state a fresh entry starts in, so
// eviction is not observable to clients.
type ipRateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*clientLimiter
	limit     rate.Limit
	burst     int
	ttl       time.Duration
	lastSweep time.Time
}

type clientLimiter struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

func newIPRateLimiter(window time.Duration, ceiling int) *ipRateLimiter {
	return &ipRateLimiter{
		limiters:  make(map[string]*clientLimiter),
		limit:     rate.Limit(float64(ceiling) / window.Seconds()),
		burst:     ceiling,
		ttl:       window,
		lastSweep: time.Now(),
	}
}

func (l *ipRateLimiter) allow(ip string) bool {
	now := time.Now()

	l.mu.Lock()
	if now.Sub(l.lastSweep) >= l.ttl {
		l.sweep(now)
	}

	cl, ok := l.limiters[ip]
	if !ok {
		cl = &clientLimiter{lim: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[ip] = cl
	}
	cl.lastSeen = now
	l.mu.Unlock()

	return cl.lim.Allow()
}

// sweep drops entries not seen for a full window. Callers must hold mu.
func (l *ipRateLimiter) sweep(now time.Time) {
	for ip, cl := range l.limiters {
		if now.Sub(cl.lastSeen) >= l.ttl {
			delete(l.limiters, ip)
		}
	}
	l.lastSweep = now
}

func (s *Server) rateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.limiter.allow(c.ClientIP()) {
			respondError(c, http.StatusTooManyRequests, "Too many requests")
			return
		}
		c.Next()
	}
}
