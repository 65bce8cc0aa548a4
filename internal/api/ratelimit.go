// Per-IP rate limiting for the command endpoints. Each client IP gets its
// own token bucket; stale buckets are swept hourly.
package api

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter hands out a token bucket per client IP.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*ipBucket
	rate    rate.Limit
	burst   int
}

type ipBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter allows perSecond commands sustained with the given burst.
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	rl := &RateLimiter{
		buckets: make(map[string]*ipBucket),
		rate:    rate.Limit(perSecond),
		burst:   burst,
	}
	go func() {
		for {
			time.Sleep(time.Hour)
			rl.cleanup()
		}
	}()
	return rl
}

// Allow reports whether the given IP may issue a command now.
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	b, ok := rl.buckets[ip]
	if !ok {
		b = &ipBucket{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.buckets[ip] = b
	}
	b.lastSeen = time.Now()
	rl.mu.Unlock()

	return b.limiter.Allow()
}

func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-2 * time.Hour)
	for ip, b := range rl.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(rl.buckets, ip)
		}
	}
}

// clientIP extracts the caller address, honoring X-Forwarded-For from
// proxies and stripping the port.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if i := strings.IndexByte(xff, ','); i >= 0 {
			return strings.TrimSpace(xff[:i])
		}
		return strings.TrimSpace(xff)
	}
	ip := r.RemoteAddr
	if i := strings.LastIndexByte(ip, ':'); i >= 0 {
		ip = ip[:i]
	}
	return ip
}

// RateLimitMiddleware rejects over-limit requests with 429.
func RateLimitMiddleware(rl *RateLimiter, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !rl.Allow(clientIP(r)) {
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next(w, r)
	}
}
