// Package middleware provides the HTTP middleware of the ordering API.
package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/shashiranjanraj/lanchonete/pkg/response"
)

// bucket tracks a fixed-window request count for one client.
type bucket struct {
	count   int
	resetAt time.Time
}

// RateLimiter allows each client IP max requests per window.
type RateLimiter struct {
	max    int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket
}

// NewRateLimiter returns a limiter; call Sweep periodically to drop idle
// clients.
func NewRateLimiter(max int, window time.Duration) *RateLimiter {
	return &RateLimiter{max: max, window: window, now: time.Now, buckets: map[string]*bucket{}}
}

// Allow counts one request from key and reports whether it is within limit.
func (l *RateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok || now.After(b.resetAt) {
		b = &bucket{resetAt: now.Add(l.window)}
		l.buckets[key] = b
	}
	b.count++
	return b.count <= l.max
}

// Sweep drops buckets whose window has ended and returns how many.
func (l *RateLimiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now, n := l.now(), 0
	for k, b := range l.buckets {
		if now.After(b.resetAt) {
			delete(l.buckets, k)
			n++
		}
	}
	return n
}

// Middleware rejects requests over the limit with 429.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(clientIP(r)) {
			response.Error(w, http.StatusTooManyRequests, "Too Many Requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP prefers the first X-Forwarded-For hop, then RemoteAddr.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
