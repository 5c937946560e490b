package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
)

// RateLimiter counts requests per client IP in fixed windows.
//
// A window starts with the first request from an address and is not extended by
// later ones; the counter expires together with the window.
type RateLimiter struct {
	max     int
	window  time.Duration
	message string
	hits    *cache.Cache
	now     func() time.Time
}

// NewRateLimiter allows max requests per window. Rejected requests get 429 with message.
func NewRateLimiter(max int, window time.Duration, message string) *RateLimiter {
	return &RateLimiter{
		max:     max,
		window:  window,
		message: message,
		hits:    cache.New(window, 2*window),
		now:     time.Now,
	}
}

// Allow records a hit for key and reports whether it is within the limit,
// along with the remaining budget and the time the window resets.
func (l *RateLimiter) Allow(key string) (allowed bool, remaining int, reset time.Time) {
	count := 1
	if err := l.hits.Add(key, 1, l.window); err != nil {
		n, err := l.hits.IncrementInt(key, 1)
		if err != nil {
			// The entry expired between Add and IncrementInt.
			_ = l.hits.Add(key, 1, l.window)
			n = 1
		}
		count = n
	}

	_, expires, found := l.hits.GetWithExpiration(key)
	if !found || expires.IsZero() {
		expires = l.now().Add(l.window)
	}

	remaining = l.max - count
	if remaining < 0 {
		remaining = 0
	}
	return count <= l.max, remaining, expires
}

// Reset forgets every counter.
func (l *RateLimiter) Reset() {
	l.hits.Flush()
}

// Middleware enforces the limit keyed by the client IP.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, remaining, reset := l.Allow(clientIP(r))

		seconds := int(math.Ceil(reset.Sub(l.now()).Seconds()))
		if seconds < 0 {
			seconds = 0
		}
		w.Header().Set("RateLimit-Limit", strconv.Itoa(l.max))
		w.Header().Set("RateLimit-Remaining", strconv.Itoa(remaining))
		w.Header().Set("RateLimit-Reset", strconv.Itoa(seconds))

		if !allowed {
			w.Header().Set("Retry-After", strconv.Itoa(seconds))
			writeError(w, http.StatusTooManyRequests, l.message)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP returns the host part of RemoteAddr. TrustedRealIP rewrites it only
// for requests relayed by a configured proxy.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
