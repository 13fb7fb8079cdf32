// Package ratelimit provides rate limiting functionality using token bucket algorithm.
package ratelimit

import (
	"strings"
	"sync"
	"time"
)

// tokenBucket allows a number of requests per window with tokens
// refilling at a steady rate
type tokenBucket struct {
	capacity   int
	refillRate float64 // tokens per second
	tokens     float64
	lastRefill time.Time
	mu         sync.Mutex
}

func newTokenBucket(capacity int, refillRate float64) *tokenBucket {
	return &tokenBucket{
		capacity:   capacity,
		refillRate: refillRate,
		tokens:     float64(capacity),
		lastRefill: time.Now(),
	}
}

// take refills based on elapsed time, then consumes a token if one is
// available
func (tb *tokenBucket) take() (allowed bool, remaining int, retryAfter time.Duration) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(tb.lastRefill)
	tb.tokens = min(float64(tb.capacity), tb.tokens+elapsed.Seconds()*tb.refillRate)
	tb.lastRefill = now

	if tb.tokens >= 1.0 {
		tb.tokens -= 1.0
		return true, int(tb.tokens), 0
	}

	secondsUntilToken := (1.0 - tb.tokens) / tb.refillRate
	return false, 0, time.Duration(secondsUntilToken * float64(time.Second))
}

// Info contains information about rate limit status
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Limiter manages per-client token buckets with endpoint-specific limits
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*tokenBucket
	config  *Config
}

// NewLimiter creates a limiter with the given configuration
func NewLimiter(config *Config) *Limiter {
	return &Limiter{
		buckets: make(map[string]*tokenBucket),
		config:  config,
	}
}

// Check consumes one request from the client's bucket for the matched
// endpoint and reports whether it is allowed
func (l *Limiter) Check(clientID, method, path string) Info {
	if !l.config.Enabled {
		return Info{Allowed: true, Limit: l.config.DefaultLimit, Remaining: l.config.DefaultLimit}
	}

	limit, window, burst := l.config.lookup(method, path)

	key := clientID + "|" + method + "|" + matchKey(path)
	l.mu.Lock()
	bucket, ok := l.buckets[key]
	if !ok {
		refillRate := float64(limit) / window.Seconds()
		bucket = newTokenBucket(burst, refillRate)
		l.buckets[key] = bucket
	}
	l.mu.Unlock()

	allowed, remaining, retryAfter := bucket.take()
	return Info{Allowed: allowed, Limit: limit, Remaining: remaining, RetryAfter: retryAfter}
}

// matchKey collapses path parameters so every candidate shares one
// bucket per endpoint shape
func matchKey(path string) string {
	parts := strings.Split(path, "/")
	for i, p := range parts {
		if len(p) == 36 && strings.Count(p, "-") == 4 {
			parts[i] = "{id}"
		}
	}
	return strings.Join(parts, "/")
}
