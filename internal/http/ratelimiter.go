package http

import (
	"sync"
	"time"
)

type visitorBucket struct {
	tokens   float64
	last     time.Time
	lastSeen time.Time
}

// RateLimiter implements a token bucket limiter keyed by client identifier.
type RateLimiter struct {
	mu         sync.Mutex
	visitors   map[string]*visitorBucket
	maxTokens  float64
	refillRate float64
	ttl        time.Duration
	now        func() time.Time
}

// NewRateLimiter constructs a rate limiter with the provided settings.
func NewRateLimiter(maxTokens int, refillPerSecond float64, ttl time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors:   make(map[string]*visitorBucket),
		maxTokens:  float64(maxTokens),
		refillRate: refillPerSecond,
		ttl:        ttl,
		now:        time.Now,
	}

	if ttl > 0 {
		ticker := time.NewTicker(ttl)
		go func() {
			for range ticker.C {
				rl.pruneStale()
			}
		}()
	}

	return rl
}

// Allow consumes a token for the provided key if possible.
func (rl *RateLimiter) Allow(key string) bool {
	if key == "" {
		key = "unknown"
	}

	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	visitor, ok := rl.visitors[key]
	if !ok {
		visitor = &visitorBucket{
			tokens:   rl.maxTokens,
			last:     now,
			lastSeen: now,
		}
		rl.visitors[key] = visitor
	}

	elapsed := now.Sub(visitor.last).Seconds()
	if elapsed > 0 {
		visitor.tokens += elapsed * rl.refillRate
		if visitor.tokens > rl.maxTokens {
			visitor.tokens = rl.maxTokens
		}
		visitor.last = now
	}

	visitor.lastSeen = now

	if visitor.tokens < 1 {
		return false
	}

	visitor.tokens -= 1
	return true
}

func (rl *RateLimiter) pruneStale() {
	if rl.ttl <= 0 {
		return
	}

	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, visitor := range rl.visitors {
		if now.Sub(visitor.lastSeen) > rl.ttl {
			delete(rl.visitors, key)
		}
	}
}
