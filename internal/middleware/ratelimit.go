package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// rateLimiter is a per-client sliding-window counter. Expected client
// counts are small (one UI per deployment, maybe a few scripts), so a
// mutex-guarded map is enough.
type rateLimiter struct {
	mu     sync.Mutex
	hits   map[string][]time.Time
	limit  int
	window time.Duration
}

func newRateLimiter(limit int, window time.Duration) *rateLimiter {
	rl := &rateLimiter{
		hits:   make(map[string][]time.Time),
		limit:  limit,
		window: window,
	}
	go rl.sweep()
	return rl
}

// allow records a hit for the client and reports whether it stays under
// the window limit. Stale hits are pruned on the way in.
func (rl *rateLimiter) allow(client string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := now.Add(-rl.window)
	kept := rl.hits[client][:0]
	for _, t := range rl.hits[client] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	if len(kept) >= rl.limit {
		rl.hits[client] = kept
		return false
	}
	rl.hits[client] = append(kept, now)
	return true
}

// sweep drops clients that went quiet, so the map does not grow without
// bound across a long-lived process.
func (rl *rateLimiter) sweep() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()
	for now := range ticker.C {
		cutoff := now.Add(-rl.window)
		rl.mu.Lock()
		for client, times := range rl.hits {
			if len(times) == 0 || !times[len(times)-1].After(cutoff) {
				delete(rl.hits, client)
			}
		}
		rl.mu.Unlock()
	}
}

// RateLimit caps requests per client IP over the window. Analytical
// queries scan the full in-memory datasets, so an unthrottled client
// could pin a core with a tight loop.
func RateLimit(limit int, window time.Duration) gin.HandlerFunc {
	rl := newRateLimiter(limit, window)
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP(), time.Now()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":    http.StatusTooManyRequests,
				"message": "trop de requêtes, réessayez dans une minute",
			})
			return
		}
		c.Next()
	}
}
