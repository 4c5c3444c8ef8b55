package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"jandervidros/internal/apierror"
)

// windowEntry tracks requests from one IP within a fixed window.
type windowEntry struct {
	count     int
	windowEnd time.Time
}

// RateLimiter is a fixed-window per-IP limiter. Expired entries are purged in
// the background until the context passed to NewRateLimiter is cancelled.
type RateLimiter struct {
	name    string
	limit   int
	window  time.Duration
	message string

	mu      sync.Mutex
	entries map[string]*windowEntry
}

const purgeInterval = 5 * time.Minute

func NewRateLimiter(ctx context.Context, name string, limit int, window time.Duration, message string) *RateLimiter {
	rl := &RateLimiter{
		name:    name,
		limit:   limit,
		window:  window,
		message: message,
		entries: make(map[string]*windowEntry),
	}
	go rl.purgeLoop(ctx)
	return rl
}

// allow records one request from ip and reports whether it is within the limit.
func (rl *RateLimiter) allow(ip string, now time.Time) (bool, time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	e, ok := rl.entries[ip]
	if !ok || now.After(e.windowEnd) {
		e = &windowEntry{windowEnd: now.Add(rl.window)}
		rl.entries[ip] = e
	}
	e.count++
	return e.count <= rl.limit, e.windowEnd
}

// Handler returns the gin middleware.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		now := time.Now()
		ok, windowEnd := rl.allow(c.ClientIP(), now)
		if !ok {
			retry := int(windowEnd.Sub(now).Seconds()) + 1
			c.Header("Retry-After", strconv.Itoa(retry))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(rl.message))
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) purgeLoop(ctx context.Context) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := rl.purge(now); n > 0 {
				log.Debug().Str("limiter", rl.name).Int("entries_purged", n).Msg("rate limiter purged")
			}
		}
	}
}

func (rl *RateLimiter) purge(now time.Time) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	purged := 0
	for ip, e := range rl.entries {
		if now.After(e.windowEnd) {
			delete(rl.entries, ip)
			purged++
		}
	}
	return purged
}
