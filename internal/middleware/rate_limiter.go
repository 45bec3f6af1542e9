package middleware

import (
	"net/http"
	"sync"
	"time"

	"obranza/internal/apierror"

	"github.com/gin-gonic/gin"
)

// Sliding-window per-IP rate limiting, kept in process memory. Good enough for
// a single-instance deployment; entries are purged periodically so IPs that
// never return do not accumulate.

type rateEntry struct {
	count     int
	windowEnd time.Time
	mu        sync.Mutex
}

type rateLimiter struct {
	entries map[string]*rateEntry
	mu      sync.Mutex
	limit   int
	window  time.Duration
	mensaje string
}

func newRateLimiter(limit int, window time.Duration, mensaje string) *rateLimiter {
	rl := &rateLimiter{
		entries: make(map[string]*rateEntry),
		limit:   limit,
		window:  window,
		mensaje: mensaje,
	}
	go rl.purgeLoop()
	return rl
}

func (rl *rateLimiter) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		rl.mu.Lock()
		entry, ok := rl.entries[ip]
		if !ok {
			entry = &rateEntry{}
			rl.entries[ip] = entry
		}
		rl.mu.Unlock()

		entry.mu.Lock()
		defer entry.mu.Unlock()

		now := time.Now()
		if now.After(entry.windowEnd) {
			entry.count = 0
			entry.windowEnd = now.Add(rl.window)
		}

		entry.count++
		if entry.count > rl.limit {
			c.Header("Retry-After", entry.windowEnd.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(rl.mensaje))
			return
		}
		c.Next()
	}
}

func (rl *rateLimiter) purgeLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		rl.mu.Lock()
		for ip, entry := range rl.entries {
			entry.mu.Lock()
			if now.After(entry.windowEnd) {
				delete(rl.entries, ip)
			}
			entry.mu.Unlock()
		}
		rl.mu.Unlock()
	}
}

// RateLimiter limits all API traffic per IP.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return newRateLimiter(limit, window,
		"Demasiadas solicitudes. Intente nuevamente en un momento.").middleware()
}

// LoginRateLimiter caps login attempts at 20 per minute per IP to slow down
// credential stuffing without locking out shared-office IPs.
func LoginRateLimiter() gin.HandlerFunc {
	return newRateLimiter(20, time.Minute,
		"Demasiados intentos de login. Intente en 1 minuto.").middleware()
}
