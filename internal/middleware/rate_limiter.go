package middleware

import (
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// RateLimiter enforces per-agent limits on API calls with a sliding
// one-minute window. Autonomous agents retry aggressively; the limiter
// keeps a misbehaving client from starving the rest.
type RateLimiter struct {
	mu      sync.RWMutex
	windows map[string]*rateLimitWindow
	cfg     RateLimitConfig
}

// RateLimitConfig defines the rate limiting thresholds.
type RateLimitConfig struct {
	MaxCallsPerMinute int
	BurstSize         int // temporary headroom above the per-minute limit
}

type rateLimitWindow struct {
	count       int
	windowStart time.Time
}

func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.MaxCallsPerMinute == 0 {
		cfg.MaxCallsPerMinute = 120
	}
	if cfg.BurstSize == 0 {
		cfg.BurstSize = cfg.MaxCallsPerMinute * 2
	}

	rl := &RateLimiter{
		windows: make(map[string]*rateLimitWindow),
		cfg:     cfg,
	}
	go rl.cleanup()
	return rl
}

// Allow reports whether a request under the given key is within limits.
// Existing-window checks run under a read lock; the count increment can
// race slightly, which is acceptable for a soft limit.
func (rl *RateLimiter) Allow(key string) bool {
	now := time.Now()

	rl.mu.RLock()
	window, exists := rl.windows[key]
	if exists && now.Sub(window.windowStart) <= time.Minute {
		window.count++
		count := window.count
		rl.mu.RUnlock()

		if count > rl.cfg.BurstSize {
			slog.Warn("rate limit exceeded (burst)", "key", key, "count", count)
			return false
		}
		if count > rl.cfg.MaxCallsPerMinute {
			slog.Warn("rate limit exceeded", "key", key, "count", count)
			return false
		}
		return true
	}
	rl.mu.RUnlock()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	// Another goroutine may have opened the window while we upgraded.
	window, exists = rl.windows[key]
	if exists && now.Sub(window.windowStart) <= time.Minute {
		window.count++
		return window.count <= rl.cfg.BurstSize
	}

	rl.windows[key] = &rateLimitWindow{count: 1, windowStart: now}
	return true
}

// Middleware enforces the limit keyed by the X-Agent-ID header, falling
// back to the remote address for unidentified callers.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get("X-Agent-ID")
		if key == "" {
			key = r.RemoteAddr
		}

		if !rl.Allow(key) {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", "60")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":"rate limit exceeded","retry_after_seconds":60}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// cleanup drops expired windows so idle agents do not accumulate.
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for key, window := range rl.windows {
			if now.Sub(window.windowStart) > 2*time.Minute {
				delete(rl.windows, key)
			}
		}
		rl.mu.Unlock()
	}
}

// Stats returns current limiter counters for diagnostics.
func (rl *RateLimiter) Stats() map[string]interface{} {
	rl.mu.RLock()
	defer rl.mu.RUnlock()

	return map[string]interface{}{
		"active_windows":    len(rl.windows),
		"max_calls_per_min": rl.cfg.MaxCallsPerMinute,
		"burst_size":        rl.cfg.BurstSize,
	}
}
