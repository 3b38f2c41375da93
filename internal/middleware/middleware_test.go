package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowWithinLimit(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{MaxCallsPerMinute: 5, BurstSize: 10})

	for i := 0; i < 5; i++ {
		assert.True(t, rl.Allow("a1"), "call %d", i)
	}
}

func TestBurstCeilingBlocks(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{MaxCallsPerMinute: 2, BurstSize: 4})

	allowed := 0
	for i := 0; i < 10; i++ {
		if rl.Allow("a1") {
			allowed++
		}
	}
	assert.LessOrEqual(t, allowed, 4)

	// Independent keys have independent windows.
	assert.True(t, rl.Allow("a2"))
}

func TestMiddlewareReturns429(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{MaxCallsPerMinute: 1, BurstSize: 1})
	h := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	call := func() int {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/agents/a1/state", nil)
		req.Header.Set("X-Agent-ID", "a1")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	require.Equal(t, http.StatusOK, call())
	rec2 := call()
	assert.Equal(t, http.StatusTooManyRequests, rec2)
}

func TestRequestLoggerPreservesStatus(t *testing.T) {
	h := RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestStats(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{})
	rl.Allow("a1")
	rl.Allow("a2")

	stats := rl.Stats()
	assert.Equal(t, 2, stats["active_windows"])
	assert.Equal(t, 120, stats["max_calls_per_min"])
}
