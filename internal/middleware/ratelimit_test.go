package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterCeiling(t *testing.T) {
	rl := NewRateLimiter(60)
	defer rl.Stop()

	// The first 60 requests within the window all pass
	for i := 0; i < 60; i++ {
		require.True(t, rl.Allow("10.0.0.1"), "request %d should be allowed", i+1)
	}
	// The 61st within the same window is rejected
	assert.False(t, rl.Allow("10.0.0.1"))
	// Other clients are unaffected
	assert.True(t, rl.Allow("10.0.0.2"))
}

func TestRateLimiterWindowSlides(t *testing.T) {
	rl := NewRateLimiter(2)
	defer rl.Stop()

	require.True(t, rl.Allow("10.0.0.1"))
	require.True(t, rl.Allow("10.0.0.1"))
	require.False(t, rl.Allow("10.0.0.1"))

	// Age the earliest timestamp past the window
	rl.mu.Lock()
	rl.requests["10.0.0.1"][0] = time.Now().Add(-61 * time.Second)
	rl.mu.Unlock()

	// Capacity frees up once the window slides past it
	assert.True(t, rl.Allow("10.0.0.1"))
}

func TestRateLimiterRejectionNotRecorded(t *testing.T) {
	rl := NewRateLimiter(1)
	defer rl.Stop()

	require.True(t, rl.Allow("10.0.0.1"))
	// Rejected requests must not extend the client's window
	require.False(t, rl.Allow("10.0.0.1"))

	rl.mu.Lock()
	recorded := len(rl.requests["10.0.0.1"])
	rl.mu.Unlock()
	assert.Equal(t, 1, recorded)
}

func TestRateLimiterEvictIdle(t *testing.T) {
	rl := NewRateLimiter(5)
	defer rl.Stop()

	require.True(t, rl.Allow("10.0.0.1"))

	// Age the client's only timestamp out of the window
	rl.mu.Lock()
	rl.requests["10.0.0.1"] = []time.Time{time.Now().Add(-2 * time.Minute)}
	rl.mu.Unlock()

	rl.evictIdle()

	rl.mu.Lock()
	_, tracked := rl.requests["10.0.0.1"]
	rl.mu.Unlock()
	assert.False(t, tracked, "idle clients should be evicted")
}

func TestRateLimiterDefaultCeiling(t *testing.T) {
	rl := NewRateLimiter(0)
	defer rl.Stop()

	assert.Equal(t, 60, rl.limit)
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := NewRateLimiter(1)
	defer rl.Stop()

	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	// First request passes
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	// Second request from the same client is rejected
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "Rate limit exceeded")
}
