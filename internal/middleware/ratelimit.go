package middleware

import (
	"net/http" // HTTP status codes
	"sync"     // Mutex for the shared counter table
	"time"     // Sliding window arithmetic

	"github.com/gin-gonic/gin" // Gin web framework
)

// RateLimiter tracks request timestamps per client address over a sliding
// 60-second window. All access to the table goes through one mutex so the
// read-clean-append sequence is never interleaved between requests.
type RateLimiter struct {
	mu       sync.Mutex             // Guards requests
	requests map[string][]time.Time // Recent request times per client address
	limit    int                    // Maximum requests per window
	window   time.Duration          // Window length
	stop     chan struct{}          // Signals the eviction goroutine to exit
	stopOnce sync.Once              // Ensures Stop is idempotent
}

// NewRateLimiter creates a limiter allowing requestsPerMinute per client
// and starts a background sweep that evicts idle client entries.
func NewRateLimiter(requestsPerMinute int) *RateLimiter {
	// Fall back to the default ceiling on a bad value
	if requestsPerMinute <= 0 {
		requestsPerMinute = 60
	}
	rl := &RateLimiter{
		requests: make(map[string][]time.Time), // Counter table
		limit:    requestsPerMinute,            // Window ceiling
		window:   time.Minute,                  // Sliding window length
		stop:     make(chan struct{}),          // Shutdown signal
	}
	go rl.sweep() // Evict stale clients in the background
	return rl
}

// Allow reports whether a request from clientIP may proceed, recording
// its timestamp when it does.
func (rl *RateLimiter) Allow(clientIP string) bool {
	rl.mu.Lock()         // Serialize access to the counter table
	defer rl.mu.Unlock() // Release on every exit path

	now := time.Now()               // Current time
	cutoff := now.Add(-rl.window)   // Start of the sliding window
	recent := rl.requests[clientIP] // Timestamps recorded for this client

	// Drop timestamps that have slid out of the window
	kept := recent[:0]
	for _, t := range recent {
		if t.After(cutoff) {
			kept = append(kept, t) // Still inside the window
		}
	}

	// Reject once the window is full
	if len(kept) >= rl.limit {
		rl.requests[clientIP] = kept // Rejected requests are not recorded
		return false
	}

	rl.requests[clientIP] = append(kept, now) // Record this request
	return true
}

// sweep periodically removes clients with no requests inside the window,
// bounding the table by active clients rather than every address ever seen.
func (rl *RateLimiter) sweep() {
	ticker := time.NewTicker(5 * time.Minute) // Eviction interval
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.evictIdle() // Remove stale entries
		case <-rl.stop:
			return // Limiter stopped
		}
	}
}

// evictIdle deletes clients whose newest timestamp is outside the window
func (rl *RateLimiter) evictIdle() {
	rl.mu.Lock()         // Serialize access to the counter table
	defer rl.mu.Unlock() // Release on every exit path
	cutoff := time.Now().Add(-rl.window)
	for ip, times := range rl.requests {
		// The newest timestamp is last; an empty list is always stale
		if len(times) == 0 || !times[len(times)-1].After(cutoff) {
			delete(rl.requests, ip) // Forget this client
		}
	}
}

// Stop shuts down the eviction goroutine
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() {
		close(rl.stop) // Signal sweep to exit
	})
}

// Middleware rejects requests over the per-client ceiling with 429
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Check the client's window before doing any work
		if !rl.Allow(c.ClientIP()) {
			c.Header("Retry-After", "60") // Window length in seconds
			// Abort with too many requests status
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded. Please try again later."})
			return
		}
		c.Next() // Proceed to the next handler
	}
}
