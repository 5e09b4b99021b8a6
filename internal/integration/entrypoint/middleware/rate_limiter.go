package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	domainerror "github.com/receipt-split/backend/internal/domain/error"
	"github.com/receipt-split/backend/internal/integration/entrypoint/dto"
)

// window counts the requests of one caller since start.
type window struct {
	count int
	start time.Time
}

// RateLimiter allows limit requests per caller in each fixed window. Callers
// are the authenticated user, or the client IP for anonymous requests.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	period  time.Duration
	now     func() time.Time
}

// NewRateLimiter creates a limiter. A non-positive limit lets everything through.
func NewRateLimiter(limit int, period time.Duration) *RateLimiter {
	return &RateLimiter{
		windows: make(map[string]*window),
		limit:   limit,
		period:  period,
		now:     time.Now,
	}
}

// Middleware rejects callers over their quota with 429 and a Retry-After header.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.limit <= 0 {
			c.Next()
			return
		}

		remaining, wait := rl.take(callerKey(c))
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		if wait > 0 {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many settlement requests. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			return
		}

		c.Next()
	}
}

func callerKey(c *gin.Context) string {
	if userID, ok := GetUserIDFromContext(c); ok {
		return "user:" + userID.String()
	}
	if ip := c.ClientIP(); ip != "" {
		return "ip:" + ip
	}
	return "ip:" + c.Request.RemoteAddr
}

// take spends one request of key's quota. It returns what is left, or how long
// the caller must wait when nothing is.
func (rl *RateLimiter) take(key string) (remaining int, wait time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.windows[key]
	if !ok || !now.Before(w.start.Add(rl.period)) {
		w = &window{start: now}
		rl.windows[key] = w
	}

	if w.count >= rl.limit {
		return 0, w.start.Add(rl.period).Sub(now)
	}
	w.count++
	return rl.limit - w.count, 0
}

// Reset forgets every caller.
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	clear(rl.windows)
}

// Cleanup drops windows that have ended. The scheduler runs it periodically.
func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, w := range rl.windows {
		if !now.Before(w.start.Add(rl.period)) {
			delete(rl.windows, key)
		}
	}
}

// Len returns the number of tracked callers.
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.windows)
}
