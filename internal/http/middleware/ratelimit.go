package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// keyFunc derives the throttling identity for a request.
type keyFunc func(c *gin.Context) string

// KeyByUserOrIP keys the limiter on the X-User-ID header when the caller
// supplies one, falling back to the client IP. Clients behind a shared NAT
// that identify themselves get independent budgets.
func KeyByUserOrIP(c *gin.Context) string {
	if uid := c.GetHeader("X-User-ID"); uid != "" {
		return uid
	}
	return c.ClientIP()
}

// window tracks request counts for one identity inside the current
// fixed window.
type window struct {
	start time.Time
	count int
}

// RateLimiter enforces a fixed-window request budget per identity.
//
// The first request from an identity opens a window; subsequent requests
// within the same window count against the limit until the window elapses,
// at which point the next request opens a fresh window. Rejected requests
// report the number of seconds until the current window ends.
type RateLimiter struct {
	limit     int
	period    time.Duration
	retention time.Duration
	keyFn     keyFunc
	now       func() time.Time

	mu      sync.Mutex
	windows map[string]*window
	lookups uint64
}

// gcEvery is how many lookups pass between opportunistic sweeps of
// idle identities.
const gcEvery = 5000

// NewRateLimiter builds a limiter allowing perMinute requests per identity
// per one-minute window. Identities idle for three full windows are evicted
// during periodic sweeps so the map does not grow without bound.
func NewRateLimiter(perMinute int, keyFn keyFunc) *RateLimiter {
	return &RateLimiter{
		limit:     perMinute,
		period:    time.Minute,
		retention: 3 * time.Minute,
		keyFn:     keyFn,
		now:       time.Now,
		windows:   make(map[string]*window),
	}
}

// WithClock overrides the limiter's time source. Used by tests to drive the
// window boundaries deterministically.
func (rl *RateLimiter) WithClock(now func() time.Time) *RateLimiter {
	rl.now = now
	return rl
}

// allow records one request for key and reports whether it fits in the
// current window. When it does not, the second return value is the time
// remaining until the window resets.
func (rl *RateLimiter) allow(key string) (bool, time.Duration) {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.lookups++
	if rl.lookups%gcEvery == 0 {
		for k, w := range rl.windows {
			if now.Sub(w.start) >= rl.retention {
				delete(rl.windows, k)
			}
		}
	}

	w, ok := rl.windows[key]
	if !ok || now.Sub(w.start) >= rl.period {
		rl.windows[key] = &window{start: now, count: 1}
		return true, 0
	}
	if w.count < rl.limit {
		w.count++
		return true, 0
	}
	return false, w.start.Add(rl.period).Sub(now)
}

// Handler returns the Gin middleware enforcing the limit. Rejections carry
// a Retry-After header and a retry_after field in the error envelope, both
// in whole seconds rounded up and never below one.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Replays serve a stored body and cost no model call.
		if RateBypass(c) {
			c.Next()
			return
		}

		ok, wait := rl.allow(rl.keyFn(c))
		if ok {
			c.Next()
			return
		}

		retryAfter := int(math.Ceil(wait.Seconds()))
		if retryAfter < 1 {
			retryAfter = 1
		}

		rid, _ := c.Get(requestIDKey)
		c.Header("Retry-After", strconv.Itoa(retryAfter))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"request_id":  asString(rid),
			"error":       "rate_limited",
			"message":     "rate limit exceeded, slow down",
			"retry_after": retryAfter,
		})
	}
}
