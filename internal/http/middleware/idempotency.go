package middleware

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// HeaderIdempotencyKey is the request header clients use to deduplicate
// unsafe operations. The value is expected to be stable across retries of
// the same semantic request.
const HeaderIdempotencyKey = "Idempotency-Key"

// Context keys used internally to stash idempotency state.
const (
	ctxKeyIdemKey    = "idem.key"
	ctxKeyIdemReplay = "idem.replay"
	ctxKeyRateBypass = "rate.bypass"
)

// GetIdempotencyKey returns the validated idempotency key stored in the Gin
// context by IdempotencyValidator. The second return value indicates presence.
func GetIdempotencyKey(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxKeyIdemKey)
	if !ok {
		return "", false
	}
	s, _ := v.(string)
	return s, s != ""
}

// IsReplay reports whether the middleware found a stored response for this
// request's (user, feature, key) tuple. Handlers serve the persisted body
// instead of regenerating when true.
func IsReplay(c *gin.Context) bool {
	v, ok := c.Get(ctxKeyIdemReplay)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// RateBypass reports whether rate limiting should be skipped for this
// request. Set when a replay will be served, since a replay costs no
// model call.
func RateBypass(c *gin.Context) bool {
	v, ok := c.Get(ctxKeyRateBypass)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// IdempotencyLookup answers whether a stored, non-expired response exists for
// (userID, kind, key) at the given time. Lookup failures must not block the
// request; return an error only for diagnostics.
type IdempotencyLookup func(ctx context.Context, userID, kind, key string, now time.Time) (exists bool, err error)

// keyPattern restricts accepted idempotency keys to an RFC 7230-ish token.
var keyPattern = regexp.MustCompile(`^[A-Za-z0-9._~\-:]+$`)

// maxIdemKeyLen caps accepted key length.
const maxIdemKeyLen = 200

// IdempotencyValidator validates the Idempotency-Key header when present,
// stashes the normalized key in the context, and consults lookup for a
// previously completed generation. On a hit it sets the replay and
// rate-bypass flags; serving the stored payload stays with the handler.
//
// Requests without the header pass through untouched. Malformed keys are
// rejected with 400 before any downstream work runs.
func IdempotencyValidator(lookup IdempotencyLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(HeaderIdempotencyKey)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxIdemKeyLen || !keyPattern.MatchString(key) {
			rid, _ := c.Get(requestIDKey)
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"request_id": asString(rid),
				"error":      "bad_idempotency_key",
				"message":    "invalid Idempotency-Key",
			})
			return
		}

		c.Set(ctxKeyIdemKey, key)

		if lookup != nil {
			uid := c.Param("user_id")
			kind := KindFromRoute(c)
			now := time.Now().UTC()

			if exists, _ := lookup(c.Request.Context(), uid, kind, key, now); exists {
				c.Set(ctxKeyIdemReplay, true)
				c.Set(ctxKeyRateBypass, true)
			}
		}

		c.Next()
	}
}

// KindFromRoute derives the feature kind from the matched route, e.g.
// "/api/ai/plan/:user_id" yields "plan". Returns "" for unmatched routes.
func KindFromRoute(c *gin.Context) string {
	rest, ok := strings.CutPrefix(c.FullPath(), "/api/ai/")
	if !ok {
		return ""
	}
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		rest = rest[:i]
	}
	return rest
}
