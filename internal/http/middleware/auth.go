package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// BearerAuth guards a route group with a shared bearer secret.
//
// Requests must carry "Authorization: Bearer <secret>". The comparison is
// constant time so the middleware does not leak how many prefix bytes of a
// guess matched. Missing, malformed, and wrong credentials are all rejected
// with the same 401 envelope before any handler or downstream adapter runs.
func BearerAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
			rid, _ := c.Get(requestIDKey)
			c.Header("WWW-Authenticate", `Bearer realm="api"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"request_id": asString(rid),
				"error":      "unauthorized",
				"message":    "missing or invalid bearer token",
			})
			return
		}
		c.Next()
	}
}
