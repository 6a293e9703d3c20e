package middleware

import "github.com/gin-gonic/gin"

// newTestEngine returns a bare engine in test mode.
func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}
