package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func setNoCacheHeaders(c *gin.Context) {
	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Header("Pragma", "no-cache")
	c.Header("X-Content-Type-Options", "nosniff")
}

// RejectBody returns 400 when the request carries a body. Used on read
// and delete routes where a payload is not allowed.
func RejectBody() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > 0 {
			setNoCacheHeaders(c)
			c.JSON(http.StatusBadRequest, gin.H{"error": "payload not allowed"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RejectQuery returns 400 when the request carries query parameters.
func RejectQuery() gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(c.Request.URL.RawQuery) > 0 {
			setNoCacheHeaders(c)
			c.JSON(http.StatusBadRequest, gin.H{"error": "query parameters not allowed"})
			c.Abort()
			return
		}
		c.Next()
	}
}
