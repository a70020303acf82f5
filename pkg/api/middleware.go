package api

import (
	"github.com/google/uuid"

	"github.com/gin-gonic/gin"
)

const correlationIDHeader = "X-Correlation-ID"
const correlationIDKey = "correlationID"

// correlationID assigns (or propagates) a request-scoped id used to tie a
// logged failure back to the error body returned to the caller.
func correlationID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(correlationIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(correlationIDKey, id)
		c.Header(correlationIDHeader, id)
		c.Next()
	}
}

func requestID(c *gin.Context) string {
	if id, ok := c.Get(correlationIDKey); ok {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}

// securityHeaders sets standard response headers, grounded on the teacher's
// pkg/api/middleware.go.
func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	}
}
