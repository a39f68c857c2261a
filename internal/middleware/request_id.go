package middleware

import (
	"time"

	"item-portal/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDKey = "request_id"

// RequestID returns the id assigned to this request, or "" before the
// middleware ran.
func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// WithRequestID assigns each request a uuid, echoes it in the response and
// logs the request on the way out. Credentials and session tokens are never
// part of these logs.
func WithRequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set(requestIDKey, id)
		c.Writer.Header().Set("X-Request-Id", id)

		start := time.Now()
		c.Next()

		logger.Info("request", map[string]any{
			"request_id": id,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"elapsed_ms": time.Since(start).Milliseconds(),
		})
	}
}
