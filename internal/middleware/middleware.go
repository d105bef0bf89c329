package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campuserp/campuserp/internal/metrics"
	"github.com/campuserp/campuserp/internal/pkg/logger"
)

// RequestLogger logs every request with latency and status and feeds the
// request duration histogram.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		duration := time.Since(start)
		metrics.ObserveRequest(c.Request.Method, path, duration)

		event := logger.Info()
		if c.Writer.Status() >= 500 {
			event = logger.Error()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", c.Writer.Status()).
			Dur("latency", duration).
			Str("clientIp", c.ClientIP()).
			Msg("Request handled")
	}
}
