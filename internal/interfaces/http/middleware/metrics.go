package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"safealert.backend/pkg/metrics"
)

// MetricsMiddleware records request counts and latency per route. The
// route template is used instead of the raw path so ids do not explode
// label cardinality.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
