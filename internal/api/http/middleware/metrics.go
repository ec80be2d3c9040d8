package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/superapp-gateway/internal/metrics"
)

// Metrics records request latency by matched route. Unmatched paths share one label.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
