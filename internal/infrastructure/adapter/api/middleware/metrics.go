package middleware

import (
	"strconv"
	"time"

	"github.com/davidokon/secretshop/internal/infrastructure/adapter/metrics"
	"github.com/gin-gonic/gin"
)

// Metrics records request latency per route. The route template
// (c.FullPath) keeps label cardinality bounded regardless of path params.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequestDuration.WithLabelValues(
			route,
			c.Request.Method,
			strconv.Itoa(c.Writer.Status()),
		).Observe(time.Since(start).Seconds())
	}
}
