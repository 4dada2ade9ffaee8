package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jooddae/bojbot/internal/metrics"
)

// Metrics records request count and latency per route. Unmatched requests
// are collapsed under a single "unmatched" label to keep cardinality bounded.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		observeRequest(c, time.Since(start))
	}
}

func observeRequest(c *gin.Context, elapsed time.Duration) {
	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}
	status := strconv.Itoa(c.Writer.Status())

	metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, route, status).Observe(elapsed.Seconds())
	metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, route, status).Inc()
}
