package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"habithero/internal/metrics"
)

// unmatchedRoute labels requests that did not match any route, keeping
// arbitrary paths out of the label set.
const unmatchedRoute = "unmatched"

// Metrics records request count and duration by method, route template and
// status class.
func Metrics(rec metrics.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		rec.ObserveRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
