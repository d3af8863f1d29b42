package middleware

import (
	"strconv"
	"time"

	"github.com/dappwork/marketplace/internal/telemetry"
	"github.com/gin-gonic/gin"
)

// Metrics records request latency labelled by route template, so /api/users/:id
// stays one series no matter how many ids are requested.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		telemetry.RecordHTTPRequest(c.Request.Method, path, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
