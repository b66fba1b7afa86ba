// README: Request logging middleware.
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"ridelink/pkg/logger"
)

func Logging(log logger.ILogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("http request",
			logger.String("method", c.Request.Method),
			logger.String("path", c.Request.URL.Path),
			logger.Int("status", c.Writer.Status()),
			logger.String("request_id", RequestIDFrom(c)),
			logger.Int64("duration_ms", time.Since(start).Milliseconds()))
	}
}
