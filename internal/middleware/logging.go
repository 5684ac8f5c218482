package middleware

import (
	"time"

	"scholarship-portal/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// quietPaths are polled by load balancers and only logged when they fail.
var quietPaths = map[string]struct{}{
	"/health": {},
}

// LoggingMiddleware writes one structured entry per request once the handler
// chain has finished, tagged with the request id and, after authentication,
// the caller's user id.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		if _, quiet := quietPaths[path]; quiet && status < 500 {
			return
		}

		fields := []zap.Field{
			logger.Event("http_request"),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("route", c.FullPath()),
			zap.String("ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
			zap.Int("status_code", status),
			zap.Int("response_bytes", c.Writer.Size()),
			zap.Duration("latency", time.Since(start)),
		}
		if id, ok := CurrentUserID(c); ok {
			fields = append(fields, zap.String("user_id", id.String()))
		}
		if errs := c.Errors.ByType(gin.ErrorTypePrivate).String(); errs != "" {
			fields = append(fields, zap.String("error", errs))
		}

		log := logger.ForRequest(GetRequestID(c))
		switch {
		case status >= 500:
			log.Error("Request failed", fields...)
		case status >= 400:
			log.Warn("Request rejected", fields...)
		default:
			log.Info("Request completed", fields...)
		}
	}
}
