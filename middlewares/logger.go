package middlewares

import (
	"log/slog"
	"time"

	"sabores/pkg/logger"
	"sabores/pkg/resp"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// RequestLogger tags each request with an id and logs one line when it finishes.
func RequestLogger(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqID := c.GetHeader(RequestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set(resp.RequestIDKey, reqID)
		c.Set(resp.LoggerKey, l)
		c.Header(RequestIDHeader, reqID)

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		l.Info(c.Request.Method+" "+route, reqID, "request completed",
			slog.Int("status", c.Writer.Status()),
			slog.Int64("latency_ms", time.Since(start).Milliseconds()),
			slog.String("client_ip", c.ClientIP()),
		)
	}
}
