package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Eli45-23/aichatflows-app-sub001/internal/pkg/response"
)

// RequestLogger logs each request, logs 5xx responses with detail and
// recovers from handler panics.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if recovered := recover(); recovered != nil {
				logger.Error("panic recovered",
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"err", fmt.Sprintf("%v", recovered),
					"stack", string(debug.Stack()),
				)
				response.Error(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal Server Error")
				c.Abort()
				return
			}

			level := slog.LevelInfo
			if c.Writer.Status() >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.Log(c.Request.Context(), level, "request",
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"status", c.Writer.Status(),
				"client_ip", c.ClientIP(),
				"latency", time.Since(start),
			)
		}()

		c.Next()
	}
}
