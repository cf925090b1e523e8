package middleware

import (
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hexanode/accounts/pkg/logger"
	"go.uber.org/zap"
)

// LoggingMiddleware emits one structured log line per request.
func LoggingMiddleware() gin.HandlerFunc {
	return gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			fields := []zap.Field{
				zap.String("method", param.Method),
				zap.String("path", param.Path),
				zap.Int("status_code", param.StatusCode),
				zap.Duration("latency", param.Latency),
				zap.String("client_ip", param.ClientIP),
				zap.String("user_agent", param.Request.UserAgent()),
				zap.String("request_id", param.Request.Header.Get("X-Request-ID")),
			}

			switch {
			case param.StatusCode >= 500:
				logger.GetLogger().Error("Request failed", fields...)
			case param.StatusCode >= 400:
				logger.GetLogger().Warn("Request rejected", fields...)
			case param.Latency > 2*time.Second:
				logger.GetLogger().Warn("Slow request", fields...)
			default:
				logger.GetLogger().Info("Request completed", fields...)
			}

			if param.ErrorMessage != "" {
				logger.GetLogger().Error("Request error",
					zap.String("error", param.ErrorMessage),
					zap.String("method", param.Method),
					zap.String("path", param.Path),
					zap.Int("status_code", param.StatusCode),
				)
			}

			return ""
		},
		Output: io.Discard,
	})
}

// RecoveryMiddleware turns panics into logged 500 responses.
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.GetLogger().Error("Panic recovered",
			zap.Any("panic", recovered),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)

		c.JSON(500, gin.H{
			"message": "Internal server error",
		})
	})
}
