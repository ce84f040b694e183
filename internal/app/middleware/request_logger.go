package middleware

import (
	"time"

	"github.com/IT-Nick/vocational-profile/internal/infra/ctxutil"
	"github.com/IT-Nick/vocational-profile/internal/infra/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// RequestLogger назначает запросу ID и пишет строку access-лога после ответа
func RequestLogger(baseLog *logger.Logger) gin.HandlerFunc {
	log := baseLog.With("middleware", "RequestLogger")

	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)
		c.Request = c.Request.WithContext(ctxutil.WithRequestID(c.Request.Context(), requestID))

		c.Next()

		fields := []interface{}{
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		}
		if caller, ok := ctxutil.CallerFrom(c.Request.Context()); ok {
			fields = append(fields, "user_id", caller.UserID)
		}

		switch {
		case len(c.Errors) > 0 && c.Writer.Status() >= 500:
			log.Error("http request failed", append(fields, "error", c.Errors.String())...)
		case len(c.Errors) > 0:
			log.Warn("http request rejected", append(fields, "error", c.Errors.String())...)
		default:
			log.Info("http request", fields...)
		}
	}
}
