package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const RequestIDHeader = "X-Request-ID"

// RequestLogger tags every request with an id and logs it once it completes.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		requestID := ctx.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx.Set("requestId", requestID)
		ctx.Header(RequestIDHeader, requestID)

		ctx.Next()

		fields := []zap.Field{
			zap.String("requestId", requestID),
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.Request.URL.Path),
			zap.Int("status", ctx.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("clientIp", ctx.ClientIP()),
		}
		switch {
		case ctx.Writer.Status() >= 500:
			log.Error("Request failed", fields...)
		case len(ctx.Errors) > 0:
			log.Warn("Request completed with errors", append(fields, zap.String("errors", ctx.Errors.String()))...)
		default:
			log.Info("Request handled", fields...)
		}
	}
}
