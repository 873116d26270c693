package middlewares

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func LogMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		requestId := uuid.NewString()
		ctx.Header("X-Request-Id", requestId)

		slog.Info("Handling request",
			"id", requestId,
			"method", ctx.Request.Method,
			"path", ctx.Request.URL.Path,
		)
		start := time.Now()
		ctx.Next()
		elapsed := time.Since(start)
		slog.Info("Finish handling request",
			"id", requestId,
			"method", ctx.Request.Method,
			"path", ctx.Request.URL.Path,
			"status", ctx.Writer.Status(),
			"time", elapsed,
		)
	}
}
