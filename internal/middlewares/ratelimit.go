package middlewares

import (
	"errors"
	"net/http"

	"github.com/btmxh/ytmeta/internal/errs"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

var rateLimitError = errors.New("Rate limit exceeded.")

// RateLimitMiddleware applies a process-wide token bucket. Extraction is
// expensive (one yt-dlp process per cache miss), so a global bound is enough.
func RateLimitMiddleware(limit rate.Limit, burst int) gin.HandlerFunc {
	limiter := rate.NewLimiter(limit, burst)
	return func(ctx *gin.Context) {
		if !limiter.Allow() {
			handler := errs.NewGinErrorHandler(ctx, "Rate limit error")
			handler.PublicError(http.StatusTooManyRequests, rateLimitError)
			ctx.Abort()
			return
		}

		ctx.Next()
	}
}
