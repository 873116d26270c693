package middlewares

import (
	"errors"
	"net/http"

	"github.com/btmxh/ytmeta/internal/auth"
	"github.com/btmxh/ytmeta/internal/errs"
	"github.com/gin-gonic/gin"
)

const AUTH_HEADER_NAME = "Authorization"

var unauthorizedError = errors.New("Missing or invalid API key.")

func MustAuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		handler := errs.NewGinErrorHandler(ctx, "Authorization error")
		if !auth.CheckAPIKey(ctx.GetHeader(AUTH_HEADER_NAME)) {
			handler.PublicError(http.StatusUnauthorized, unauthorizedError)
			ctx.Abort()
			return
		}

		ctx.Next()
	}
}
