package middlewares

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/btmxh/ytmeta/internal/errs"
	"github.com/gin-gonic/gin"
)

// ErrorMiddleware renders collected public errors as a JSON body after the
// handler chain finishes. Private errors stay in the log only.
func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		title := errs.ErrorTitle(c)
		slog.Warn("Error handling request", "title", title, "errors", c.Errors)

		var descriptions []string
		for _, err := range c.Errors {
			if err.Type == gin.ErrorTypePublic {
				descriptions = append(descriptions, err.Error())
			}
		}

		description := "Internal server error"
		if len(descriptions) > 0 {
			description = strings.Join(descriptions, "; ")
		}

		if c.Writer.Written() {
			return
		}

		status := c.Writer.Status()
		if status < http.StatusBadRequest {
			status = http.StatusInternalServerError
		}

		c.JSON(status, gin.H{"detail": description})
	}
}
