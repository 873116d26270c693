package errs

import (
	"github.com/gin-gonic/gin"
)

const errorTitleKey = "error-title"

var _ ErrorHandler = (*GinErrorHandler)(nil)

type GinErrorHandler struct {
	context *gin.Context
}

func NewGinErrorHandler(c *gin.Context, title string) *GinErrorHandler {
	c.Set(errorTitleKey, title)
	return &GinErrorHandler{context: c}
}

func (e *GinErrorHandler) PublicError(statusCode int, err error) {
	e.context.Status(statusCode)
	e.context.Error(err).SetType(gin.ErrorTypePublic)
}

func (e *GinErrorHandler) PrivateError(err error) {
	e.context.Error(err).SetType(gin.ErrorTypePrivate)
}

func ErrorTitle(c *gin.Context) string {
	return c.GetString(errorTitleKey)
}
