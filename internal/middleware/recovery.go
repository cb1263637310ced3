package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dealdock/dealdock/pkg/errors"
	"github.com/dealdock/dealdock/pkg/logger"
	"github.com/dealdock/dealdock/pkg/response"
)

// Recovery converts panics into a generic 500 response. The panic value stays
// in the server log only.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.WithModule("http").Error("panic recovered",
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.Any("panic", r),
				)
				response.Error(c, errors.ErrInternalServer)
				c.Abort()
			}
		}()
		c.Next()
	}
}

// NotFoundHandler answers unknown routes with the standard error envelope.
func NotFoundHandler(c *gin.Context) {
	response.Error(c, errors.ErrNotFound)
}
