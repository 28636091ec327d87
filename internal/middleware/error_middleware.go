package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"microapi-go/internal/apperrors"
	"microapi-go/internal/i18n"
	"microapi-go/pkg/logging"
	"microapi-go/response"
)

// GlobalErrorMiddleware 把 handler 通过 c.Error 记录的错误渲染为响应
func GlobalErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		ctx := c.Request.Context()
		for _, ginErr := range c.Errors {
			var appErr *apperrors.AppError
			if !errors.As(ginErr.Err, &appErr) {
				continue
			}

			if appErr.Code >= http.StatusInternalServerError {
				logging.Logger.Error("request failed",
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.Error(appErr),
				)
			}

			canonical := i18n.Canonical(appErr.Message, nil)
			if appErr.PlainText {
				c.String(appErr.Code, canonical)
			} else {
				c.JSON(appErr.Code, response.ErrorFromAppError(appErr, canonical, i18n.T(ctx, appErr.Message, nil)))
			}
			c.Abort()
			return
		}

		// 默认处理未定义的错误
		logging.Logger.Error("unhandled request error",
			zap.String("path", c.Request.URL.Path),
			zap.String("errors", c.Errors.String()),
		)
		canonical := i18n.Canonical(apperrors.MsgSystemError, nil)
		body := response.WithMessage(response.Error(canonical), canonical, i18n.T(ctx, apperrors.MsgSystemError, nil))
		c.AbortWithStatusJSON(http.StatusInternalServerError, body)
	}
}
