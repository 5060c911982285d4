// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"storycraftor-api/internal/interfaces/http/dto"
	"storycraftor-api/pkg/errors"
	"storycraftor-api/pkg/logger"
)

// respondError 按错误码渲染统一错误响应
// 5xx 记录错误日志，4xx 只记录调试信息
func respondError(c *gin.Context, err error) {
	appErr := errors.AsAppError(err)

	if appErr.HTTPStatus >= 500 {
		logger.Error(c.Request.Context(), "request failed", err,
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		)
	} else {
		logger.Debug(c.Request.Context(), "request rejected",
			"path", c.Request.URL.Path,
			"code", string(appErr.Code),
			"message", appErr.Message,
		)
	}

	dto.ErrorWithDetail(c, appErr.HTTPStatus, appErr.Message, appErr.Detail)
}

// currentUserID 取认证中间件注入的用户 ID
func currentUserID(c *gin.Context) string {
	return c.GetString("user_id")
}
