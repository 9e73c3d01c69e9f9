package handler

import (
	"errors"

	"locallens-server/internal/service"
	"locallens-server/pkg/response"

	"github.com/gin-gonic/gin"
)

// respondError 把业务错误分类映射为统一响应
// 前置条件类错误在这里全部收口，只有存储不可用返回503
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotAuthenticated):
		response.Unauthorized(c, "用户未认证")
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrConflict):
		response.Conflict(c, err.Error())
	case errors.Is(err, service.ErrInvalid):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrUnavailable):
		response.Unavailable(c, "存储暂不可用，请稍后重试")
	default:
		response.InternalError(c, err.Error())
	}
}
