package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 错误码与HTTP状态码映射
var errorStatusMap = map[ErrorCode]int{
	// 系统错误 (1000-1999)
	ErrInternal: http.StatusInternalServerError,
	ErrDatabase: http.StatusInternalServerError,

	// 流程错误 (2000-2999)
	ErrNotFound:   http.StatusNotFound,
	ErrValidation: http.StatusOK,

	// 业务错误 (3000-3999)
	ErrUserNotFound:  http.StatusNotFound,
	ErrUserExists:    http.StatusOK,
	ErrGroupNotFound: http.StatusNotFound,
	ErrPostNotFound:  http.StatusNotFound,
}

// StatusOf 返回错误对应的HTTP状态码
func StatusOf(err error) int {
	if appErr, ok := err.(*AppError); ok {
		if status := errorStatusMap[appErr.Code]; status != 0 {
			return status
		}
	}
	return http.StatusInternalServerError
}

// RenderNotFound 渲染404页面，上下文中回显请求路径
func RenderNotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "404.html", gin.H{
		"path": c.Request.URL.Path,
	})
	c.Abort()
}

// RenderServerError 渲染500页面
func RenderServerError(c *gin.Context) {
	c.HTML(http.StatusInternalServerError, "500.html", gin.H{})
	c.Abort()
}

// HandleError 统一处理错误：404走404页面，其余走500页面
func HandleError(c *gin.Context, err error) {
	switch StatusOf(err) {
	case http.StatusNotFound:
		RenderNotFound(c)
	default:
		_ = c.Error(err)
		RenderServerError(c)
	}
}
