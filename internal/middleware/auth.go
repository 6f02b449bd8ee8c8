package middleware

import (
	"net/url"

	"blog-backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionCookie 是存放会话令牌的cookie名称
const SessionCookie = "session"

// LoginPath 是未登录用户被重定向到的登录页
const LoginPath = "/auth/login/"

// CurrentUser 尝试从会话cookie中恢复当前用户，
// 匿名访问也放行，只是不设置 user_id
func CurrentUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			c.Next()
			return
		}

		userID, err := util.ValidateToken(token)
		if err != nil {
			util.Logger.Debug("会话令牌无效", zap.Error(err))
			c.Next()
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}

// RequireAuth 要求已登录。未登录时重定向到登录页，
// 并通过 next 参数带上原始路径以便登录后跳回
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get("user_id"); !exists {
			next := url.Values{}
			next.Set("next", c.Request.URL.Path)
			c.Redirect(302, LoginPath+"?"+next.Encode())
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserID 返回当前登录用户的ID，第二个返回值表示是否已登录
func UserID(c *gin.Context) (int, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	id, ok := v.(int)
	return id, ok
}
