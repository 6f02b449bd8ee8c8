package user

import (
	"net/http"
	"net/url"
	"strings"

	"blog-backend/internal/errors"
	"blog-backend/internal/middleware"
	"blog-backend/internal/model"
	"blog-backend/internal/service"
	"blog-backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// UserHandler 处理注册、登录、登出和个人主页
type UserHandler struct {
	userService service.UserServiceInterface
	blogService service.BlogServiceInterface
	perPage     int
}

func NewUserHandler(userService service.UserServiceInterface, blogService service.BlogServiceInterface, perPage int) *UserHandler {
	return &UserHandler{
		userService: userService,
		blogService: blogService,
		perPage:     perPage,
	}
}

// SignupForm 注册表单
type SignupForm struct {
	Username string `form:"username" binding:"required,min=3,max=50,alphanum"`
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required,min=8"`
}

// LoginForm 登录表单，next 为登录后跳转的地址
type LoginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
	Next     string `form:"next"`
}

// Signup 注册新用户，成功后自动登录并跳转首页
func (h *UserHandler) Signup(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		c.HTML(http.StatusOK, "signup.html", gin.H{
			"form":   &SignupForm{},
			"errors": map[string]string{},
		})
		return
	}

	var form SignupForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusOK, "signup.html", gin.H{
			"form":   &form,
			"errors": formErrors(err),
		})
		return
	}

	user := &model.User{
		Username: form.Username,
		Email:    form.Email,
	}
	if err := h.userService.Register(user, form.Password); err != nil {
		if errors.IsCode(err, errors.ErrUserExists) {
			c.HTML(http.StatusOK, "signup.html", gin.H{
				"form":   &form,
				"errors": map[string]string{"Form": "用户名或邮箱已被注册"},
			})
			return
		}
		util.Logger.Error("用户注册失败", zap.Error(err), zap.String("username", form.Username))
		errors.HandleError(c, err)
		return
	}

	h.setSession(c, user.ID)
	c.Redirect(http.StatusFound, "/")
}

// Login 登录，带 next 参数时登录成功后跳回原页面
func (h *UserHandler) Login(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		c.HTML(http.StatusOK, "login.html", gin.H{
			"form":   &LoginForm{Next: c.Query("next")},
			"errors": map[string]string{},
		})
		return
	}

	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusOK, "login.html", gin.H{
			"form":   &form,
			"errors": formErrors(err),
		})
		return
	}

	user, err := h.userService.Login(form.Username, form.Password)
	if err != nil {
		c.HTML(http.StatusOK, "login.html", gin.H{
			"form":   &form,
			"errors": map[string]string{"Form": "用户名或密码错误"},
		})
		return
	}

	h.setSession(c, user.ID)
	c.Redirect(http.StatusFound, safeNext(form.Next))
}

// Logout 清除会话 cookie 并回首页
func (h *UserHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

func (h *UserHandler) setSession(c *gin.Context, userID int) {
	token, err := util.GenerateToken(userID)
	if err != nil {
		util.Logger.Error("生成会话令牌失败", zap.Error(err), zap.Int("user_id", userID))
		return
	}
	c.SetCookie(middleware.SessionCookie, token, 24*3600, "/", "", false, true)
}

// safeNext 只接受站内相对路径，防止开放重定向。
// 反斜杠会被浏览器归一化成斜杠，所以也一并拒绝
func safeNext(next string) string {
	if next == "" || strings.Contains(next, "\\") {
		return "/"
	}
	u, err := url.Parse(next)
	if err != nil || u.IsAbs() || u.Host != "" || next[0] != '/' {
		return "/"
	}
	return next
}

func formErrors(err error) map[string]string {
	msgs := map[string]string{}
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		msgs["Form"] = "表单数据无效"
		return msgs
	}
	for _, fe := range validationErrs {
		switch fe.Tag() {
		case "required":
			msgs[fe.Field()] = "该字段不能为空"
		case "email":
			msgs[fe.Field()] = "邮箱格式不正确"
		case "min":
			msgs[fe.Field()] = "长度不足"
		case "max":
			msgs[fe.Field()] = "内容过长"
		case "alphanum":
			msgs[fe.Field()] = "只能包含字母和数字"
		default:
			msgs[fe.Field()] = "字段无效"
		}
	}
	return msgs
}
