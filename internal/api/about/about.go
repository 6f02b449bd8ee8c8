package about

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AboutHandler 渲染两个静态页面：作者介绍和技术栈介绍
type AboutHandler struct{}

func NewAboutHandler() *AboutHandler {
	return &AboutHandler{}
}

// Author 作者介绍页
func (h *AboutHandler) Author(c *gin.Context) {
	c.HTML(http.StatusOK, "about_author.html", gin.H{})
}

// Tech 技术栈介绍页
func (h *AboutHandler) Tech(c *gin.Context) {
	c.HTML(http.StatusOK, "about_tech.html", gin.H{})
}
