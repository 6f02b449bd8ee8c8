package post

import (
	"net/http"

	"blog-backend/internal/errors"
	"blog-backend/internal/model"
	"blog-backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// GroupForm 建组表单，slug 只允许字母、数字、下划线和连字符
type GroupForm struct {
	Title       string `form:"title" binding:"required,max=200"`
	Slug        string `form:"slug" binding:"required,max=100,slug"`
	Description string `form:"description" binding:"required"`
}

// NewGroup 创建分组。GET渲染空表单，POST校验失败时带错误重新渲染
func (h *PostHandler) NewGroup(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		c.HTML(http.StatusOK, "group_form.html", gin.H{
			"form":   &GroupForm{},
			"errors": map[string]string{},
		})
		return
	}

	var form GroupForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusOK, "group_form.html", gin.H{
			"form":   &form,
			"errors": groupFormErrors(err),
		})
		return
	}

	// slug 重复时提示用户换一个，而不是落到500页
	existing, err := h.blogService.GetGroupBySlug(form.Slug)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	if existing != nil {
		c.HTML(http.StatusOK, "group_form.html", gin.H{
			"form":   &form,
			"errors": map[string]string{"Slug": "该标识已被占用"},
		})
		return
	}

	group := &model.Group{
		Title:       form.Title,
		Slug:        form.Slug,
		Description: form.Description,
	}
	if err := h.blogService.CreateGroup(group); err != nil {
		util.Logger.Error("创建分组失败", zap.Error(err), zap.String("slug", form.Slug))
		errors.HandleError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/group/"+group.Slug+"/")
}

func groupFormErrors(err error) map[string]string {
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
		case "max":
			msgs[fe.Field()] = "内容过长"
		case "slug":
			msgs[fe.Field()] = "标识只能包含字母、数字、下划线和连字符"
		default:
			msgs[fe.Field()] = "字段无效"
		}
	}
	return msgs
}
