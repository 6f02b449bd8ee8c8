package user

import (
	"net/http"
	"strconv"

	"blog-backend/internal/errors"
	"blog-backend/internal/middleware"
	"blog-backend/internal/model"
	"blog-backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Profile 个人主页：作者的帖子分页列表和关注统计
func (h *UserHandler) Profile(c *gin.Context) {
	author := h.findAuthor(c)
	if author == nil {
		return
	}

	paginator, page, err := util.FetchPage(func(p int) ([]*model.Post, int, error) {
		return h.blogService.ListByAuthor(author.ID, p, h.perPage)
	}, pageNumber(c), h.perPage)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	followersCount, err := h.blogService.CountFollowers(author.ID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	followingsCount, err := h.blogService.CountFollowing(author.ID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	isFollowing := false
	if viewerID, ok := middleware.UserID(c); ok {
		isFollowing, err = h.blogService.IsFollowing(viewerID, author.ID)
		if err != nil {
			errors.HandleError(c, err)
			return
		}
	}

	c.HTML(http.StatusOK, "profile.html", gin.H{
		"author":           author,
		"page":             page,
		"paginator":        paginator,
		"posts_count":      paginator.Total,
		"followers_count":  followersCount,
		"followings_count": followingsCount,
		"is_following":     isFollowing,
	})
}

// ProfileFollow 关注作者。重复关注和关注自己都静默忽略
func (h *UserHandler) ProfileFollow(c *gin.Context) {
	author := h.findAuthor(c)
	if author == nil {
		return
	}

	viewerID, _ := middleware.UserID(c)
	if err := h.blogService.Follow(viewerID, author.ID); err != nil {
		util.Logger.Error("关注失败", zap.Error(err),
			zap.Int("follower_id", viewerID), zap.Int("author_id", author.ID))
		errors.HandleError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/"+author.Username+"/")
}

// ProfileUnfollow 取消关注，未关注时同样静默成功
func (h *UserHandler) ProfileUnfollow(c *gin.Context) {
	author := h.findAuthor(c)
	if author == nil {
		return
	}

	viewerID, _ := middleware.UserID(c)
	if err := h.blogService.Unfollow(viewerID, author.ID); err != nil {
		util.Logger.Error("取消关注失败", zap.Error(err),
			zap.Int("follower_id", viewerID), zap.Int("author_id", author.ID))
		errors.HandleError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/"+author.Username+"/")
}

func (h *UserHandler) findAuthor(c *gin.Context) *model.User {
	username := c.Param("username")

	author, err := h.userService.GetUserByUsername(username)
	if err != nil {
		errors.HandleError(c, err)
		return nil
	}
	if author == nil {
		errors.RenderNotFound(c)
		return nil
	}
	return author
}

func pageNumber(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
