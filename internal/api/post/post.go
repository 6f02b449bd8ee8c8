package post

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"blog-backend/internal/cache"
	"blog-backend/internal/errors"
	"blog-backend/internal/middleware"
	"blog-backend/internal/model"
	"blog-backend/internal/service"
	"blog-backend/internal/storage"
	"blog-backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PostHandler 处理帖子相关的页面请求
type PostHandler struct {
	blogService service.BlogServiceInterface
	storage     storage.ImageStorage
	feedCache   *cache.PageCache
	perPage     int
}

func NewPostHandler(blogService service.BlogServiceInterface, storage storage.ImageStorage, feedCache *cache.PageCache, perPage int) *PostHandler {
	return &PostHandler{
		blogService: blogService,
		storage:     storage,
		feedCache:   feedCache,
		perPage:     perPage,
	}
}

// Index 首页：全部帖子按发布时间倒序分页
func (h *PostHandler) Index(c *gin.Context) {
	paginator, page, err := util.FetchPage(func(p int) ([]*model.Post, int, error) {
		return h.blogService.ListRecent(p, h.perPage)
	}, pageNumber(c), h.perPage)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"page":      page,
		"paginator": paginator,
	})
}

// GroupPosts 分组页：按 slug 过滤帖子，分组不存在时返回404
func (h *PostHandler) GroupPosts(c *gin.Context) {
	slug := c.Param("slug")

	group, err := h.blogService.GetGroupBySlug(slug)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	if group == nil {
		errors.HandleError(c, errors.New(errors.ErrGroupNotFound, "分组不存在"))
		return
	}

	paginator, page, err := util.FetchPage(func(p int) ([]*model.Post, int, error) {
		return h.blogService.ListByGroup(group.ID, p, h.perPage)
	}, pageNumber(c), h.perPage)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.HTML(http.StatusOK, "group.html", gin.H{
		"group":     group,
		"page":      page,
		"paginator": paginator,
	})
}

// NewPost 发帖。GET渲染空表单；POST校验通过后创建帖子、
// 清空首页缓存并重定向到首页；校验失败时以200重新渲染表单
func (h *PostHandler) NewPost(c *gin.Context) {
	groups, err := h.blogService.ListGroups()
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	if c.Request.Method != http.MethodPost {
		c.HTML(http.StatusOK, "post_form.html", gin.H{
			"form":    &PostForm{Errors: map[string]string{}},
			"groups":  groups,
			"is_edit": false,
		})
		return
	}

	form := parsePostForm(c.PostForm("text"), c.PostForm("group"), groups)
	if !form.Valid() {
		c.HTML(http.StatusOK, "post_form.html", gin.H{
			"form":    form,
			"groups":  groups,
			"is_edit": false,
		})
		return
	}

	userID, _ := middleware.UserID(c)
	post := &model.Post{
		AuthorID: userID,
		GroupID:  form.groupID(),
		Text:     form.Text,
	}

	imageURL, err := h.uploadImage(c)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	post.ImageURL = imageURL

	if err := h.blogService.CreatePost(post); err != nil {
		util.Logger.Error("创建帖子失败", zap.Error(err))
		errors.HandleError(c, err)
		return
	}

	// 新帖子必须在缓存失效后才对首页可见
	h.feedCache.Flush()
	c.Redirect(http.StatusFound, "/")
}

// PostView 单帖页：帖子、按时间正序的评论、作者统计和空的评论表单
func (h *PostHandler) PostView(c *gin.Context) {
	post := h.findPost(c)
	if post == nil {
		return
	}

	comments, err := h.blogService.ListComments(post.ID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	ctx, err := h.authorStats(post)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	ctx["post"] = post
	ctx["comments_list"] = comments
	ctx["form"] = &CommentForm{}

	c.HTML(http.StatusOK, "post.html", ctx)
}

// PostEdit 编辑帖子。非作者无论什么请求方法都直接302回帖子页，
// 不展示错误；作者提交合法数据时原地更新，发布时间不变
func (h *PostHandler) PostEdit(c *gin.Context) {
	post := h.findPost(c)
	if post == nil {
		return
	}

	userID, _ := middleware.UserID(c)
	if userID != post.AuthorID {
		c.Redirect(http.StatusFound, postPath(post))
		return
	}

	groups, err := h.blogService.ListGroups()
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	if c.Request.Method != http.MethodPost {
		form := &PostForm{Text: post.Text, Errors: map[string]string{}}
		if post.GroupID != nil {
			form.GroupID = *post.GroupID
		}
		c.HTML(http.StatusOK, "post_form.html", gin.H{
			"form":    form,
			"groups":  groups,
			"is_edit": true,
			"post":    post,
		})
		return
	}

	form := parsePostForm(c.PostForm("text"), c.PostForm("group"), groups)
	if !form.Valid() {
		c.HTML(http.StatusOK, "post_form.html", gin.H{
			"form":    form,
			"groups":  groups,
			"is_edit": true,
			"post":    post,
		})
		return
	}

	post.Text = form.Text
	post.GroupID = form.groupID()

	imageURL, err := h.uploadImage(c)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	if imageURL != "" {
		post.ImageURL = imageURL
	}

	if err := h.blogService.UpdatePost(post); err != nil {
		util.Logger.Error("更新帖子失败", zap.Error(err), zap.Int("post_id", post.ID))
		errors.HandleError(c, err)
		return
	}

	c.Redirect(http.StatusFound, postPath(post))
}

// CommentForm 是评论表单的回显数据
type CommentForm struct {
	Text string
}

// AddComment 发表评论。内容为空时不创建评论也不报错，
// 无论成功与否都302回帖子页
func (h *PostHandler) AddComment(c *gin.Context) {
	post := h.findPost(c)
	if post == nil {
		return
	}

	text := c.PostForm("text")
	if strings.TrimSpace(text) != "" {
		userID, _ := middleware.UserID(c)
		comment := &model.Comment{
			AuthorID: userID,
			PostID:   post.ID,
			Text:     text,
		}
		if err := h.blogService.CreateComment(comment); err != nil {
			errors.HandleError(c, err)
			return
		}
	}

	c.Redirect(http.StatusFound, postPath(post))
}

// FollowIndex 关注页：只显示当前用户关注的作者的帖子
func (h *PostHandler) FollowIndex(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	paginator, page, err := util.FetchPage(func(p int) ([]*model.Post, int, error) {
		return h.blogService.ListFollowed(userID, p, h.perPage)
	}, pageNumber(c), h.perPage)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.HTML(http.StatusOK, "follow.html", gin.H{
		"page":      page,
		"paginator": paginator,
	})
}

// findPost 按路径中的用户名和帖子ID查找，找不到时渲染404并返回 nil
func (h *PostHandler) findPost(c *gin.Context) *model.Post {
	username := c.Param("username")
	postID, err := strconv.Atoi(c.Param("post_id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrPostNotFound, "帖子不存在"))
		return nil
	}

	post, err := h.blogService.GetPost(username, postID)
	if err != nil {
		errors.HandleError(c, err)
		return nil
	}
	if post == nil {
		errors.HandleError(c, errors.New(errors.ErrPostNotFound, "帖子不存在"))
		return nil
	}
	return post
}

func (h *PostHandler) authorStats(post *model.Post) (gin.H, error) {
	postsCount, err := h.blogService.CountByAuthor(post.AuthorID)
	if err != nil {
		return nil, err
	}
	followersCount, err := h.blogService.CountFollowers(post.AuthorID)
	if err != nil {
		return nil, err
	}
	followingsCount, err := h.blogService.CountFollowing(post.AuthorID)
	if err != nil {
		return nil, err
	}
	return gin.H{
		"author":           post.Author,
		"posts_count":      postsCount,
		"followers_count":  followersCount,
		"followings_count": followingsCount,
	}, nil
}

// uploadImage 处理可选的配图上传，未上传时返回空串
func (h *PostHandler) uploadImage(c *gin.Context) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return "", nil
	}

	path := fmt.Sprintf("posts/%s", util.GenerateUniqueFilename(file.Filename))
	imageURL, err := h.storage.UploadFile(file, path)
	if err != nil {
		util.Logger.Error("图片上传失败", zap.Error(err))
		return "", err
	}
	return imageURL, nil
}

func postPath(post *model.Post) string {
	return fmt.Sprintf("/%s/%d/", post.Author.Username, post.ID)
}

func pageNumber(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
