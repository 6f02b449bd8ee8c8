package main

import (
	"blog-backend/config"
	"blog-backend/internal/api/about"
	"blog-backend/internal/api/post"
	"blog-backend/internal/api/user"
	"blog-backend/internal/cache"
	"blog-backend/internal/errors"
	"blog-backend/internal/middleware"
	"blog-backend/internal/repository/mysql"
	"blog-backend/internal/service"
	"blog-backend/internal/storage"
	"blog-backend/internal/util"
	"blog-backend/internal/web"
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			util.Logger.Error("程序发生严重错误", zap.Any("error", r))
		}
	}()

	// 初始化配置
	config.Init()

	// 初始化日志
	util.InitLogger(config.AppConfig.LogLevel)
	defer util.Logger.Sync()

	util.Logger.Info("应用程序启动")

	// 设置数据库连接字符串
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		config.AppConfig.DBUser,
		config.AppConfig.DBPassword,
		config.AppConfig.DBHost,
		config.AppConfig.DBPort,
		config.AppConfig.DBName)

	// 连接数据库
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		util.Logger.Fatal("连接数据库失败", zap.Error(err))
	}
	defer db.Close()

	// 测试数据库连接
	err = db.Ping()
	if err != nil {
		util.Logger.Fatal("数据库连接测试失败", zap.Error(err))
	}
	util.Logger.Info("数据库连接成功")

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	util.Logger.Info("数据库连接池配置完成")

	// 注册自定义验证器
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("slug", util.ValidateSlug)
	}

	// 确保上传文件夹存在
	if config.AppConfig.StorageBackend == "local" {
		ensureUploadsFolder()
	}

	// 初始化图片存储后端
	imageStorage, err := storage.New(config.AppConfig)
	if err != nil {
		util.Logger.Fatal("初始化图片存储失败", zap.Error(err))
	}

	// 初始化存储库、服务和处理器
	userRepo := mysql.NewUserRepository(db)
	postRepo := mysql.NewPostRepository(db)
	groupRepo := mysql.NewGroupRepository(db)
	commentRepo := mysql.NewCommentRepository(db)
	followRepo := mysql.NewFollowRepository(db)

	userService := service.NewUserService(userRepo)
	blogService := service.NewBlogService(postRepo, groupRepo, commentRepo, followRepo)

	feedCache := cache.NewPageCache(time.Duration(config.AppConfig.FeedCacheTTL) * time.Second)

	postHandler := post.NewPostHandler(blogService, imageStorage, feedCache, config.AppConfig.PerPage)
	userHandler := user.NewUserHandler(userService, blogService, config.AppConfig.PerPage)
	aboutHandler := about.NewAboutHandler()

	// 设置 Gin 路由
	r := gin.Default()
	r.SetHTMLTemplate(web.Templates())

	// 添加中间件
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.CurrentUser())

	// 配置 CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{config.AppConfig.BaseURL}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "HEAD", "OPTIONS"}
	corsConfig.AllowHeaders = []string{
		"Origin",
		"Content-Length",
		"Content-Type",
	}
	r.Use(cors.New(corsConfig))

	// 配置静态文件服务
	if config.AppConfig.StorageBackend == "local" {
		r.Static("/uploads", config.AppConfig.LocalStoragePath)
	}

	// 用户相关路由
	auth := r.Group("/auth")
	{
		auth.GET("/signup/", userHandler.Signup)
		auth.POST("/signup/", userHandler.Signup)
		auth.GET("/login/", userHandler.Login)
		auth.POST("/login/", userHandler.Login)
		auth.GET("/logout/", userHandler.Logout)
		auth.POST("/logout/", userHandler.Logout)
	}

	// 帖子相关路由。首页经过页面缓存中间件，发新帖时整体失效
	r.GET("/", middleware.CachePage(feedCache), postHandler.Index)
	r.GET("/group/:slug/", postHandler.GroupPosts)
	r.GET("/group/new/", middleware.RequireAuth(), postHandler.NewGroup)
	r.POST("/group/new/", middleware.RequireAuth(), postHandler.NewGroup)
	r.GET("/new/", middleware.RequireAuth(), postHandler.NewPost)
	r.POST("/new/", middleware.RequireAuth(), postHandler.NewPost)
	r.GET("/follow/", middleware.RequireAuth(), postHandler.FollowIndex)

	// 静态介绍页
	r.GET("/about/author/", aboutHandler.Author)
	r.GET("/about/tech/", aboutHandler.Tech)

	// 个人主页和单帖路由
	r.GET("/:username/", userHandler.Profile)
	r.GET("/:username/follow/", middleware.RequireAuth(), userHandler.ProfileFollow)
	r.GET("/:username/unfollow/", middleware.RequireAuth(), userHandler.ProfileUnfollow)
	r.GET("/:username/:post_id/", postHandler.PostView)
	r.GET("/:username/:post_id/edit/", middleware.RequireAuth(), postHandler.PostEdit)
	r.POST("/:username/:post_id/edit/", middleware.RequireAuth(), postHandler.PostEdit)
	r.POST("/:username/:post_id/comment/", middleware.RequireAuth(), postHandler.AddComment)

	// 未匹配的路径渲染404页面
	r.NoRoute(func(c *gin.Context) {
		errors.HandleError(c, errors.New(errors.ErrNotFound, "页面不存在"))
	})

	// 创建一个带有超时的 http.Server
	srv := &http.Server{
		Addr:    ":8080",
		Handler: r,
	}

	// 在一个新的 goroutine 中启动服务器
	go func() {
		util.Logger.Info("服务器正在启动，监听端口 :8080")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			util.Logger.Fatal("启动服务器失败", zap.Error(err))
		}
	}()

	// 等待中断信号以优雅地关闭服务器
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	util.Logger.Info("正在关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		util.Logger.Fatal("服务器强制关闭", zap.Error(err))
	}

	util.Logger.Info("服务器已优雅关闭")
}

// 确保上传文件夹存在
func ensureUploadsFolder() {
	uploadsPath := config.AppConfig.LocalStoragePath
	if err := os.MkdirAll(uploadsPath, 0755); err != nil {
		util.Logger.Fatal("创建上传文件夹失败", zap.Error(err), zap.String("path", uploadsPath))
	}
	util.Logger.Info("上传文件夹已创建或已存在", zap.String("path", uploadsPath))
}
