package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devwithnaveed/cineverse-api/internal/handler"
	"github.com/devwithnaveed/cineverse-api/internal/middleware"
)

// RegisterRoutes 注册全部路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler, limiter *middleware.RateLimiter) {
	secret := h.Config.AppSecret
	cacheTTL := h.Config.CacheTTL

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 上传的海报与预告片以静态文件方式对外提供
	r.Static("/uploads", h.Config.UploadDir)

	// 认证
	auth := r.Group("/auth")
	{
		auth.POST("/login", limiter.PerMinute(5), h.Login)
	}

	// 用户：注册公开，资料需登录，管理操作仅管理员
	users := r.Group("/users")
	{
		users.POST("/register", limiter.PerMinute(3), h.Register)
		users.GET("/profile", middleware.RequireAuth(secret), h.Profile)

		admin := users.Group("", middleware.RequireAuth(secret), middleware.RequireAdmin())
		{
			admin.GET("", h.ListUsers)
			admin.GET("/:id", h.GetUser)
			admin.PATCH("/:id", h.UpdateUser)
			admin.DELETE("/:id", h.DeleteUser)
		}
	}

	// 电影：读公开且走响应缓存，写需登录
	movies := r.Group("/movies")
	{
		movies.GET("", middleware.CacheResponse(cacheTTL), h.ListMovies)
		movies.GET("/:id", middleware.CacheResponse(cacheTTL), h.GetMovie)

		movies.POST("", middleware.RequireAuth(secret), h.CreateMovie)
		movies.PATCH("/:id", middleware.RequireAuth(secret), h.UpdateMovie)
		movies.DELETE("/:id", middleware.RequireAuth(secret), h.DeleteMovie)
	}

	// 演员：读公开，增改需登录，删除仅管理员
	actors := r.Group("/actors")
	{
		actors.GET("", middleware.CacheResponse(cacheTTL), h.ListActors)
		actors.GET("/:id", middleware.CacheResponse(cacheTTL), h.GetActor)

		actors.POST("", middleware.RequireAuth(secret), h.CreateActor)
		actors.PATCH("/:id", middleware.RequireAuth(secret), h.UpdateActor)
		actors.DELETE("/:id", middleware.RequireAuth(secret), middleware.RequireAdmin(), h.DeleteActor)
	}

	// 类型：读公开，写需登录
	genres := r.Group("/genres")
	{
		genres.GET("", middleware.CacheResponse(cacheTTL), h.ListGenres)
		genres.GET("/:id", middleware.CacheResponse(cacheTTL), h.GetGenre)

		genres.POST("", middleware.RequireAuth(secret), h.CreateGenre)
		genres.PATCH("/:id", middleware.RequireAuth(secret), h.UpdateGenre)
		genres.DELETE("/:id", middleware.RequireAuth(secret), h.DeleteGenre)
	}

	// 影评：读公开，写需登录，改删仅作者或管理员（服务层判定）
	reviews := r.Group("/reviews")
	{
		reviews.GET("", h.ListReviews)
		reviews.GET("/:id", h.GetReview)

		reviews.POST("", middleware.RequireAuth(secret), h.CreateReview)
		reviews.PATCH("/:id", middleware.RequireAuth(secret), h.UpdateReview)
		reviews.DELETE("/:id", middleware.RequireAuth(secret), h.DeleteReview)
	}
}
