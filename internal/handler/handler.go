package handler

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/devwithnaveed/cineverse-api/internal/config"
	"github.com/devwithnaveed/cineverse-api/internal/repository"
	"github.com/devwithnaveed/cineverse-api/internal/service"
	"github.com/devwithnaveed/cineverse-api/internal/utils"
)

// Handler HTTP 处理器
type Handler struct {
	Repos   *repository.Repositories
	Config  *config.Config
	Movies  *service.MovieService
	Actors  *service.ActorService
	Genres  *service.GenreService
	Reviews *service.ReviewService
	Users   *service.UserService
	Auth    *service.AuthService
	Uploads *service.UploadService
}

// NewHandler 创建处理器并组装服务
func NewHandler(repos *repository.Repositories, cfg *config.Config) (*Handler, error) {
	uploads, err := service.NewUploadService(cfg.UploadDir)
	if err != nil {
		return nil, err
	}

	movies := service.NewMovieService(repos.Movie, repos.Actor, repos.Genre, cfg.CacheTTL)

	return &Handler{
		Repos:   repos,
		Config:  cfg,
		Movies:  movies,
		Actors:  service.NewActorService(repos.Actor, repos.Movie),
		Genres:  service.NewGenreService(repos.Genre, repos.Movie),
		Reviews: service.NewReviewService(repos.Review, movies),
		Users:   service.NewUserService(repos.User),
		Auth:    service.NewAuthService(repos.User),
		Uploads: uploads,
	}, nil
}

// handleServiceError 将服务层错误映射为 HTTP 响应
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMovieNotFound),
		errors.Is(err, service.ErrActorNotFound),
		errors.Is(err, service.ErrGenreNotFound),
		errors.Is(err, service.ErrReviewNotFound),
		errors.Is(err, service.ErrUserNotFound):
		utils.NotFound(c, err.Error())
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrGenreNameTaken):
		utils.Conflict(c, err.Error())
	case errors.Is(err, service.ErrForbidden):
		utils.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrAccountDisabled):
		utils.Unauthorized(c, err.Error())
	default:
		log.Printf("服务内部错误: %v", err)
		utils.InternalServerError(c, "")
	}
}
