package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devwithnaveed/cineverse-api/internal/service"
	"github.com/devwithnaveed/cineverse-api/internal/utils"
)

// CreateGenreRequest 创建类型入参，名称全局唯一
type CreateGenreRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	MovieIDs    []uint `json:"movieIds"`
}

// UpdateGenreRequest 更新类型入参，缺省字段保持原值
type UpdateGenreRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1"`
	Description *string `json:"description"`
	MovieIDs    *[]uint `json:"movieIds"`
}

// CreateGenre 创建类型
func (h *Handler) CreateGenre(c *gin.Context) {
	var req CreateGenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	genre, err := h.Genres.Create(req.Name, req.Description, req.MovieIDs)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, genre)
}

// ListGenres 类型列表
func (h *Handler) ListGenres(c *gin.Context) {
	genres, err := h.Genres.List()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, genres)
}

// GetGenre 类型详情，含归属电影
func (h *Handler) GetGenre(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	genre, err := h.Genres.Get(id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, genre)
}

// UpdateGenre 更新类型，movieIds 给出时整体替换归属集合
func (h *Handler) UpdateGenre(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateGenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	genre, err := h.Genres.Update(id, service.UpdateGenreInput{
		Name:        req.Name,
		Description: req.Description,
		MovieIDs:    req.MovieIDs,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, genre)
}

// DeleteGenre 删除类型
func (h *Handler) DeleteGenre(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.Genres.Remove(id); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
