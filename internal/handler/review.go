package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/devwithnaveed/cineverse-api/internal/middleware"
	"github.com/devwithnaveed/cineverse-api/internal/service"
	"github.com/devwithnaveed/cineverse-api/internal/utils"
)

// CreateReviewRequest 创建影评入参，作者取自登录态
type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
	MovieID uint   `json:"movieId" binding:"required"`
}

// UpdateReviewRequest 更新影评入参
type UpdateReviewRequest struct {
	Rating  *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Comment *string `json:"comment"`
}

// CreateReview 创建影评
func (h *Handler) CreateReview(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	review, err := h.Reviews.Create(req.Rating, req.Comment, req.MovieID, middleware.GetUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}

// ListReviews 影评列表，带 ?movieId= 时只返回该电影的影评
func (h *Handler) ListReviews(c *gin.Context) {
	if raw := c.Query("movieId"); raw != "" {
		movieID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			utils.BadRequest(c, "非法的 movieId")
			return
		}

		reviews, err := h.Reviews.ListByMovie(uint(movieID))
		if err != nil {
			handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, reviews)
		return
	}

	reviews, err := h.Reviews.List()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, reviews)
}

// GetReview 影评详情
func (h *Handler) GetReview(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	review, err := h.Reviews.Get(id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, review)
}

// UpdateReview 更新影评，仅作者本人或管理员
func (h *Handler) UpdateReview(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	review, err := h.Reviews.Update(id, service.UpdateReviewInput{
		Rating:  req.Rating,
		Comment: req.Comment,
	}, middleware.GetUserID(c), middleware.GetUserRole(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, review)
}

// DeleteReview 删除影评，仅作者本人或管理员
func (h *Handler) DeleteReview(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.Reviews.Remove(id, middleware.GetUserID(c), middleware.GetUserRole(c)); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
