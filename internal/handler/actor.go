package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/devwithnaveed/cineverse-api/internal/service"
	"github.com/devwithnaveed/cineverse-api/internal/utils"
)

// CreateActorRequest 创建演员入参
type CreateActorRequest struct {
	Name        string `json:"name" binding:"required"`
	DateOfBirth string `json:"dateOfBirth" binding:"required,datetime=2006-01-02"`
	MovieIDs    []uint `json:"movieIds"`
}

// UpdateActorRequest 更新演员入参，缺省字段保持原值
type UpdateActorRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1"`
	DateOfBirth *string `json:"dateOfBirth" binding:"omitempty,datetime=2006-01-02"`
	MovieIDs    *[]uint `json:"movieIds"`
}

// CreateActor 创建演员
func (h *Handler) CreateActor(c *gin.Context) {
	var req CreateActorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	// 格式已由 datetime 规则校验
	dateOfBirth, _ := time.Parse(releaseDateLayout, req.DateOfBirth)

	actor, err := h.Actors.Create(req.Name, dateOfBirth, req.MovieIDs)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, actor)
}

// ListActors 演员列表
func (h *Handler) ListActors(c *gin.Context) {
	actors, err := h.Actors.List()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, actors)
}

// GetActor 演员详情，含参演电影
func (h *Handler) GetActor(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	actor, err := h.Actors.Get(id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, actor)
}

// UpdateActor 更新演员，movieIds 给出时整体替换参演集合
func (h *Handler) UpdateActor(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateActorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	in := service.UpdateActorInput{
		Name:     req.Name,
		MovieIDs: req.MovieIDs,
	}
	if req.DateOfBirth != nil {
		dateOfBirth, _ := time.Parse(releaseDateLayout, *req.DateOfBirth)
		in.DateOfBirth = &dateOfBirth
	}

	actor, err := h.Actors.Update(id, in)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, actor)
}

// DeleteActor 删除演员（仅管理员）
func (h *Handler) DeleteActor(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.Actors.Remove(id); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
