package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/devwithnaveed/cineverse-api/internal/service"
	"github.com/devwithnaveed/cineverse-api/internal/utils"
)

const releaseDateLayout = "2006-01-02"

// MovieFilterRequest 电影列表查询参数
type MovieFilterRequest struct {
	Title     string `form:"title"`
	GenreID   uint   `form:"genreId"`
	ActorID   uint   `form:"actorId"`
	MinRating int    `form:"minRating" binding:"omitempty,min=1,max=5"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

// CreateMovie 创建电影。请求为 multipart 表单：标量字段 + 逗号分隔的
// actorIds/genreIds + 可选的 poster/trailer 文件
func (h *Handler) CreateMovie(c *gin.Context) {
	title := strings.TrimSpace(c.PostForm("title"))
	description := c.PostForm("description")
	if title == "" || description == "" {
		utils.BadRequest(c, "title 和 description 为必填项")
		return
	}

	releaseDate, err := time.Parse(releaseDateLayout, c.PostForm("releaseDate"))
	if err != nil {
		utils.BadRequest(c, "releaseDate 格式应为 YYYY-MM-DD")
		return
	}

	actorIDs, err := parseIDList(c.PostForm("actorIds"))
	if err != nil || len(actorIDs) == 0 {
		utils.BadRequest(c, "actorIds 应为非空的逗号分隔 ID 列表")
		return
	}

	genreIDs, err := parseIDList(c.PostForm("genreIds"))
	if err != nil || len(genreIDs) == 0 {
		utils.BadRequest(c, "genreIds 应为非空的逗号分隔 ID 列表")
		return
	}

	posterPath, ok := h.saveUpload(c, "poster", service.UploadKindPosters)
	if !ok {
		return
	}
	trailerPath, ok := h.saveUpload(c, "trailer", service.UploadKindTrailers)
	if !ok {
		h.Uploads.Delete(posterPath)
		return
	}

	movie, err := h.Movies.Create(service.CreateMovieInput{
		Title:       title,
		Description: description,
		ReleaseDate: releaseDate,
		Poster:      posterPath,
		TrailerLink: trailerPath,
		ActorIDs:    actorIDs,
		GenreIDs:    genreIDs,
	})
	if err != nil {
		// 引用解析失败时电影未入库，清理已保存的文件
		h.Uploads.Delete(posterPath)
		h.Uploads.Delete(trailerPath)
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, movie)
}

// ListMovies 电影列表，支持标题/类型/演员/最低均分过滤与分页
func (h *Handler) ListMovies(c *gin.Context) {
	var req MovieFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	page, err := h.Movies.List(service.MovieFilter{
		Title:     req.Title,
		GenreID:   req.GenreID,
		ActorID:   req.ActorID,
		MinRating: req.MinRating,
		Page:      req.Page,
		Limit:     req.Limit,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetMovie 电影详情，附带派生均分
func (h *Handler) GetMovie(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	movie, err := h.Movies.GetByID(id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, movie)
}

// UpdateMovie 更新电影，multipart 表单，只应用给出的字段；
// 新上传的海报/预告片会替换并删除旧文件
func (h *Handler) UpdateMovie(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	existing, err := h.Movies.GetByID(id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	var in service.UpdateMovieInput

	if v, present := c.GetPostForm("title"); present {
		in.Title = &v
	}
	if v, present := c.GetPostForm("description"); present {
		in.Description = &v
	}
	if v, present := c.GetPostForm("releaseDate"); present {
		releaseDate, err := time.Parse(releaseDateLayout, v)
		if err != nil {
			utils.BadRequest(c, "releaseDate 格式应为 YYYY-MM-DD")
			return
		}
		in.ReleaseDate = &releaseDate
	}
	if v, present := c.GetPostForm("actorIds"); present {
		ids, err := parseIDList(v)
		if err != nil {
			utils.BadRequest(c, "actorIds 应为逗号分隔 ID 列表")
			return
		}
		in.ActorIDs = &ids
	}
	if v, present := c.GetPostForm("genreIds"); present {
		ids, err := parseIDList(v)
		if err != nil {
			utils.BadRequest(c, "genreIds 应为逗号分隔 ID 列表")
			return
		}
		in.GenreIDs = &ids
	}

	posterPath, ok := h.saveUpload(c, "poster", service.UploadKindPosters)
	if !ok {
		return
	}
	if posterPath != "" {
		in.Poster = &posterPath
	}
	trailerPath, ok := h.saveUpload(c, "trailer", service.UploadKindTrailers)
	if !ok {
		h.Uploads.Delete(posterPath)
		return
	}
	if trailerPath != "" {
		in.TrailerLink = &trailerPath
	}

	movie, err := h.Movies.Update(id, in)
	if err != nil {
		h.Uploads.Delete(posterPath)
		h.Uploads.Delete(trailerPath)
		handleServiceError(c, err)
		return
	}

	// 更新成功后再清理被替换的旧文件
	if posterPath != "" && existing.Poster != "" {
		h.Uploads.Delete(existing.Poster)
	}
	if trailerPath != "" && existing.TrailerLink != "" {
		h.Uploads.Delete(existing.TrailerLink)
	}

	c.JSON(http.StatusOK, movie)
}

// DeleteMovie 删除电影及其媒体文件，影评级联删除
func (h *Handler) DeleteMovie(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	movie, err := h.Movies.Remove(id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	h.Uploads.Delete(movie.Poster)
	h.Uploads.Delete(movie.TrailerLink)

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// saveUpload 保存可选的上传文件，第二个返回值为 false 表示已响应错误
func (h *Handler) saveUpload(c *gin.Context, field, kind string) (string, bool) {
	file, err := c.FormFile(field)
	if err != nil {
		// 未携带该文件字段
		return "", true
	}

	path, err := h.Uploads.Save(file, kind)
	if err != nil {
		utils.InternalServerError(c, "文件保存失败")
		return "", false
	}
	return path, true
}

// parseIDList 解析逗号分隔的 ID 列表，如 "1,2,3"
func parseIDList(raw string) ([]uint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []uint{}, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
		if err != nil {
			return nil, err
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}
