package service

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/devwithnaveed/cineverse-api/internal/model"
	"github.com/devwithnaveed/cineverse-api/internal/repository"
	"github.com/devwithnaveed/cineverse-api/internal/utils"
)

// 过滤与分页的边界值
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// MovieFilter 电影列表过滤条件
type MovieFilter struct {
	Title     string
	GenreID   uint
	ActorID   uint
	MinRating int
	Page      int
	Limit     int
}

// CreateMovieInput 创建电影入参，ActorIDs/GenreIDs 必须全部可解析
type CreateMovieInput struct {
	Title       string
	Description string
	ReleaseDate time.Time
	Poster      string
	TrailerLink string
	ActorIDs    []uint
	GenreIDs    []uint
}

// UpdateMovieInput 更新电影入参，nil 字段保持原值；
// ActorIDs/GenreIDs 一旦给出则整体替换对应关联集合
type UpdateMovieInput struct {
	Title       *string
	Description *string
	ReleaseDate *time.Time
	Poster      *string
	TrailerLink *string
	ActorIDs    *[]uint
	GenreIDs    *[]uint
}

// MovieService 电影聚合服务：组合演员/类型解析器维护关联一致性，
// 读取时计算派生均分并完成过滤与分页
type MovieService struct {
	movies *repository.MovieRepository
	actors *repository.ActorRepository
	genres *repository.GenreRepository

	// 详情缓存：键为电影 ID，电影或其影评变更时失效
	detail *utils.KeyedCache[*model.MovieWithRating]
	// 列表聚合全量加载较重，用 singleflight 合并并发的相同查询
	sf singleflight.Group
}

// NewMovieService 创建电影聚合服务
func NewMovieService(movies *repository.MovieRepository, actors *repository.ActorRepository, genres *repository.GenreRepository, cacheTTL time.Duration) *MovieService {
	return &MovieService{
		movies: movies,
		actors: actors,
		genres: genres,
		detail: utils.NewKeyedCache[*model.MovieWithRating](1024, cacheTTL),
	}
}

// averageRating 计算派生均分：总分/条数，保留一位小数，无影评时为 0
func averageRating(reviews []model.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, review := range reviews {
		sum += review.Rating
	}
	return math.Round(float64(sum)/float64(len(reviews))*10) / 10
}

// resolveActors 将演员 ID 集合解析为实体，数量不符视为引用不存在
func (s *MovieService) resolveActors(ids []uint) ([]model.Actor, error) {
	actors, err := s.actors.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	if len(actors) != len(ids) {
		return nil, ErrActorNotFound
	}
	return actors, nil
}

// resolveGenres 将类型 ID 集合解析为实体，数量不符视为引用不存在
func (s *MovieService) resolveGenres(ids []uint) ([]model.Genre, error) {
	genres, err := s.genres.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	if len(genres) != len(ids) {
		return nil, ErrGenreNotFound
	}
	return genres, nil
}

// Create 创建电影。任一引用解析失败时直接返回，不会写入任何行
func (s *MovieService) Create(in CreateMovieInput) (*model.MovieWithRating, error) {
	actors, err := s.resolveActors(in.ActorIDs)
	if err != nil {
		return nil, err
	}

	genres, err := s.resolveGenres(in.GenreIDs)
	if err != nil {
		return nil, err
	}

	movie := model.Movie{
		Title:       in.Title,
		Description: in.Description,
		ReleaseDate: in.ReleaseDate,
		Poster:      in.Poster,
		TrailerLink: in.TrailerLink,
		Actors:      actors,
		Genres:      genres,
	}

	if err := s.movies.Create(&movie); err != nil {
		return nil, err
	}

	result := &model.MovieWithRating{Movie: movie, AverageRating: 0}
	s.detail.Set(detailKey(movie.ID), result)
	return result, nil
}

// List 过滤并分页电影列表。标题子串在 SQL 层匹配，类型/演员归属与
// 最低均分在内存中对已加载关联做集合判断；目录规模下可接受，
// 数据量超出内存时应改为索引化的集合查询。
func (s *MovieService) List(filter MovieFilter) (*model.PagedMovies, error) {
	page := filter.Page
	if page < DefaultPage {
		page = DefaultPage
	}
	limit := filter.Limit
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	key := fmt.Sprintf("%s|%d|%d|%d|%d|%d",
		filter.Title, filter.GenreID, filter.ActorID, filter.MinRating, page, limit)

	result, err, _ := s.sf.Do(key, func() (interface{}, error) {
		return s.list(filter, page, limit)
	})
	if err != nil {
		return nil, err
	}
	return result.(*model.PagedMovies), nil
}

func (s *MovieService) list(filter MovieFilter, page, limit int) (*model.PagedMovies, error) {
	movies, err := s.movies.FindAllByTitle(filter.Title)
	if err != nil {
		return nil, err
	}

	if filter.GenreID != 0 {
		movies = filterMovies(movies, func(m model.Movie) bool {
			for _, genre := range m.Genres {
				if genre.ID == filter.GenreID {
					return true
				}
			}
			return false
		})
	}

	if filter.ActorID != 0 {
		movies = filterMovies(movies, func(m model.Movie) bool {
			for _, actor := range m.Actors {
				if actor.ID == filter.ActorID {
					return true
				}
			}
			return false
		})
	}

	rated := make([]model.MovieWithRating, 0, len(movies))
	for _, movie := range movies {
		rating := averageRating(movie.Reviews)
		if filter.MinRating != 0 && rating < float64(filter.MinRating) {
			continue
		}
		rated = append(rated, model.MovieWithRating{Movie: movie, AverageRating: rating})
	}

	total := len(rated)
	totalPages := (total + limit - 1) / limit
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return &model.PagedMovies{
		Data: rated[start:end],
		Meta: model.PageMeta{
			Total:       total,
			Page:        page,
			Limit:       limit,
			TotalPages:  totalPages,
			HasNextPage: page < totalPages,
			HasPrevPage: page > 1,
		},
	}, nil
}

func filterMovies(movies []model.Movie, keep func(model.Movie) bool) []model.Movie {
	out := movies[:0]
	for _, movie := range movies {
		if keep(movie) {
			out = append(out, movie)
		}
	}
	return out
}

// GetByID 获取单部电影，附带派生均分
func (s *MovieService) GetByID(id uint) (*model.MovieWithRating, error) {
	if cached, ok := s.detail.Get(detailKey(id)); ok {
		return cached, nil
	}

	movie, err := s.movies.FindByID(id)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, ErrMovieNotFound
	}

	result := &model.MovieWithRating{
		Movie:         *movie,
		AverageRating: averageRating(movie.Reviews),
	}
	s.detail.Set(detailKey(id), result)
	return result, nil
}

// Update 更新电影。给出的关联 ID 集合整体替换原集合，不做合并。
// 全部引用先解析完再落写操作，失败的更新不留半套关联
func (s *MovieService) Update(id uint, in UpdateMovieInput) (*model.MovieWithRating, error) {
	movie, err := s.movies.FindByID(id)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, ErrMovieNotFound
	}

	var actors *[]model.Actor
	if in.ActorIDs != nil {
		resolved, err := s.resolveActors(*in.ActorIDs)
		if err != nil {
			return nil, err
		}
		actors = &resolved
	}

	var genres *[]model.Genre
	if in.GenreIDs != nil {
		resolved, err := s.resolveGenres(*in.GenreIDs)
		if err != nil {
			return nil, err
		}
		genres = &resolved
	}

	if in.Title != nil {
		movie.Title = *in.Title
	}
	if in.Description != nil {
		movie.Description = *in.Description
	}
	if in.ReleaseDate != nil {
		movie.ReleaseDate = *in.ReleaseDate
	}
	if in.Poster != nil {
		movie.Poster = *in.Poster
	}
	if in.TrailerLink != nil {
		movie.TrailerLink = *in.TrailerLink
	}

	if err := s.movies.Update(movie, actors, genres); err != nil {
		return nil, err
	}

	s.detail.Delete(detailKey(id))
	return s.GetByID(id)
}

// Remove 删除电影，影评与关联中间行一并清理。
// 返回被删除的电影，便于调用方清理海报/预告片文件
func (s *MovieService) Remove(id uint) (*model.Movie, error) {
	movie, err := s.movies.FindByID(id)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, ErrMovieNotFound
	}

	if err := s.movies.Delete(movie); err != nil {
		return nil, err
	}

	s.detail.Delete(detailKey(id))
	return movie, nil
}

// Invalidate 使某部电影的详情缓存失效，影评变更后由 ReviewService 调用
func (s *MovieService) Invalidate(id uint) {
	s.detail.Delete(detailKey(id))
}

func detailKey(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
