package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/devwithnaveed/cineverse-api/internal/model"
	"github.com/devwithnaveed/cineverse-api/internal/repository"
)

// UpdateGenreInput 更新类型入参，nil 字段保持原值
type UpdateGenreInput struct {
	Name        *string
	Description *string
	MovieIDs    *[]uint
}

// GenreService 类型服务，电影引用同样走仓库层解析
type GenreService struct {
	genres *repository.GenreRepository
	movies *repository.MovieRepository
}

// NewGenreService 创建类型服务
func NewGenreService(genres *repository.GenreRepository, movies *repository.MovieRepository) *GenreService {
	return &GenreService{genres: genres, movies: movies}
}

func (s *GenreService) resolveMovies(ids []uint) ([]model.Movie, error) {
	movies, err := s.movies.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	if len(movies) != len(ids) {
		return nil, ErrMovieNotFound
	}
	return movies, nil
}

// Create 创建类型，名称唯一，可选地挂接一组已存在的电影
func (s *GenreService) Create(name, description string, movieIDs []uint) (*model.Genre, error) {
	genre := model.Genre{
		Name:        name,
		Description: description,
	}

	if len(movieIDs) > 0 {
		movies, err := s.resolveMovies(movieIDs)
		if err != nil {
			return nil, err
		}
		genre.Movies = movies
	}

	if err := s.genres.Create(&genre); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrGenreNameTaken
		}
		return nil, err
	}

	return s.Get(genre.ID)
}

// List 获取全部类型
func (s *GenreService) List() ([]model.Genre, error) {
	return s.genres.FindAll()
}

// Get 获取单个类型
func (s *GenreService) Get(id uint) (*model.Genre, error) {
	genre, err := s.genres.FindByID(id)
	if err != nil {
		return nil, err
	}
	if genre == nil {
		return nil, ErrGenreNotFound
	}
	return genre, nil
}

// Update 更新类型。给出的电影 ID 集合整体替换原集合，
// 解析失败时不落任何写操作
func (s *GenreService) Update(id uint, in UpdateGenreInput) (*model.Genre, error) {
	genre, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	var movies *[]model.Movie
	if in.MovieIDs != nil {
		resolved, err := s.resolveMovies(*in.MovieIDs)
		if err != nil {
			return nil, err
		}
		movies = &resolved
	}

	if in.Name != nil {
		genre.Name = *in.Name
	}
	if in.Description != nil {
		genre.Description = *in.Description
	}

	if err := s.genres.Update(genre, movies); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrGenreNameTaken
		}
		return nil, err
	}

	return s.Get(id)
}

// Remove 删除类型
func (s *GenreService) Remove(id uint) error {
	genre, err := s.Get(id)
	if err != nil {
		return err
	}
	return s.genres.Delete(genre)
}
