package service

import (
	"time"

	"github.com/devwithnaveed/cineverse-api/internal/model"
	"github.com/devwithnaveed/cineverse-api/internal/repository"
)

// UpdateActorInput 更新演员入参，nil 字段保持原值
type UpdateActorInput struct {
	Name        *string
	DateOfBirth *time.Time
	MovieIDs    *[]uint
}

// ActorService 演员服务。电影引用通过 MovieRepository 直接解析，
// 不依赖电影服务，避免服务间循环
type ActorService struct {
	actors *repository.ActorRepository
	movies *repository.MovieRepository
}

// NewActorService 创建演员服务
func NewActorService(actors *repository.ActorRepository, movies *repository.MovieRepository) *ActorService {
	return &ActorService{actors: actors, movies: movies}
}

// resolveMovies 将电影 ID 集合解析为实体，数量不符视为引用不存在
func (s *ActorService) resolveMovies(ids []uint) ([]model.Movie, error) {
	movies, err := s.movies.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	if len(movies) != len(ids) {
		return nil, ErrMovieNotFound
	}
	return movies, nil
}

// Create 创建演员，可选地挂接一组已存在的电影
func (s *ActorService) Create(name string, dateOfBirth time.Time, movieIDs []uint) (*model.Actor, error) {
	actor := model.Actor{
		Name:        name,
		DateOfBirth: dateOfBirth,
	}

	if len(movieIDs) > 0 {
		movies, err := s.resolveMovies(movieIDs)
		if err != nil {
			return nil, err
		}
		actor.Movies = movies
	}

	if err := s.actors.Create(&actor); err != nil {
		return nil, err
	}

	return s.Get(actor.ID)
}

// List 获取全部演员
func (s *ActorService) List() ([]model.Actor, error) {
	return s.actors.FindAll()
}

// Get 获取单个演员
func (s *ActorService) Get(id uint) (*model.Actor, error) {
	actor, err := s.actors.FindByID(id)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, ErrActorNotFound
	}
	return actor, nil
}

// Update 更新演员。给出的电影 ID 集合整体替换原集合，
// 解析失败时不落任何写操作
func (s *ActorService) Update(id uint, in UpdateActorInput) (*model.Actor, error) {
	actor, err := s.Get(id)
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
		actor.Name = *in.Name
	}
	if in.DateOfBirth != nil {
		actor.DateOfBirth = *in.DateOfBirth
	}

	if err := s.actors.Update(actor, movies); err != nil {
		return nil, err
	}

	return s.Get(id)
}

// Remove 删除演员
func (s *ActorService) Remove(id uint) error {
	actor, err := s.Get(id)
	if err != nil {
		return err
	}
	return s.actors.Delete(actor)
}
