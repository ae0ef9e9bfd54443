package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/devwithnaveed/cineverse-api/internal/model"
	"github.com/devwithnaveed/cineverse-api/internal/repository"
)

// newTestRepos 基于内存 sqlite 搭建仓库集合。
// 连接池收敛到单连接，保证所有查询落在同一个内存库上
func newTestRepos(t *testing.T) *repository.Repositories {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, repository.Migrate(db))
	return repository.NewRepositories(db)
}

func newMovieService(repos *repository.Repositories) *MovieService {
	return NewMovieService(repos.Movie, repos.Actor, repos.Genre, time.Minute)
}

func seedActor(t *testing.T, repos *repository.Repositories, name string) *model.Actor {
	t.Helper()
	actor := &model.Actor{
		Name:        name,
		DateOfBirth: time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repos.Actor.Create(actor))
	return actor
}

func seedGenre(t *testing.T, repos *repository.Repositories, name string) *model.Genre {
	t.Helper()
	genre := &model.Genre{Name: name}
	require.NoError(t, repos.Genre.Create(genre))
	return genre
}

func seedUser(t *testing.T, repos *repository.Repositories, email string) *model.User {
	t.Helper()
	user, err := repos.User.Create("测试用户", email, "password123")
	require.NoError(t, err)
	return user
}

// seedMovie 创建一部带单个演员与类型的电影
func seedMovie(t *testing.T, repos *repository.Repositories, svc *MovieService, title string) *model.MovieWithRating {
	t.Helper()
	actor := seedActor(t, repos, "演员 "+title)
	genre := seedGenre(t, repos, "类型 "+title)

	movie, err := svc.Create(CreateMovieInput{
		Title:       title,
		Description: fmt.Sprintf("%s 的剧情简介", title),
		ReleaseDate: time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC),
		ActorIDs:    []uint{actor.ID},
		GenreIDs:    []uint{genre.ID},
	})
	require.NoError(t, err)
	return movie
}
