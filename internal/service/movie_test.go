package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devwithnaveed/cineverse-api/internal/model"
)

func TestCreateMovieResolvesAssociations(t *testing.T) {
	repos := newTestRepos(t)
	svc := newMovieService(repos)

	a1 := seedActor(t, repos, "张三")
	a2 := seedActor(t, repos, "李四")
	g1 := seedGenre(t, repos, "科幻")

	movie, err := svc.Create(CreateMovieInput{
		Title:       "流浪地球",
		Description: "地球开始流浪",
		ReleaseDate: time.Date(2019, 2, 5, 0, 0, 0, 0, time.UTC),
		ActorIDs:    []uint{a1.ID, a2.ID},
		GenreIDs:    []uint{g1.ID},
	})
	require.NoError(t, err)
	assert.NotZero(t, movie.ID)
	assert.Equal(t, float64(0), movie.AverageRating)

	loaded, err := svc.GetByID(movie.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.Actors, 2)
	assert.Len(t, loaded.Genres, 1)
	assert.Equal(t, "科幻", loaded.Genres[0].Name)
}

func TestCreateMovieUnknownReference(t *testing.T) {
	repos := newTestRepos(t)
	svc := newMovieService(repos)

	actor := seedActor(t, repos, "张三")
	genre := seedGenre(t, repos, "剧情")

	_, err := svc.Create(CreateMovieInput{
		Title:    "无效演员",
		ActorIDs: []uint{actor.ID, 999},
		GenreIDs: []uint{genre.ID},
	})
	assert.ErrorIs(t, err, ErrActorNotFound)

	_, err = svc.Create(CreateMovieInput{
		Title:    "无效类型",
		ActorIDs: []uint{actor.ID},
		GenreIDs: []uint{999},
	})
	assert.ErrorIs(t, err, ErrGenreNotFound)

	// 解析失败时不应写入任何电影行
	movies, err := repos.Movie.FindAllByTitle("")
	require.NoError(t, err)
	assert.Empty(t, movies)
}

func TestAverageRating(t *testing.T) {
	repos := newTestRepos(t)
	svc := newMovieService(repos)

	movie := seedMovie(t, repos, svc, "评分样本")
	user := seedUser(t, repos, "rater@example.com")

	for _, rating := range []int{5, 4, 3} {
		require.NoError(t, repos.Review.Create(&model.Review{
			Rating:  rating,
			MovieID: movie.ID,
			UserID:  user.ID,
		}))
	}
	svc.Invalidate(movie.ID)

	loaded, err := svc.GetByID(movie.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.0, loaded.AverageRating)
}

func TestAverageRatingRoundsToOneDecimal(t *testing.T) {
	repos := newTestRepos(t)
	svc := newMovieService(repos)

	movie := seedMovie(t, repos, svc, "四舍五入")
	user := seedUser(t, repos, "rater@example.com")

	// 13/3 = 4.333... 应得 4.3
	for _, rating := range []int{4, 4, 5} {
		require.NoError(t, repos.Review.Create(&model.Review{
			Rating:  rating,
			MovieID: movie.ID,
			UserID:  user.ID,
		}))
	}
	svc.Invalidate(movie.ID)

	loaded, err := svc.GetByID(movie.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.3, loaded.AverageRating)
}

func TestGetMovieNotFound(t *testing.T) {
	repos := newTestRepos(t)
	svc := newMovieService(repos)

	_, err := svc.GetByID(42)
	assert.ErrorIs(t, err, ErrMovieNotFound)
}

func TestListTitleFilter(t *testing.T) {
	repos := newTestRepos(t)
	svc := newMovieService(repos)

	seedMovie(t, repos, svc, "Alien")
	seedMovie(t, repos, svc, "Aliens")
	seedMovie(t, repos, svc, "Heat")

	page, err := svc.List(MovieFilter{Title: "alien"})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Meta.Total)
	require.Len(t, page.Data, 2)
	assert.Equal(t, "Alien", page.Data[0].Title)
	assert.Equal(t, "Aliens", page.Data[1].Title)
}

func TestListGenreAndActorFilters(t *testing.T) {
	repos := newTestRepos(t)
	svc := newMovieService(repos)

	scifi := seedGenre(t, repos, "科幻")
	drama := seedGenre(t, repos, "剧情")
	lead := seedActor(t, repos, "主演")
	other := seedActor(t, repos, "配角")

	mustCreate := func(title string, actorID, genreID uint) {
		_, err := svc.Create(CreateMovieInput{
			Title:    title,
			ActorIDs: []uint{actorID},
			GenreIDs: []uint{genreID},
		})
		require.NoError(t, err)
	}
	mustCreate("甲", lead.ID, scifi.ID)
	mustCreate("乙", lead.ID, drama.ID)
	mustCreate("丙", other.ID, scifi.ID)

	page, err := svc.List(MovieFilter{GenreID: scifi.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Meta.Total)

	page, err = svc.List(MovieFilter{ActorID: lead.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Meta.Total)

	page, err = svc.List(MovieFilter{GenreID: scifi.ID, ActorID: lead.ID})
	require.NoError(t, err)
	require.Equal(t, 1, page.Meta.Total)
	assert.Equal(t, "甲", page.Data[0].Title)
}

func TestListMinRatingFilter(t *testing.T) {
	repos := newTestRepos(t)
	svc := newMovieService(repos)
	user := seedUser(t, repos, "rater@example.com")

	rate := func(movieID uint, ratings ...int) {
		for _, rating := range ratings {
			require.NoError(t, repos.Review.Create(&model.Review{
				Rating:  rating,
				MovieID: movieID,
				UserID:  user.ID,
			}))
		}
	}

	m1 := seedMovie(t, repos, svc, "高分")
	rate(m1.ID, 5, 4) // 4.5
	m2 := seedMovie(t, repos, svc, "中分")
	rate(m2.ID, 3) // 3.0
	m3 := seedMovie(t, repos, svc, "及格")
	rate(m3.ID, 4) // 4.0

	page, err := svc.List(MovieFilter{MinRating: 4})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Meta.Total)
	for _, movie := range page.Data {
		assert.GreaterOrEqual(t, movie.AverageRating, 4.0)
	}
}

func TestListPagination(t *testing.T) {
	repos := newTestRepos(t)
	svc := newMovieService(repos)

	actor := seedActor(t, repos, "常驻演员")
	genre := seedGenre(t, repos, "常驻类型")
	for i := 0; i < 25; i++ {
		_, err := svc.Create(CreateMovieInput{
			Title:    fmt.Sprintf("电影 %02d", i),
			ActorIDs: []uint{actor.ID},
			GenreIDs: []uint{genre.ID},
		})
		require.NoError(t, err)
	}

	page, err := svc.List(MovieFilter{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page.Data, 5)
	assert.Equal(t, model.PageMeta{
		Total:       25,
		Page:        3,
		Limit:       10,
		TotalPages:  3,
		HasNextPage: false,
		HasPrevPage: true,
	}, page.Meta)

	// 越界页返回空数据，元信息不变
	page, err = svc.List(MovieFilter{Page: 9, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, page.Data)
	assert.Equal(t, 25, page.Meta.Total)
}

func TestUpdateMovieReplacesAssociations(t *testing.T) {
	repos := newTestRepos(t)
	svc := newMovieService(repos)

	a1 := seedActor(t, repos, "甲")
	a2 := seedActor(t, repos, "乙")
	a3 := seedActor(t, repos, "丙")
	genre := seedGenre(t, repos, "动作")

	movie, err := svc.Create(CreateMovieInput{
		Title:    "替换测试",
		ActorIDs: []uint{a1.ID, a2.ID},
		GenreIDs: []uint{genre.ID},
	})
	require.NoError(t, err)

	newActors := []uint{a3.ID}
	updated, err := svc.Update(movie.ID, UpdateMovieInput{ActorIDs: &newActors})
	require.NoError(t, err)
	require.Len(t, updated.Actors, 1)
	assert.Equal(t, a3.ID, updated.Actors[0].ID)

	// 未给出的字段保持原值
	assert.Equal(t, "替换测试", updated.Title)
	assert.Len(t, updated.Genres, 1)
}

func TestUpdateMovieFailedResolutionLeavesAssociationsUntouched(t *testing.T) {
	repos := newTestRepos(t)
	svc := newMovieService(repos)

	a1 := seedActor(t, repos, "原演员")
	a2 := seedActor(t, repos, "新演员")
	g1 := seedGenre(t, repos, "原类型")

	movie, err := svc.Create(CreateMovieInput{
		Title:    "原子性",
		ActorIDs: []uint{a1.ID},
		GenreIDs: []uint{g1.ID},
	})
	require.NoError(t, err)

	// 演员集合合法、类型引用非法：整个更新都不应落库
	newActors := []uint{a2.ID}
	badGenres := []uint{999}
	_, err = svc.Update(movie.ID, UpdateMovieInput{ActorIDs: &newActors, GenreIDs: &badGenres})
	assert.ErrorIs(t, err, ErrGenreNotFound)

	// 直接走仓库读取，绕开详情缓存
	loaded, err := repos.Movie.FindByID(movie.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Actors, 1)
	assert.Equal(t, a1.ID, loaded.Actors[0].ID)
	require.Len(t, loaded.Genres, 1)
	assert.Equal(t, g1.ID, loaded.Genres[0].ID)

	// 反向组合同理
	badActors := []uint{999}
	newGenres := []uint{g1.ID}
	_, err = svc.Update(movie.ID, UpdateMovieInput{ActorIDs: &badActors, GenreIDs: &newGenres})
	assert.ErrorIs(t, err, ErrActorNotFound)

	loaded, err = repos.Movie.FindByID(movie.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Actors, 1)
	assert.Equal(t, a1.ID, loaded.Actors[0].ID)
}

func TestUpdateMovieUnknownReference(t *testing.T) {
	repos := newTestRepos(t)
	svc := newMovieService(repos)

	movie := seedMovie(t, repos, svc, "引用校验")

	bad := []uint{999}
	_, err := svc.Update(movie.ID, UpdateMovieInput{GenreIDs: &bad})
	assert.ErrorIs(t, err, ErrGenreNotFound)

	_, err = svc.Update(999, UpdateMovieInput{})
	assert.ErrorIs(t, err, ErrMovieNotFound)
}

func TestRemoveMovieCascades(t *testing.T) {
	repos := newTestRepos(t)
	svc := newMovieService(repos)

	movie := seedMovie(t, repos, svc, "待删除")
	user := seedUser(t, repos, "rater@example.com")
	require.NoError(t, repos.Review.Create(&model.Review{
		Rating:  5,
		MovieID: movie.ID,
		UserID:  user.ID,
	}))

	removed, err := svc.Remove(movie.ID)
	require.NoError(t, err)
	assert.Equal(t, movie.ID, removed.ID)

	_, err = svc.GetByID(movie.ID)
	assert.ErrorIs(t, err, ErrMovieNotFound)

	reviews, err := repos.Review.FindByMovie(movie.ID)
	require.NoError(t, err)
	assert.Empty(t, reviews)

	// 删除不存在的电影
	_, err = svc.Remove(movie.ID)
	assert.True(t, errors.Is(err, ErrMovieNotFound))
}

func TestFindByIDsEmptyInput(t *testing.T) {
	repos := newTestRepos(t)

	actors, err := repos.Actor.FindByIDs(nil)
	require.NoError(t, err)
	assert.Empty(t, actors)

	movies, err := repos.Movie.FindByIDs([]uint{})
	require.NoError(t, err)
	assert.Empty(t, movies)
}

func TestFindByIDsLoadsOwnAssociations(t *testing.T) {
	repos := newTestRepos(t)
	svc := newMovieService(repos)

	movie := seedMovie(t, repos, svc, "关联加载")

	actors, err := repos.Actor.FindByIDs([]uint{movie.Actors[0].ID})
	require.NoError(t, err)
	require.Len(t, actors, 1)
	require.Len(t, actors[0].Movies, 1)
	assert.Equal(t, movie.ID, actors[0].Movies[0].ID)

	genres, err := repos.Genre.FindByIDs([]uint{movie.Genres[0].ID})
	require.NoError(t, err)
	require.Len(t, genres, 1)
	require.Len(t, genres[0].Movies, 1)
	assert.Equal(t, movie.ID, genres[0].Movies[0].ID)
}
