package model

import (
	"time"
)

// Movie 电影模型
type Movie struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null;index"`
	Description string    `json:"description" gorm:"type:text"`
	ReleaseDate time.Time `json:"releaseDate" gorm:"type:date"`
	Poster      string    `json:"poster,omitempty"`
	TrailerLink string    `json:"trailerLink,omitempty"`
	Actors      []Actor   `json:"actors,omitempty" gorm:"many2many:movie_actors;"`
	Genres      []Genre   `json:"genres,omitempty" gorm:"many2many:movie_genres;"`
	Reviews     []Review  `json:"reviews,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// MovieWithRating 带派生均分的电影视图，均分只在读取时计算，不落库
type MovieWithRating struct {
	Movie
	AverageRating float64 `json:"averageRating" gorm:"-"`
}

// PageMeta 分页元信息
type PageMeta struct {
	Total       int  `json:"total"`
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	TotalPages  int  `json:"totalPages"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

// PagedMovies 电影列表分页响应
type PagedMovies struct {
	Data []MovieWithRating `json:"data"`
	Meta PageMeta          `json:"meta"`
}
