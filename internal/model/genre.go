package model

// Genre 类型模型
type Genre struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"uniqueIndex;not null"`
	Description string  `json:"description,omitempty"`
	Movies      []Movie `json:"movies,omitempty" gorm:"many2many:movie_genres;"`
}
