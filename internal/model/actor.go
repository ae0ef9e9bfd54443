package model

import (
	"time"
)

// Actor 演员模型
type Actor struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null;index"`
	DateOfBirth time.Time `json:"dateOfBirth" gorm:"type:date"`
	Movies      []Movie   `json:"movies,omitempty" gorm:"many2many:movie_actors;"`
}
