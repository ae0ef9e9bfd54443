package model

import (
	"time"
)

// Review 影评模型，电影或用户删除时级联删除
type Review struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Rating    int       `json:"rating" gorm:"not null"`
	Comment   string    `json:"comment,omitempty" gorm:"type:text"`
	MovieID   uint      `json:"movieId" gorm:"not null;index"`
	Movie     *Movie    `json:"movie,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	UserID    uint      `json:"userId" gorm:"not null;index"`
	User      *User     `json:"user,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"createdAt"`
}
