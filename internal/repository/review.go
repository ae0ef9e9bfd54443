package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/devwithnaveed/cineverse-api/internal/model"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create 创建影评
func (r *ReviewRepository) Create(review *model.Review) error {
	return r.db.Create(review).Error
}

// FindByID 根据 ID 查找影评并加载电影与作者，不存在时返回 nil
func (r *ReviewRepository) FindByID(id uint) (*model.Review, error) {
	var review model.Review
	err := r.db.Preload("Movie").Preload("User").First(&review, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &review, nil
}

// FindAll 获取全部影评，电影与作者一并加载
func (r *ReviewRepository) FindAll() ([]model.Review, error) {
	var reviews []model.Review
	err := r.db.Preload("Movie").Preload("User").Order("id ASC").Find(&reviews).Error
	return reviews, err
}

// FindByMovie 获取某部电影的全部影评，作者一并加载，不分页
func (r *ReviewRepository) FindByMovie(movieID uint) ([]model.Review, error) {
	var reviews []model.Review
	err := r.db.Preload("User").
		Where("movie_id = ?", movieID).
		Order("id ASC").
		Find(&reviews).Error
	return reviews, err
}

// Update 保存影评
func (r *ReviewRepository) Update(review *model.Review) error {
	return r.db.Omit("Movie", "User").Save(review).Error
}

// Delete 删除影评
func (r *ReviewRepository) Delete(id uint) error {
	return r.db.Delete(&model.Review{}, id).Error
}
