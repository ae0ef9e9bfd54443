package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/devwithnaveed/cineverse-api/internal/model"
)

type GenreRepository struct {
	db *gorm.DB
}

func NewGenreRepository(db *gorm.DB) *GenreRepository {
	return &GenreRepository{db: db}
}

// Create 创建类型
func (r *GenreRepository) Create(genre *model.Genre) error {
	return r.db.Create(genre).Error
}

// FindByID 根据 ID 查找类型并加载电影，不存在时返回 nil
func (r *GenreRepository) FindByID(id uint) (*model.Genre, error) {
	var genre model.Genre
	err := r.db.Preload("Movies").First(&genre, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &genre, nil
}

// FindAll 获取全部类型
func (r *GenreRepository) FindAll() ([]model.Genre, error) {
	var genres []model.Genre
	err := r.db.Preload("Movies").Order("id ASC").Find(&genres).Error
	return genres, err
}

// FindByIDs 按 ID 集合解析类型并加载各自归属的电影。
// 空集合直接返回空结果，不发查询；结果只包含存在的行，数量比对交给调用方。
func (r *GenreRepository) FindByIDs(ids []uint) ([]model.Genre, error) {
	if len(ids) == 0 {
		return []model.Genre{}, nil
	}

	var genres []model.Genre
	if err := r.db.Preload("Movies").Where("id IN ?", ids).Find(&genres).Error; err != nil {
		return nil, err
	}
	return genres, nil
}

// Update 在单个事务内保存类型标量字段，movies 给出时先整体替换归属集合
func (r *GenreRepository) Update(genre *model.Genre, movies *[]model.Movie) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if movies != nil {
			if err := tx.Model(genre).Association("Movies").Replace(*movies); err != nil {
				return err
			}
		}
		return tx.Omit("Movies").Save(genre).Error
	})
}

// Delete 删除类型并清理关联表中间行
func (r *GenreRepository) Delete(genre *model.Genre) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(genre).Association("Movies").Clear(); err != nil {
			return err
		}
		return tx.Delete(&model.Genre{}, genre.ID).Error
	})
}
