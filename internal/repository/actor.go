package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/devwithnaveed/cineverse-api/internal/model"
)

type ActorRepository struct {
	db *gorm.DB
}

func NewActorRepository(db *gorm.DB) *ActorRepository {
	return &ActorRepository{db: db}
}

// Create 创建演员
func (r *ActorRepository) Create(actor *model.Actor) error {
	return r.db.Create(actor).Error
}

// FindByID 根据 ID 查找演员并加载出演电影，不存在时返回 nil
func (r *ActorRepository) FindByID(id uint) (*model.Actor, error) {
	var actor model.Actor
	err := r.db.Preload("Movies").First(&actor, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &actor, nil
}

// FindAll 获取全部演员
func (r *ActorRepository) FindAll() ([]model.Actor, error) {
	var actors []model.Actor
	err := r.db.Preload("Movies").Order("id ASC").Find(&actors).Error
	return actors, err
}

// FindByIDs 按 ID 集合解析演员并加载各自的出演电影。
// 空集合直接返回空结果，不发查询；结果只包含存在的行，数量比对交给调用方。
func (r *ActorRepository) FindByIDs(ids []uint) ([]model.Actor, error) {
	if len(ids) == 0 {
		return []model.Actor{}, nil
	}

	var actors []model.Actor
	if err := r.db.Preload("Movies").Where("id IN ?", ids).Find(&actors).Error; err != nil {
		return nil, err
	}
	return actors, nil
}

// Update 在单个事务内保存演员标量字段，movies 给出时先整体替换出演集合
func (r *ActorRepository) Update(actor *model.Actor, movies *[]model.Movie) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if movies != nil {
			if err := tx.Model(actor).Association("Movies").Replace(*movies); err != nil {
				return err
			}
		}
		return tx.Omit("Movies").Save(actor).Error
	})
}

// Delete 删除演员并清理关联表中间行
func (r *ActorRepository) Delete(actor *model.Actor) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(actor).Association("Movies").Clear(); err != nil {
			return err
		}
		return tx.Delete(&model.Actor{}, actor.ID).Error
	})
}
