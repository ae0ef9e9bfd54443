package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/devwithnaveed/cineverse-api/internal/model"
)

type MovieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// Create 创建电影，关联集合随同一事务写入
func (r *MovieRepository) Create(movie *model.Movie) error {
	return r.db.Create(movie).Error
}

// FindByID 根据 ID 查找电影并加载全部关联，不存在时返回 nil
func (r *MovieRepository) FindByID(id uint) (*model.Movie, error) {
	var movie model.Movie
	err := r.db.
		Preload("Actors").
		Preload("Genres").
		Preload("Reviews").
		First(&movie, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &movie, nil
}

// FindAllByTitle 按标题子串查找电影（忽略大小写），title 为空时返回全部。
// 类型/演员/最低均分过滤在服务层内存中完成，详见 MovieService.List。
func (r *MovieRepository) FindAllByTitle(title string) ([]model.Movie, error) {
	query := r.db.
		Preload("Actors").
		Preload("Genres").
		Preload("Reviews")

	if title != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(title)+"%")
	}

	var movies []model.Movie
	if err := query.Order("id ASC").Find(&movies).Error; err != nil {
		return nil, err
	}
	return movies, nil
}

// FindByIDs 按 ID 集合解析电影。空集合直接返回空结果，不发查询；
// 结果只包含存在的行，数量比对交给调用方。
func (r *MovieRepository) FindByIDs(ids []uint) ([]model.Movie, error) {
	if len(ids) == 0 {
		return []model.Movie{}, nil
	}

	var movies []model.Movie
	if err := r.db.Where("id IN ?", ids).Find(&movies).Error; err != nil {
		return nil, err
	}
	return movies, nil
}

// Update 在单个事务内保存电影标量字段，并整体替换给出的关联集合，
// nil 集合保持原样。任一步失败则整体回滚，不会留下半套关联
func (r *MovieRepository) Update(movie *model.Movie, actors *[]model.Actor, genres *[]model.Genre) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if actors != nil {
			if err := tx.Model(movie).Association("Actors").Replace(*actors); err != nil {
				return err
			}
		}
		if genres != nil {
			if err := tx.Model(movie).Association("Genres").Replace(*genres); err != nil {
				return err
			}
		}
		return tx.Omit("Actors", "Genres", "Reviews").Save(movie).Error
	})
}

// Delete 删除电影、其影评以及关联表中间行
func (r *MovieRepository) Delete(movie *model.Movie) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(movie).Association("Actors").Clear(); err != nil {
			return err
		}
		if err := tx.Model(movie).Association("Genres").Clear(); err != nil {
			return err
		}
		if err := tx.Where("movie_id = ?", movie.ID).Delete(&model.Review{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Movie{}, movie.ID).Error
	})
}
