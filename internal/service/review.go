package service

import (
	"time"

	"github.com/devwithnaveed/cineverse-api/internal/model"
	"github.com/devwithnaveed/cineverse-api/internal/repository"
)

// UpdateReviewInput 影评补丁，nil 字段保持原值
type UpdateReviewInput struct {
	Rating  *int
	Comment *string
}

// ReviewService 影评服务。创建前通过电影聚合服务确认目标电影存在；
// 影评写入会改变电影的派生均分，因此每次写操作都使对应详情缓存失效
type ReviewService struct {
	reviews *repository.ReviewRepository
	movies  *MovieService
}

// NewReviewService 创建影评服务
func NewReviewService(reviews *repository.ReviewRepository, movies *MovieService) *ReviewService {
	return &ReviewService{reviews: reviews, movies: movies}
}

// Create 创建影评，电影不存在时透传 NotFound
func (s *ReviewService) Create(rating int, comment string, movieID, authorID uint) (*model.Review, error) {
	if _, err := s.movies.GetByID(movieID); err != nil {
		return nil, err
	}

	review := model.Review{
		Rating:    rating,
		Comment:   comment,
		MovieID:   movieID,
		UserID:    authorID,
		CreatedAt: time.Now(),
	}

	if err := s.reviews.Create(&review); err != nil {
		return nil, err
	}

	s.movies.Invalidate(movieID)

	// 返回重新加载的影评，带上电影与作者
	return s.Get(review.ID)
}

// Get 获取单条影评
func (s *ReviewService) Get(id uint) (*model.Review, error) {
	review, err := s.reviews.FindByID(id)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, ErrReviewNotFound
	}
	return review, nil
}

// List 获取全部影评
func (s *ReviewService) List() ([]model.Review, error) {
	return s.reviews.FindAll()
}

// ListByMovie 获取某部电影的全部影评，作者一并返回，不分页
func (s *ReviewService) ListByMovie(movieID uint) ([]model.Review, error) {
	return s.reviews.FindByMovie(movieID)
}

// Update 更新影评，只允许作者本人或管理员操作，只应用给出的字段
func (s *ReviewService) Update(id uint, patch UpdateReviewInput, requesterID uint, requesterRole string) (*model.Review, error) {
	review, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if review.UserID != requesterID && requesterRole != model.RoleAdmin {
		return nil, ErrForbidden
	}

	if patch.Rating != nil {
		review.Rating = *patch.Rating
	}
	if patch.Comment != nil {
		review.Comment = *patch.Comment
	}

	if err := s.reviews.Update(review); err != nil {
		return nil, err
	}

	s.movies.Invalidate(review.MovieID)
	return s.Get(id)
}

// Remove 删除影评，权限规则与更新一致
func (s *ReviewService) Remove(id uint, requesterID uint, requesterRole string) error {
	review, err := s.Get(id)
	if err != nil {
		return err
	}

	if review.UserID != requesterID && requesterRole != model.RoleAdmin {
		return ErrForbidden
	}

	if err := s.reviews.Delete(id); err != nil {
		return err
	}

	s.movies.Invalidate(review.MovieID)
	return nil
}
