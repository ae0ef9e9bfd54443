package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/devwithnaveed/cineverse-api/internal/model"
	"github.com/devwithnaveed/cineverse-api/internal/repository"
)

// UpdateUserInput 管理员更新用户入参，nil 字段保持原值
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Role     *string
	IsActive *bool
	Password *string
}

// UserService 用户服务
type UserService struct {
	users *repository.UserRepository
}

// NewUserService 创建用户服务
func NewUserService(users *repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// Register 注册新用户，邮箱重复时返回冲突且原账号不受影响
func (s *UserService) Register(name, email, password string) (*model.User, error) {
	existing, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	user, err := s.users.Create(name, email, password)
	if err != nil {
		// 并发注册同一邮箱时落到唯一索引上
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return user, nil
}

// Get 获取单个用户
func (s *UserService) Get(id uint) (*model.User, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// List 获取全部用户
func (s *UserService) List() ([]*model.User, error) {
	return s.users.ListAll()
}

// Update 管理员更新用户资料，只应用给出的字段
func (s *UserService) Update(id uint, in UpdateUserInput) (*model.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if in.Email != nil && *in.Email != user.Email {
		existing, err := s.users.FindByEmail(*in.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrEmailTaken
		}
		user.Email = *in.Email
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Role != nil {
		user.Role = *in.Role
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}

	if err := s.users.Save(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	if in.Password != nil {
		if err := s.users.UpdatePassword(id, *in.Password); err != nil {
			return nil, err
		}
	}

	return s.Get(id)
}

// Remove 删除用户及其影评
func (s *UserService) Remove(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.users.Delete(id)
}
