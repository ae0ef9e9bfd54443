package service

import (
	"github.com/devwithnaveed/cineverse-api/internal/model"
	"github.com/devwithnaveed/cineverse-api/internal/repository"
)

// AuthService 认证服务，只负责凭证校验；令牌签发在 handler 层完成
type AuthService struct {
	users *repository.UserRepository
}

// NewAuthService 创建认证服务
func NewAuthService(users *repository.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// ValidateCredentials 校验邮箱与密码。为避免探测注册邮箱，
// 用户不存在与密码错误返回同一个错误
func (s *AuthService) ValidateCredentials(email, password string) (*model.User, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if !s.users.CheckPassword(user, password) {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	return user, nil
}
