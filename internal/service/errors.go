package service

import (
	"errors"
)

// 服务层错误分类，由 handler 统一映射为 HTTP 状态码。
// NotFound 系列同时覆盖按 ID 查找失败和引用集合解析数量不符两种情况。
var (
	ErrMovieNotFound  = errors.New("电影不存在")
	ErrActorNotFound  = errors.New("部分演员不存在")
	ErrGenreNotFound  = errors.New("部分类型不存在")
	ErrReviewNotFound = errors.New("影评不存在")
	ErrUserNotFound   = errors.New("用户不存在")

	ErrEmailTaken     = errors.New("该邮箱已被注册")
	ErrGenreNameTaken = errors.New("该类型名称已存在")

	ErrForbidden          = errors.New("没有权限执行此操作")
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrAccountDisabled    = errors.New("账号已被禁用")
)
