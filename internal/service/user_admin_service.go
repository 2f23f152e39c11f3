package service

import (
	"context"
	"strings"

	"github.com/campus-mall/internal/constants"
	"github.com/campus-mall/internal/models"
	"github.com/campus-mall/internal/repository"
)

// UserAdminService 后台会员管理服务
type UserAdminService struct {
	userRepo repository.UserRepository
	sessions *SessionService
}

// NewUserAdminService 创建后台会员管理服务
func NewUserAdminService(userRepo repository.UserRepository, sessions *SessionService) *UserAdminService {
	return &UserAdminService{userRepo: userRepo, sessions: sessions}
}

// List 会员列表
func (s *UserAdminService) List(ctx context.Context, filter repository.UserListFilter) ([]models.User, int64, error) {
	filter.Page, filter.PageSize = normalizePagination(filter.Page, filter.PageSize)
	filter.Keyword = strings.TrimSpace(filter.Keyword)
	users, total, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, persistenceError("list users", err)
	}
	return users, total, nil
}

// Get 会员详情
func (s *UserAdminService) Get(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, persistenceError("get user", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Update 更新会员资料，唯一性与会员自助修改一致
func (s *UserAdminService) Update(ctx context.Context, id uint, input UpdateProfileInput) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyUserProfile(ctx, s.userRepo, user, input); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, persistenceError("update user", err)
	}
	return user, nil
}

// Delete 删除会员并注销其全部会话
func (s *UserAdminService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return persistenceError("delete user", err)
	}
	return s.sessions.DestroySubject(ctx, constants.SessionKindUser, id, "")
}
