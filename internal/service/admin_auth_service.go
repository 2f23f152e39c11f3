package service

import (
	"context"
	"strings"
	"time"

	"github.com/campus-mall/internal/authz"
	"github.com/campus-mall/internal/config"
	"github.com/campus-mall/internal/constants"
	"github.com/campus-mall/internal/logger"
	"github.com/campus-mall/internal/metrics"
	"github.com/campus-mall/internal/models"
	"github.com/campus-mall/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// AdminAuthorizer 管理员角色绑定与查询
type AdminAuthorizer interface {
	BindOperator(adminID uint) error
	RevokeAdmin(adminID uint) error
	GetAdminRoles(adminID uint) ([]string, error)
	GetRolePolicies(role string) ([]authz.Policy, error)
}

// AdminAuthService 管理员认证服务
type AdminAuthService struct {
	cfg       *config.Config
	adminRepo repository.AdminRepository
	sessions  *SessionService
	binder    AdminAuthorizer
	metrics   *metrics.Metrics
}

// NewAdminAuthService 创建管理员认证服务
func NewAdminAuthService(cfg *config.Config, adminRepo repository.AdminRepository, sessions *SessionService, binder AdminAuthorizer, m *metrics.Metrics) *AdminAuthService {
	return &AdminAuthService{
		cfg:       cfg,
		adminRepo: adminRepo,
		sessions:  sessions,
		binder:    binder,
		metrics:   m,
	}
}

// AdminLoginInput 管理员登录输入
type AdminLoginInput struct {
	Login     string
	Password  string
	ClientIP  string
	UserAgent string
}

// AdminLoginResult 管理员登录结果
type AdminLoginResult struct {
	Admin     *models.AdminUser
	Token     string
	ExpiresAt time.Time
}

// AdminAccess 管理员角色与可访问的策略
type AdminAccess struct {
	Roles    []string       `json:"roles"`
	Policies []authz.Policy `json:"policies"`
}

// CreateAdminInput 创建管理员输入
type CreateAdminInput struct {
	Name     string
	Login    string
	Email    string
	Password string
}

// Login 管理员登录
func (s *AdminAuthService) Login(ctx context.Context, input AdminLoginInput) (*AdminLoginResult, error) {
	admin, err := s.adminRepo.GetByLogin(ctx, strings.TrimSpace(input.Login))
	if err != nil {
		return nil, persistenceError("get admin", err)
	}
	if admin == nil || bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(input.Password)) != nil {
		s.metrics.ObserveLogin(constants.LoginLogSourceAdmin, false)
		logger.Warnw("admin_login_failed", "login", input.Login, "client_ip", input.ClientIP)
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.sessions.Create(ctx, constants.SessionKindAdmin, admin.ID, admin.Name, SessionMeta{
		ClientIP:  input.ClientIP,
		UserAgent: input.UserAgent,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.adminRepo.UpdateLastLogin(ctx, admin.ID, now); err != nil {
		logger.Warnw("admin_last_login_update_failed", "admin_id", admin.ID, "error", err)
	}
	admin.LastLoginAt = &now
	s.metrics.ObserveLogin(constants.LoginLogSourceAdmin, true)
	return &AdminLoginResult{Admin: admin, Token: token, ExpiresAt: expiresAt}, nil
}

// Logout 注销管理员会话
func (s *AdminAuthService) Logout(ctx context.Context, token string) {
	s.sessions.Destroy(ctx, token)
}

// GetAdmin 获取管理员
func (s *AdminAuthService) GetAdmin(ctx context.Context, id uint) (*models.AdminUser, error) {
	admin, err := s.adminRepo.GetByID(ctx, id)
	if err != nil {
		return nil, persistenceError("get admin", err)
	}
	if admin == nil {
		return nil, ErrAdminNotFound
	}
	return admin, nil
}

// ListAdmins 管理员列表
func (s *AdminAuthService) ListAdmins(ctx context.Context, page, pageSize int) ([]models.AdminUser, int64, error) {
	page, pageSize = normalizePagination(page, pageSize)
	admins, total, err := s.adminRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, 0, persistenceError("list admins", err)
	}
	return admins, total, nil
}

// CreateAdmin 创建管理员并绑定后台角色
func (s *AdminAuthService) CreateAdmin(ctx context.Context, input CreateAdminInput) (*models.AdminUser, error) {
	login := strings.TrimSpace(input.Login)
	name := strings.TrimSpace(input.Name)
	if login == "" {
		return nil, newValidationError("login", ErrInvalidInput)
	}
	if name == "" {
		name = login
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, input.Password); err != nil {
		return nil, err
	}
	exists, err := s.adminRepo.ExistsByLoginOrName(ctx, login, name)
	if err != nil {
		return nil, persistenceError("check admin", err)
	}
	if exists {
		return nil, newValidationError("login", ErrAdminLoginExists)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	admin := &models.AdminUser{
		Name:         name,
		Login:        login,
		Email:        strings.TrimSpace(input.Email),
		PasswordHash: string(hashed),
	}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return nil, persistenceError("create admin", err)
	}
	if s.binder != nil {
		if err := s.binder.BindOperator(admin.ID); err != nil {
			logger.Errorw("admin_role_bind_failed", "admin_id", admin.ID, "error", err)
			return nil, err
		}
	}
	return admin, nil
}

// DeleteAdmin 删除管理员，同时移除其角色并注销全部会话
func (s *AdminAuthService) DeleteAdmin(ctx context.Context, actorID, id uint) error {
	if actorID != 0 && actorID == id {
		return newValidationError("id", ErrAdminDeleteSelf)
	}
	admin, err := s.GetAdmin(ctx, id)
	if err != nil {
		return err
	}
	if err := s.adminRepo.Delete(ctx, admin.ID); err != nil {
		return persistenceError("delete admin", err)
	}
	if s.binder != nil {
		if err := s.binder.RevokeAdmin(admin.ID); err != nil {
			logger.Errorw("admin_role_revoke_failed", "admin_id", admin.ID, "error", err)
			return err
		}
	}
	if err := s.sessions.DestroySubject(ctx, constants.SessionKindAdmin, admin.ID, ""); err != nil {
		logger.Warnw("admin_sessions_destroy_failed", "admin_id", admin.ID, "error", err)
	}
	logger.Infow("admin_deleted", "admin_id", admin.ID, "actor_id", actorID)
	return nil
}

// GetAccess 查询管理员的角色与策略
func (s *AdminAuthService) GetAccess(adminID uint) (*AdminAccess, error) {
	access := &AdminAccess{Roles: []string{}, Policies: []authz.Policy{}}
	if s.binder == nil {
		return access, nil
	}
	roles, err := s.binder.GetAdminRoles(adminID)
	if err != nil {
		return nil, err
	}
	access.Roles = roles
	for _, role := range roles {
		policies, err := s.binder.GetRolePolicies(role)
		if err != nil {
			return nil, err
		}
		access.Policies = append(access.Policies, policies...)
	}
	return access, nil
}
