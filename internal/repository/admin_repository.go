package repository

import (
	"context"
	"errors"
	"time"

	"github.com/campus-mall/internal/models"

	"gorm.io/gorm"
)

// AdminRepository 管理员数据访问接口
type AdminRepository interface {
	GetByLogin(ctx context.Context, login string) (*models.AdminUser, error)
	GetByID(ctx context.Context, id uint) (*models.AdminUser, error)
	List(ctx context.Context, page, pageSize int) ([]models.AdminUser, int64, error)
	Count(ctx context.Context) (int64, error)
	ExistsByLoginOrName(ctx context.Context, login, name string) (bool, error)
	Create(ctx context.Context, admin *models.AdminUser) error
	UpdateLastLogin(ctx context.Context, id uint, at time.Time) error
	Delete(ctx context.Context, id uint) error
}

// GormAdminRepository GORM 实现
type GormAdminRepository struct {
	db *gorm.DB
}

// NewAdminRepository 创建管理员仓库
func NewAdminRepository(db *gorm.DB) *GormAdminRepository {
	return &GormAdminRepository{db: db}
}

// GetByLogin 根据登录账号获取管理员
func (r *GormAdminRepository) GetByLogin(ctx context.Context, login string) (*models.AdminUser, error) {
	var admin models.AdminUser
	if err := scoped(ctx, r.db).Where("login = ?", login).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

// GetByID 根据 ID 获取管理员
func (r *GormAdminRepository) GetByID(ctx context.Context, id uint) (*models.AdminUser, error) {
	var admin models.AdminUser
	if err := scoped(ctx, r.db).First(&admin, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

// List 获取管理员列表
func (r *GormAdminRepository) List(ctx context.Context, page, pageSize int) ([]models.AdminUser, int64, error) {
	query := scoped(ctx, r.db).Model(&models.AdminUser{})
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	admins := make([]models.AdminUser, 0)
	err := applyPagination(query, page, pageSize).
		Select("id", "name", "login", "email", "last_login_at", "created_at").
		Order("id ASC").
		Find(&admins).Error
	if err != nil {
		return nil, 0, err
	}
	return admins, total, nil
}

// Count 统计管理员数量
func (r *GormAdminRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := scoped(ctx, r.db).Model(&models.AdminUser{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByLoginOrName 登录账号或名称是否已存在
func (r *GormAdminRepository) ExistsByLoginOrName(ctx context.Context, login, name string) (bool, error) {
	var count int64
	err := scoped(ctx, r.db).Model(&models.AdminUser{}).
		Where("login = ? OR name = ?", login, name).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create 创建管理员
func (r *GormAdminRepository) Create(ctx context.Context, admin *models.AdminUser) error {
	return scoped(ctx, r.db).Create(admin).Error
}

// UpdateLastLogin 更新最后登录时间
func (r *GormAdminRepository) UpdateLastLogin(ctx context.Context, id uint, at time.Time) error {
	return scoped(ctx, r.db).Model(&models.AdminUser{}).Where("id = ?", id).Update("last_login_at", at).Error
}

// Delete 删除管理员
func (r *GormAdminRepository) Delete(ctx context.Context, id uint) error {
	return scoped(ctx, r.db).Delete(&models.AdminUser{}, id).Error
}
