package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/campus-mall/internal/models"

	"gorm.io/gorm"
)

// 允许做唯一性校验的用户字段
var userUniqueColumns = map[string]struct{}{
	"name":  {},
	"email": {},
	"phone": {},
	"card":  {},
}

// UserRepository 用户数据访问接口
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByName(ctx context.Context, name string) (*models.User, error)
	ExistsBy(ctx context.Context, column, value string, excludeID uint) (bool, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	UpdateLastLogin(ctx context.Context, id uint, at time.Time) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter UserListFilter) ([]models.User, int64, error)
	WithTx(tx *gorm.DB) UserRepository
}

// GormUserRepository GORM 实现
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓库
func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// WithTx 绑定事务
func (r *GormUserRepository) WithTx(tx *gorm.DB) UserRepository {
	if tx == nil {
		return r
	}
	return &GormUserRepository{db: tx}
}

// GetByID 根据 ID 获取用户
func (r *GormUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := scoped(ctx, r.db).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetByName 根据用户名获取用户
func (r *GormUserRepository) GetByName(ctx context.Context, name string) (*models.User, error) {
	var user models.User
	if err := scoped(ctx, r.db).Where("name = ?", name).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// ExistsBy 判断唯一字段是否已被其他用户占用，excludeID 为 0 时不排除
// 软删除的用户同样占用唯一索引，因此使用 Unscoped 计数。
func (r *GormUserRepository) ExistsBy(ctx context.Context, column, value string, excludeID uint) (bool, error) {
	if _, ok := userUniqueColumns[column]; !ok {
		return false, fmt.Errorf("user exists check: unsupported column %q", column)
	}
	query := scoped(ctx, r.db).Unscoped().Model(&models.User{}).Where(column+" = ?", value)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create 创建用户
func (r *GormUserRepository) Create(ctx context.Context, user *models.User) error {
	return scoped(ctx, r.db).Create(user).Error
}

// Update 更新用户
func (r *GormUserRepository) Update(ctx context.Context, user *models.User) error {
	return scoped(ctx, r.db).Save(user).Error
}

// UpdateLastLogin 记录最后登录时间
func (r *GormUserRepository) UpdateLastLogin(ctx context.Context, id uint, at time.Time) error {
	return scoped(ctx, r.db).Model(&models.User{}).Where("id = ?", id).Update("last_login_at", at).Error
}

// Delete 删除用户
func (r *GormUserRepository) Delete(ctx context.Context, id uint) error {
	return scoped(ctx, r.db).Delete(&models.User{}, id).Error
}

// List 用户列表
func (r *GormUserRepository) List(ctx context.Context, filter UserListFilter) ([]models.User, int64, error) {
	query := scoped(ctx, r.db).Model(&models.User{})
	query = whereKeyword(query, filter.Keyword, "name", "email", "phone")
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var users []models.User
	if err := query.Order("id DESC").Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}
