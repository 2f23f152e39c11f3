package repository

import (
	"context"
	"errors"

	"github.com/campus-mall/internal/models"

	"gorm.io/gorm"
)

// OrderRepository 订单数据访问接口
type OrderRepository interface {
	GetByUser(ctx context.Context, userID uint) (*models.Order, error)
	GetByID(ctx context.Context, id uint) (*models.Order, error)
	Create(ctx context.Context, order *models.Order) error
	AddItems(ctx context.Context, items []models.OrderInfo) error
	UpdateSubtotal(ctx context.Context, id uint, subtotal models.Money) error
	UpdateStatus(ctx context.Context, id uint, from, to int) (int64, error)
	ListAdmin(ctx context.Context, filter OrderListFilter) ([]models.Order, int64, error)
	WithTx(tx *gorm.DB) OrderRepository
}

// GormOrderRepository GORM 实现
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx 绑定事务
func (r *GormOrderRepository) WithTx(tx *gorm.DB) OrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

// GetByUser 获取用户的订单（每个用户至多复用一张），不存在时返回 nil
func (r *GormOrderRepository) GetByUser(ctx context.Context, userID uint) (*models.Order, error) {
	var order models.Order
	if err := scoped(ctx, r.db).Where("user_id = ?", userID).Order("id ASC").First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByID 根据 ID 获取订单与明细
func (r *GormOrderRepository) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	query := scoped(ctx, r.db).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	})
	if err := query.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// Create 创建订单
func (r *GormOrderRepository) Create(ctx context.Context, order *models.Order) error {
	return scoped(ctx, r.db).Omit("Items", "User").Create(order).Error
}

// AddItems 批量写入订单明细
func (r *GormOrderRepository) AddItems(ctx context.Context, items []models.OrderInfo) error {
	if len(items) == 0 {
		return nil
	}
	return scoped(ctx, r.db).Create(&items).Error
}

// UpdateSubtotal 持久化订单小计
func (r *GormOrderRepository) UpdateSubtotal(ctx context.Context, id uint, subtotal models.Money) error {
	return scoped(ctx, r.db).Model(&models.Order{}).Where("id = ?", id).Update("subtotal", subtotal).Error
}

// UpdateStatus 条件更新状态，仅当当前状态为 from 时生效，返回影响行数
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, id uint, from, to int) (int64, error) {
	result := scoped(ctx, r.db).Model(&models.Order{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return result.RowsAffected, result.Error
}

// ListAdmin 后台订单列表
func (r *GormOrderRepository) ListAdmin(ctx context.Context, filter OrderListFilter) ([]models.Order, int64, error) {
	query := scoped(ctx, r.db).Model(&models.Order{})
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orders := make([]models.Order, 0)
	query = applyPagination(query, filter.Page, filter.PageSize)
	err := query.Preload("User", func(db *gorm.DB) *gorm.DB {
		return db.Unscoped().Select("id", "name", "email", "phone")
	}).Order("id DESC").Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}
