package repository

import (
	"context"
	"errors"

	"github.com/campus-mall/internal/models"

	"gorm.io/gorm"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	GetByUser(ctx context.Context, userID uint) (*models.Cart, error)
	Create(ctx context.Context, cart *models.Cart) error
	AddItem(ctx context.Context, item *models.CartInfo) error
	ListItemsByUser(ctx context.Context, userID uint) ([]models.CartInfo, error)
	ClearItems(ctx context.Context, cartID uint) (int64, error)
	WithTx(tx *gorm.DB) CartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) CartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// GetByUser 获取用户购物车，不存在时返回 nil
func (r *GormCartRepository) GetByUser(ctx context.Context, userID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := scoped(ctx, r.db).Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// Create 创建购物车
func (r *GormCartRepository) Create(ctx context.Context, cart *models.Cart) error {
	return scoped(ctx, r.db).Create(cart).Error
}

// AddItem 追加一条购物车明细
func (r *GormCartRepository) AddItem(ctx context.Context, item *models.CartInfo) error {
	return scoped(ctx, r.db).Create(item).Error
}

// ListItemsByUser 经由购物车关联查询用户的全部明细，按加入顺序
func (r *GormCartRepository) ListItemsByUser(ctx context.Context, userID uint) ([]models.CartInfo, error) {
	items := make([]models.CartInfo, 0)
	err := scoped(ctx, r.db).
		Joins("JOIN carts ON carts.id = cart_infos.cart_id").
		Where("carts.user_id = ?", userID).
		Order("cart_infos.id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// ClearItems 清空购物车明细
func (r *GormCartRepository) ClearItems(ctx context.Context, cartID uint) (int64, error) {
	result := scoped(ctx, r.db).Where("cart_id = ?", cartID).Delete(&models.CartInfo{})
	return result.RowsAffected, result.Error
}
