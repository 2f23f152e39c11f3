package repository

import (
	"context"
	"errors"

	"github.com/campus-mall/internal/constants"
	"github.com/campus-mall/internal/models"

	"gorm.io/gorm"
)

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	List(ctx context.Context, filter ProductListFilter) ([]models.Product, int64, error)
	Search(ctx context.Context, filter ProductSearchFilter) ([]models.Product, int64, error)
	ListAdmin(ctx context.Context, filter ProductAdminFilter) ([]models.Product, int64, error)
	ListFlashSale(ctx context.Context, excludeID uint, limit int) ([]models.Product, error)
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	ExistsByName(ctx context.Context, name string, excludeID uint) (bool, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uint) error
	IncrementViewCount(ctx context.Context, id uint, delta int) (int64, error)
	IncrementSellCount(ctx context.Context, id uint, delta int) (int64, error)
	WithTx(tx *gorm.DB) ProductRepository
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductRepository) WithTx(tx *gorm.DB) ProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// productOrderClause 前台列表排序；未指定排序键时按 ID 升序
func productOrderClause(sortKey string, desc bool) string {
	dir := "ASC"
	if desc {
		dir = "DESC"
	}
	switch sortKey {
	case constants.ProductSortTime:
		return "created_at " + dir + ", id " + dir
	case constants.ProductSortSell:
		return "sell_count " + dir + ", id " + dir
	default:
		return "id ASC"
	}
}

// List 前台商品列表，超出末页时返回空列表
func (r *GormProductRepository) List(ctx context.Context, filter ProductListFilter) ([]models.Product, int64, error) {
	query := scoped(ctx, r.db).Model(&models.Product{})
	if filter.TagID != 0 {
		query = query.Where("tag_id = ?", filter.TagID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	products := make([]models.Product, 0)
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order(productOrderClause(filter.SortKey, filter.SortDesc)).Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// Search 名称子串搜索（不区分大小写），按上架时间倒序
func (r *GormProductRepository) Search(ctx context.Context, filter ProductSearchFilter) ([]models.Product, int64, error) {
	query := whereKeyword(scoped(ctx, r.db).Model(&models.Product{}), filter.Keyword, "name")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	products := make([]models.Product, 0)
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("created_at DESC, id DESC").Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// ListAdmin 后台商品列表
func (r *GormProductRepository) ListAdmin(ctx context.Context, filter ProductAdminFilter) ([]models.Product, int64, error) {
	query := scoped(ctx, r.db).Model(&models.Product{})
	query = whereKeyword(query, filter.Keyword, "name", "description")
	if filter.TagID != 0 {
		query = query.Where("tag_id = ?", filter.TagID)
	}
	if filter.FlashSale != nil {
		query = query.Where("is_flash_sale = ?", *filter.FlashSale)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	products := make([]models.Product, 0)
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Preload("Tag").Order("id DESC").Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// ListFlashSale 限时特价商品，excludeID 非 0 时排除当前商品
func (r *GormProductRepository) ListFlashSale(ctx context.Context, excludeID uint, limit int) ([]models.Product, error) {
	query := scoped(ctx, r.db).Where("is_flash_sale = ?", true)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	products := make([]models.Product, 0)
	if err := query.Order("id ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// GetByID 根据 ID 获取商品（含分类）
func (r *GormProductRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := scoped(ctx, r.db).Preload("Tag").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// ExistsByName 名称是否被占用（含已软删除的商品）
func (r *GormProductRepository) ExistsByName(ctx context.Context, name string, excludeID uint) (bool, error) {
	query := scoped(ctx, r.db).Unscoped().Model(&models.Product{}).Where("name = ?", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create 创建商品
func (r *GormProductRepository) Create(ctx context.Context, product *models.Product) error {
	return scoped(ctx, r.db).Create(product).Error
}

// Update 更新商品
func (r *GormProductRepository) Update(ctx context.Context, product *models.Product) error {
	return scoped(ctx, r.db).Omit("Tag").Save(product).Error
}

// Delete 删除商品
func (r *GormProductRepository) Delete(ctx context.Context, id uint) error {
	return scoped(ctx, r.db).Delete(&models.Product{}, id).Error
}

// IncrementViewCount 浏览量自增
func (r *GormProductRepository) IncrementViewCount(ctx context.Context, id uint, delta int) (int64, error) {
	return r.increment(ctx, id, "view_count", delta)
}

// IncrementSellCount 销量自增
func (r *GormProductRepository) IncrementSellCount(ctx context.Context, id uint, delta int) (int64, error) {
	return r.increment(ctx, id, "sell_count", delta)
}

func (r *GormProductRepository) increment(ctx context.Context, id uint, column string, delta int) (int64, error) {
	if id == 0 || delta <= 0 {
		return 0, nil
	}
	result := scoped(ctx, r.db).Model(&models.Product{}).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + ?", delta))
	return result.RowsAffected, result.Error
}
