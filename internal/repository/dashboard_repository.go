package repository

import (
	"context"

	"github.com/campus-mall/internal/constants"
	"github.com/campus-mall/internal/models"

	"gorm.io/gorm"
)

// DashboardRepository 后台总览聚合查询接口
// 说明：仅聚合统计数据，不承载业务规则。
type DashboardRepository interface {
	GetOverview(ctx context.Context, lowStockThreshold int) (DashboardOverviewRow, error)
	GetTopProducts(ctx context.Context, limit int) ([]DashboardProductRankingRow, error)
}

// DashboardOverviewRow 总览原始统计结果
type DashboardOverviewRow struct {
	UsersTotal           int64
	ProductsTotal        int64
	FlashSaleProducts    int64
	OutOfStockProducts   int64
	LowStockProducts     int64
	OrdersTotal          int64
	PendingStorageOrders int64
	AwaitingPayOrders    int64
	PaidOrders           int64
	PaidAmount           models.Money
	CommentsTotal        int64
}

// DashboardProductRankingRow 商品销量排行行
type DashboardProductRankingRow struct {
	ProductID uint
	Name      string
	SellCount int64
	ViewCount int64
}

// GormDashboardRepository GORM 聚合实现
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository 创建总览仓库
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// GetOverview 获取总览统计
func (r *GormDashboardRepository) GetOverview(ctx context.Context, lowStockThreshold int) (DashboardOverviewRow, error) {
	result := DashboardOverviewRow{}
	db := scoped(ctx, r.db)

	counts := []struct {
		query *gorm.DB
		dest  *int64
	}{
		{db.Model(&models.User{}), &result.UsersTotal},
		{db.Model(&models.Product{}), &result.ProductsTotal},
		{db.Model(&models.Product{}).Where("is_flash_sale = ?", true), &result.FlashSaleProducts},
		{db.Model(&models.Product{}).Where("stock <= 0"), &result.OutOfStockProducts},
		{db.Model(&models.Product{}).Where("stock > 0 AND stock <= ?", lowStockThreshold), &result.LowStockProducts},
		{db.Model(&models.Order{}), &result.OrdersTotal},
		{db.Model(&models.Order{}).Where("status = ?", constants.OrderStatusPendingStorage), &result.PendingStorageOrders},
		{db.Model(&models.Order{}).Where("status = ?", constants.OrderStatusAwaitingPayment), &result.AwaitingPayOrders},
		{db.Model(&models.Order{}).Where("status = ?", constants.OrderStatusPaid), &result.PaidOrders},
		{db.Model(&models.Comment{}), &result.CommentsTotal},
	}
	for _, item := range counts {
		if err := item.query.Count(item.dest).Error; err != nil {
			return result, err
		}
	}

	// 仅统计已支付订单
	var paid struct {
		Total models.Money
	}
	err := db.Model(&models.Order{}).
		Select("COALESCE(SUM(subtotal), 0) AS total").
		Where("status = ?", constants.OrderStatusPaid).
		Scan(&paid).Error
	if err != nil {
		return result, err
	}
	result.PaidAmount = paid.Total
	return result, nil
}

// GetTopProducts 按销量取前 N 个商品
func (r *GormDashboardRepository) GetTopProducts(ctx context.Context, limit int) ([]DashboardProductRankingRow, error) {
	if limit <= 0 {
		limit = 5
	}
	rows := make([]DashboardProductRankingRow, 0, limit)
	err := scoped(ctx, r.db).Model(&models.Product{}).
		Select("id AS product_id, name, sell_count, view_count").
		Order("sell_count DESC, id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
