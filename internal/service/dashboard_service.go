package service

import (
	"context"
	"time"

	"github.com/campus-mall/internal/cache"
	"github.com/campus-mall/internal/logger"
	"github.com/campus-mall/internal/models"
	"github.com/campus-mall/internal/repository"
)

const (
	dashboardCacheTTL        = 45 * time.Second
	dashboardCacheKey        = "dashboard:overview"
	dashboardLowStock        = 5
	dashboardTopProductLimit = 10
)

// DashboardService 后台首页概览服务
type DashboardService struct {
	repo  repository.DashboardRepository
	store *cache.Store
}

// NewDashboardService 创建概览服务
func NewDashboardService(repo repository.DashboardRepository, store *cache.Store) *DashboardService {
	return &DashboardService{repo: repo, store: store}
}

// DashboardOverview 后台概览
type DashboardOverview struct {
	GeneratedAt time.Time                               `json:"generated_at"`
	KPI         DashboardKPI                            `json:"kpi"`
	TopProducts []repository.DashboardProductRankingRow `json:"top_products"`
	Alerts      []DashboardAlertItem                    `json:"alerts"`
}

// DashboardKPI 核心指标
type DashboardKPI struct {
	UsersTotal           int64        `json:"users_total"`
	ProductsTotal        int64        `json:"products_total"`
	FlashSaleProducts    int64        `json:"flash_sale_products"`
	OutOfStockProducts   int64        `json:"out_of_stock_products"`
	LowStockProducts     int64        `json:"low_stock_products"`
	OrdersTotal          int64        `json:"orders_total"`
	PendingStorageOrders int64        `json:"pending_storage_orders"`
	AwaitingPayOrders    int64        `json:"awaiting_pay_orders"`
	PaidOrders           int64        `json:"paid_orders"`
	PaidAmount           models.Money `json:"paid_amount"`
	CommentsTotal        int64        `json:"comments_total"`
}

// DashboardAlertItem 告警项
type DashboardAlertItem struct {
	Type  string `json:"type"`
	Level string `json:"level"`
	Value int64  `json:"value"`
}

// GetOverview 获取概览，forceRefresh 为 true 时跳过缓存
func (s *DashboardService) GetOverview(ctx context.Context, forceRefresh bool) (*DashboardOverview, error) {
	if !forceRefresh {
		var cached DashboardOverview
		hit, err := s.store.GetJSON(ctx, dashboardCacheKey, &cached)
		if err != nil {
			logger.Warnw("dashboard_cache_get_failed", "error", err)
		} else if hit {
			return &cached, nil
		}
	}

	row, err := s.repo.GetOverview(ctx, dashboardLowStock)
	if err != nil {
		return nil, persistenceError("dashboard overview", err)
	}
	top, err := s.repo.GetTopProducts(ctx, dashboardTopProductLimit)
	if err != nil {
		return nil, persistenceError("dashboard top products", err)
	}

	kpi := DashboardKPI{
		UsersTotal:           row.UsersTotal,
		ProductsTotal:        row.ProductsTotal,
		FlashSaleProducts:    row.FlashSaleProducts,
		OutOfStockProducts:   row.OutOfStockProducts,
		LowStockProducts:     row.LowStockProducts,
		OrdersTotal:          row.OrdersTotal,
		PendingStorageOrders: row.PendingStorageOrders,
		AwaitingPayOrders:    row.AwaitingPayOrders,
		PaidOrders:           row.PaidOrders,
		PaidAmount:           row.PaidAmount,
		CommentsTotal:        row.CommentsTotal,
	}
	overview := &DashboardOverview{
		GeneratedAt: time.Now(),
		KPI:         kpi,
		TopProducts: top,
		Alerts:      buildDashboardAlerts(kpi),
	}
	if err := s.store.SetJSON(ctx, dashboardCacheKey, overview, dashboardCacheTTL); err != nil {
		logger.Warnw("dashboard_cache_set_failed", "error", err)
	}
	return overview, nil
}

func buildDashboardAlerts(kpi DashboardKPI) []DashboardAlertItem {
	alerts := make([]DashboardAlertItem, 0, 3)
	if kpi.OutOfStockProducts > 0 {
		alerts = append(alerts, DashboardAlertItem{Type: "out_of_stock_products", Level: "error", Value: kpi.OutOfStockProducts})
	}
	if kpi.LowStockProducts > 0 {
		alerts = append(alerts, DashboardAlertItem{Type: "low_stock_products", Level: "warning", Value: kpi.LowStockProducts})
	}
	if kpi.PendingStorageOrders > 0 {
		alerts = append(alerts, DashboardAlertItem{Type: "pending_storage_orders", Level: "info", Value: kpi.PendingStorageOrders})
	}
	return alerts
}
