package service

import (
	"context"
	"errors"

	"github.com/campus-mall/internal/constants"
	"github.com/campus-mall/internal/logger"
	"github.com/campus-mall/internal/metrics"
	"github.com/campus-mall/internal/models"
	"github.com/campus-mall/internal/queue"
	"github.com/campus-mall/internal/repository"

	"gorm.io/gorm"
)

// 订单状态只允许向前流转
var allowedTransitions = map[int]map[int]bool{
	constants.OrderStatusPendingStorage: {
		constants.OrderStatusAwaitingPayment: true,
		constants.OrderStatusPaid:            true,
	},
	constants.OrderStatusAwaitingPayment: {
		constants.OrderStatusPaid: true,
	},
}

// OrderService 订单服务
type OrderService struct {
	db        *gorm.DB
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
	catalog   *CatalogService
	queue     *queue.Client
	metrics   *metrics.Metrics
}

// NewOrderService 创建订单服务
func NewOrderService(db *gorm.DB, orderRepo repository.OrderRepository, cartRepo repository.CartRepository, catalog *CatalogService, queueClient *queue.Client, m *metrics.Metrics) *OrderService {
	return &OrderService{
		db:        db,
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		catalog:   catalog,
		queue:     queueClient,
		metrics:   m,
	}
}

// Checkout 将购物车转换为订单
// 每个用户复用同一张订单，购物车明细逐条复制为订单明细并累加小计，
// 全部写入与清空购物车在同一事务内完成，任一步失败整体回滚。
func (s *OrderService) Checkout(ctx context.Context, userID uint) (*models.Order, error) {
	if userID == 0 {
		return nil, ErrLoginRequired
	}

	var (
		orderID uint
		placed  []queue.OrderPlacedLine
	)
	err := repository.RunInTx(ctx, s.db, func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		cartRepo := s.cartRepo.WithTx(tx)

		order, err := orderRepo.GetByUser(ctx, userID)
		if err != nil {
			return persistenceError("get order", err)
		}
		if order == nil {
			order = &models.Order{
				UserID: userID,
				Status: constants.OrderStatusPendingStorage,
			}
			if err := orderRepo.Create(ctx, order); err != nil {
				return persistenceError("create order", err)
			}
		}
		orderID = order.ID

		cart, err := cartRepo.GetByUser(ctx, userID)
		if err != nil {
			return persistenceError("get cart", err)
		}
		if cart == nil {
			return nil
		}
		lines, err := cartRepo.ListItemsByUser(ctx, userID)
		if err != nil {
			return persistenceError("list cart items", err)
		}
		if len(lines) == 0 {
			return nil
		}

		subtotal := order.Subtotal
		infos := make([]models.OrderInfo, 0, len(lines))
		for _, line := range lines {
			info := models.OrderInfo{
				Quantity:     line.Quantity,
				ProductName:  line.ProductName,
				ProductPrice: line.ProductPrice,
				OrderID:      order.ID,
				ProductID:    line.ProductID,
			}
			infos = append(infos, info)
			subtotal = subtotal.Add(info.LineTotal())
			placed = append(placed, queue.OrderPlacedLine{ProductID: line.ProductID, Quantity: line.Quantity})
		}
		if err := orderRepo.AddItems(ctx, infos); err != nil {
			return persistenceError("add order items", err)
		}
		if err := orderRepo.UpdateSubtotal(ctx, order.ID, subtotal); err != nil {
			return persistenceError("update order subtotal", err)
		}
		if _, err := cartRepo.ClearItems(ctx, cart.ID); err != nil {
			return persistenceError("clear cart", err)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrPersistence) {
			err = persistenceError("checkout", err)
		}
		logger.Errorw("checkout_commit_failed", "user_id", userID, "error", err)
		s.metrics.ObserveCheckout(false, 0)
		return nil, err
	}
	s.metrics.ObserveCheckout(true, len(placed))

	if len(placed) > 0 {
		s.recordSales(ctx, queue.OrderPlacedPayload{OrderID: orderID, UserID: userID, Lines: placed})
	}
	return s.GetOrder(ctx, orderID)
}

// GetOrder 获取订单与明细
func (s *OrderService) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, persistenceError("get order", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListForAdmin 后台订单列表
func (s *OrderService) ListForAdmin(ctx context.Context, filter repository.OrderListFilter) ([]models.Order, int64, error) {
	filter.Page, filter.PageSize = normalizePagination(filter.Page, filter.PageSize)
	orders, total, err := s.orderRepo.ListAdmin(ctx, filter)
	if err != nil {
		return nil, 0, persistenceError("list orders", err)
	}
	return orders, total, nil
}

// UpdateStatus 后台更新订单状态，仅允许向前流转
func (s *OrderService) UpdateStatus(ctx context.Context, id uint, target int) (*models.Order, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isTransitionAllowed(order.Status, target) {
		return nil, newValidationError("status", ErrOrderStatusInvalid)
	}
	affected, err := s.orderRepo.UpdateStatus(ctx, order.ID, order.Status, target)
	if err != nil {
		return nil, persistenceError("update order status", err)
	}
	if affected == 0 {
		return nil, newValidationError("status", ErrOrderStatusInvalid)
	}
	logger.Infow("order_status_updated", "order_id", order.ID, "from", order.Status, "to", target)
	return s.GetOrder(ctx, order.ID)
}

// recordSales 队列可用时异步累计销量，否则同步执行
func (s *OrderService) recordSales(ctx context.Context, payload queue.OrderPlacedPayload) {
	if s.queue.Enabled() {
		err := s.queue.EnqueueOrderPlaced(payload)
		if err == nil {
			return
		}
		logger.Warnw("order_placed_enqueue_failed", "order_id", payload.OrderID, "error", err)
	}
	if s.catalog == nil {
		return
	}
	if err := s.catalog.RecordSales(ctx, payload.Lines); err != nil {
		logger.Warnw("order_sales_record_failed", "order_id", payload.OrderID, "error", err)
	}
}

func isTransitionAllowed(current, target int) bool {
	nexts, ok := allowedTransitions[current]
	if !ok {
		return false
	}
	return nexts[target]
}
