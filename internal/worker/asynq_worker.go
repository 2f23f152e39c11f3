package worker

import (
	"context"

	"github.com/campus-mall/internal/logger"
	"github.com/campus-mall/internal/metrics"
	"github.com/campus-mall/internal/queue"
	"github.com/campus-mall/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	Catalog  *service.CatalogService
	Sessions *service.SessionService
	Metrics  *metrics.Metrics
}

// NewConsumer 创建消费者
func NewConsumer(catalog *service.CatalogService, sessions *service.SessionService, m *metrics.Metrics) *Consumer {
	return &Consumer{
		Catalog:  catalog,
		Sessions: sessions,
		Metrics:  m,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskProductViewed, c.observe(queue.TaskProductViewed, c.handleProductViewed))
	mux.HandleFunc(queue.TaskOrderPlaced, c.observe(queue.TaskOrderPlaced, c.handleOrderPlaced))
	mux.HandleFunc(queue.TaskSessionPurge, c.observe(queue.TaskSessionPurge, c.handleSessionPurge))
}

func (c *Consumer) observe(taskType string, next asynq.HandlerFunc) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		err := next(ctx, task)
		c.Metrics.ObserveTask(taskType, err == nil)
		return err
	}
}

func (c *Consumer) handleProductViewed(ctx context.Context, task *asynq.Task) error {
	if c.Catalog == nil || task == nil {
		logger.Debugw("worker_product_viewed_skip_nil", "catalog_nil", c.Catalog == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.DecodeProductViewed(task)
	if err != nil {
		logger.Warnw("worker_product_viewed_unmarshal_failed", "error", err)
		return err
	}
	if payload.ProductID == 0 {
		logger.Debugw("worker_product_viewed_skip_invalid_payload")
		return nil
	}
	if err := c.Catalog.IncrementViewCount(ctx, payload.ProductID); err != nil {
		logger.Warnw("worker_product_viewed_failed", "product_id", payload.ProductID, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleOrderPlaced(ctx context.Context, task *asynq.Task) error {
	if c.Catalog == nil || task == nil {
		logger.Debugw("worker_order_placed_skip_nil", "catalog_nil", c.Catalog == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.DecodeOrderPlaced(task)
	if err != nil {
		logger.Warnw("worker_order_placed_unmarshal_failed", "error", err)
		return err
	}
	if len(payload.Lines) == 0 {
		logger.Debugw("worker_order_placed_skip_empty", "order_id", payload.OrderID)
		return nil
	}
	if err := c.Catalog.RecordSales(ctx, payload.Lines); err != nil {
		logger.Warnw("worker_order_placed_record_sales_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	logger.Debugw("worker_order_placed_done", "order_id", payload.OrderID, "lines", len(payload.Lines))
	return nil
}

func (c *Consumer) handleSessionPurge(ctx context.Context, _ *asynq.Task) error {
	if c.Sessions == nil {
		return nil
	}
	purged, err := c.Sessions.PurgeExpired(ctx)
	if err != nil {
		logger.Warnw("worker_session_purge_failed", "error", err)
		return err
	}
	if purged > 0 {
		logger.Infow("worker_session_purged", "count", purged)
	}
	return nil
}
