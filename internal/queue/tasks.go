package queue

import (
	"github.com/campus-mall/internal/constants"

	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"
)

const (
	// TaskProductViewed 商品浏览计数任务
	TaskProductViewed = constants.TaskProductViewed
	// TaskOrderPlaced 下单后销量累计任务
	TaskOrderPlaced = constants.TaskOrderPlaced
	// TaskSessionPurge 过期会话清理任务
	TaskSessionPurge = constants.TaskSessionPurgeTick
)

// ProductViewedPayload 商品浏览任务载荷
type ProductViewedPayload struct {
	ProductID uint `json:"product_id"`
}

// OrderPlacedLine 下单明细中的商品与数量
type OrderPlacedLine struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// OrderPlacedPayload 下单任务载荷
type OrderPlacedPayload struct {
	OrderID uint              `json:"order_id"`
	UserID  uint              `json:"user_id"`
	Lines   []OrderPlacedLine `json:"lines"`
}

// SessionPurgePayload 会话清理任务载荷（无字段）
type SessionPurgePayload struct{}

// NewProductViewedTask 创建商品浏览任务
func NewProductViewedTask(payload ProductViewedPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskProductViewed, body), nil
}

// NewOrderPlacedTask 创建下单任务
func NewOrderPlacedTask(payload OrderPlacedPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderPlaced, body), nil
}

// NewSessionPurgeTask 创建会话清理任务
func NewSessionPurgeTask() *asynq.Task {
	return asynq.NewTask(TaskSessionPurge, nil)
}

// DecodeProductViewed 解析商品浏览任务载荷
func DecodeProductViewed(task *asynq.Task) (ProductViewedPayload, error) {
	var payload ProductViewedPayload
	err := json.Unmarshal(task.Payload(), &payload)
	return payload, err
}

// DecodeOrderPlaced 解析下单任务载荷
func DecodeOrderPlaced(task *asynq.Task) (OrderPlacedPayload, error) {
	var payload OrderPlacedPayload
	err := json.Unmarshal(task.Payload(), &payload)
	return payload, err
}
