package models

import "time"

// Order 订单表，每个用户复用同一订单累积明细
type Order struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                  // 主键
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`                   // 下单用户
	Status    int       `gorm:"not null;default:0;index" json:"status"`                // 0 待入库 / 1 待支付 / 2 已支付
	Subtotal  Money     `gorm:"type:decimal(12,2);not null;default:0" json:"subtotal"` // 小计
	CreatedAt time.Time `gorm:"index" json:"created_at"`                               // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                            // 更新时间

	Items []OrderInfo `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	User  *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// OrderInfo 订单明细
type OrderInfo struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Quantity     int       `gorm:"not null" json:"quantity"`
	ProductName  string    `gorm:"type:varchar(100);not null" json:"product_name"`
	ProductPrice Money     `gorm:"type:decimal(12,2);not null" json:"product_price"`
	OrderID      uint      `gorm:"index;not null" json:"order_id"`
	ProductID    uint      `gorm:"index;not null" json:"product_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName 指定表名
func (OrderInfo) TableName() string {
	return "order_infos"
}

// LineTotal 行小计
func (o OrderInfo) LineTotal() Money {
	return o.ProductPrice.MulInt(o.Quantity)
}
