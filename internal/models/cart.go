package models

import "time"

// Cart 购物车，每个用户至多一辆
type Cart struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	Items []CartInfo `gorm:"foreignKey:CartID" json:"items,omitempty"`
}

// TableName 指定表名
func (Cart) TableName() string {
	return "carts"
}

// CartInfo 购物车明细，商品名称与价格为加入时的快照
type CartInfo struct {
	ID           uint      `gorm:"primarykey" json:"id"`                             // 主键
	Quantity     int       `gorm:"not null" json:"quantity"`                         // 数量
	ProductName  string    `gorm:"type:varchar(100);not null" json:"product_name"`   // 商品名称快照
	ProductPrice Money     `gorm:"type:decimal(12,2);not null" json:"product_price"` // 单价快照
	CartID       uint      `gorm:"index;not null" json:"cart_id"`                    // 所属购物车
	ProductID    uint      `gorm:"index;not null" json:"product_id"`                 // 商品ID
	CreatedAt    time.Time `json:"created_at"`                                       // 加入时间
}

// TableName 指定表名
func (CartInfo) TableName() string {
	return "cart_infos"
}

// LineTotal 行小计
func (c CartInfo) LineTotal() Money {
	return c.ProductPrice.MulInt(c.Quantity)
}
