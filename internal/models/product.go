package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var discountScale = decimal.NewFromFloat(0.1)

// Product 商品表
type Product struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                  // 主键
	Name        string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`    // 名称
	Price       Money          `gorm:"type:decimal(12,2);not null;default:0" json:"price"`    // 原价
	Discount    Money          `gorm:"type:decimal(4,2);not null;default:10" json:"discount"` // 折扣（0,10]，10 为不打折
	IsFlashSale bool           `gorm:"not null;default:false;index" json:"is_flash_sale"`     // 是否限时特价
	Stock       int            `gorm:"not null;default:0" json:"stock"`                       // 库存
	SellCount   int            `gorm:"not null;default:0;index" json:"sell_count"`            // 销量
	ViewCount   int            `gorm:"not null;default:0" json:"view_count"`                  // 浏览量
	Description string         `gorm:"type:text" json:"description"`                          // 描述
	Pic         string         `gorm:"type:varchar(255);default:''" json:"pic"`               // 图片
	TagID       uint           `gorm:"index" json:"tag_id"`                                   // 所属分类
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                               // 上架时间
	UpdatedAt   time.Time      `json:"updated_at"`                                            // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                        // 软删除时间

	Tag *Tag `gorm:"foreignKey:TagID" json:"tag,omitempty"` // 关联分类
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// TruePrice 折后价 = 原价 × 折扣 × 0.1
func (p *Product) TruePrice() Money {
	if p == nil {
		return Money{}
	}
	discount := p.Discount.Decimal
	if discount.LessThanOrEqual(decimal.Zero) {
		discount = decimal.NewFromInt(10)
	}
	return NewMoneyFromDecimal(p.Price.Decimal.Mul(discount).Mul(discountScale))
}
