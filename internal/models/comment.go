package models

import "time"

// Comment 商品评论
type Comment struct {
	ID        uint      `gorm:"primarykey" json:"id"`              // 主键
	Content   string    `gorm:"type:text;not null" json:"content"` // 评论内容
	ProductID uint      `gorm:"index;not null" json:"product_id"`  // 所属商品
	UserID    uint      `gorm:"index;not null" json:"user_id"`     // 所属用户
	CreatedAt time.Time `gorm:"index" json:"created_at"`           // 添加时间

	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName 指定表名
func (Comment) TableName() string {
	return "comments"
}
