package models

import "time"

// Tag 商品分类
type Tag struct {
	ID        uint      `gorm:"primarykey" json:"id"`                               // 主键
	Name      string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"` // 标题
	CreatedAt time.Time `gorm:"index" json:"created_at"`                            // 添加时间
}

// TableName 指定表名
func (Tag) TableName() string {
	return "tags"
}
