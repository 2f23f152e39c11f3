package models

import (
	"time"

	"gorm.io/gorm"
)

// User 会员表
type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`                                // 主键
	Name         string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`  // 昵称
	PasswordHash string         `gorm:"type:varchar(100);not null" json:"-"`                 // 密码哈希（不返回给前端）
	Email        string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"` // 邮箱
	Phone        string         `gorm:"type:varchar(11);uniqueIndex;not null" json:"phone"`  // 手机
	Card         *string        `gorm:"type:varchar(255);uniqueIndex" json:"card,omitempty"` // 银行卡（可空，非空时唯一）
	Face         string         `gorm:"type:varchar(255);default:''" json:"face"`            // 头像
	Address      string         `gorm:"type:varchar(255);default:''" json:"address"`         // 收货地址
	Location     string         `gorm:"type:varchar(255);default:''" json:"location"`        // 学校与宿舍楼层
	Info         string         `gorm:"type:text" json:"info"`                               // 简介
	LastLoginAt  *time.Time     `json:"last_login_at"`                                       // 最后登录时间
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                             // 注册时间
	UpdatedAt    time.Time      `json:"updated_at"`                                          // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                                      // 软删除时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// CardNumber 返回银行卡号，未绑定时为空串
func (u *User) CardNumber() string {
	if u == nil || u.Card == nil {
		return ""
	}
	return *u.Card
}
