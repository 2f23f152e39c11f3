package models

import "time"

// AdminUser 管理员表，与会员账号体系相互独立
type AdminUser struct {
	ID           uint       `gorm:"primarykey" json:"id"`                               // 主键
	Name         string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"` // 名称
	Login        string     `gorm:"type:varchar(80);uniqueIndex;not null" json:"login"` // 登录账号
	Email        string     `gorm:"type:varchar(120);default:''" json:"email"`          // 邮箱
	PasswordHash string     `gorm:"type:varchar(255);not null" json:"-"`                // 密码哈希
	LastLoginAt  *time.Time `json:"last_login_at"`                                      // 最后登录时间
	CreatedAt    time.Time  `gorm:"index" json:"created_at"`                            // 创建时间
}

// TableName 指定表名
func (AdminUser) TableName() string {
	return "admin_users"
}
