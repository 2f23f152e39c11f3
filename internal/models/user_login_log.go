package models

import "time"

// UserLoginLog 会员登录日志
// 说明：登录成功与失败均会追加一条，供后台审计与个人中心展示。
type UserLoginLog struct {
	ID          uint      `gorm:"primarykey" json:"id"`                          // 主键
	UserID      uint      `gorm:"index" json:"user_id"`                          // 用户ID（用户不存在时为0）
	Name        string    `gorm:"type:varchar(100);index" json:"name"`           // 登录尝试的用户名
	Status      string    `gorm:"type:varchar(16);index;not null" json:"status"` // success / failed
	FailReason  string    `gorm:"type:varchar(32);index" json:"fail_reason"`     // 失败原因枚举
	ClientIP    string    `gorm:"type:varchar(64);index" json:"client_ip"`       // 客户端IP
	UserAgent   string    `gorm:"type:text" json:"user_agent"`                   // 客户端UA
	LoginSource string    `gorm:"type:varchar(32);index" json:"login_source"`    // 登录来源
	RequestID   string    `gorm:"type:varchar(64);index" json:"request_id"`      // 请求追踪ID
	CreatedAt   time.Time `gorm:"index" json:"created_at"`                       // 记录时间
}

// TableName 指定表名
func (UserLoginLog) TableName() string {
	return "user_login_logs"
}
