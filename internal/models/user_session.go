package models

import "time"

// UserSession 服务端会话绑定
// Kind 区分会员与管理员，SubjectID 为对应账号主键。
type UserSession struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	SessionID string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"session_id"`
	Kind      string    `gorm:"type:varchar(16);index;not null" json:"kind"`
	SubjectID uint      `gorm:"index;not null" json:"subject_id"`
	Name      string    `gorm:"type:varchar(100)" json:"name"`
	ClientIP  string    `gorm:"type:varchar(64)" json:"client_ip"`
	UserAgent string    `gorm:"type:text" json:"user_agent"`
	ExpiresAt time.Time `gorm:"index;not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName 指定表名
func (UserSession) TableName() string {
	return "user_sessions"
}

// Expired 判断会话是否过期
func (s *UserSession) Expired(now time.Time) bool {
	return s == nil || !now.Before(s.ExpiresAt)
}
