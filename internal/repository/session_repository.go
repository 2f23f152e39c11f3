package repository

import (
	"context"
	"errors"
	"time"

	"github.com/campus-mall/internal/models"

	"gorm.io/gorm"
)

// SessionRepository 服务端会话数据访问接口
type SessionRepository interface {
	Create(ctx context.Context, session *models.UserSession) error
	GetBySessionID(ctx context.Context, sessionID string) (*models.UserSession, error)
	DeleteBySessionID(ctx context.Context, sessionID string) (int64, error)
	ListIDsBySubject(ctx context.Context, kind string, subjectID uint) ([]string, error)
	DeleteBySubject(ctx context.Context, kind string, subjectID uint) (int64, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// GormSessionRepository GORM 实现
type GormSessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository 创建会话仓库
func NewSessionRepository(db *gorm.DB) *GormSessionRepository {
	return &GormSessionRepository{db: db}
}

// Create 写入会话
func (r *GormSessionRepository) Create(ctx context.Context, session *models.UserSession) error {
	return scoped(ctx, r.db).Create(session).Error
}

// GetBySessionID 根据会话 ID 查询，不存在时返回 nil
func (r *GormSessionRepository) GetBySessionID(ctx context.Context, sessionID string) (*models.UserSession, error) {
	if sessionID == "" {
		return nil, nil
	}
	var session models.UserSession
	if err := scoped(ctx, r.db).Where("session_id = ?", sessionID).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

// DeleteBySessionID 删除会话
func (r *GormSessionRepository) DeleteBySessionID(ctx context.Context, sessionID string) (int64, error) {
	if sessionID == "" {
		return 0, nil
	}
	result := scoped(ctx, r.db).Where("session_id = ?", sessionID).Delete(&models.UserSession{})
	return result.RowsAffected, result.Error
}

// ListIDsBySubject 列出某账号的全部会话 ID
func (r *GormSessionRepository) ListIDsBySubject(ctx context.Context, kind string, subjectID uint) ([]string, error) {
	var ids []string
	err := scoped(ctx, r.db).Model(&models.UserSession{}).
		Where("kind = ? AND subject_id = ?", kind, subjectID).
		Pluck("session_id", &ids).Error
	return ids, err
}

// DeleteBySubject 删除某账号的全部会话
func (r *GormSessionRepository) DeleteBySubject(ctx context.Context, kind string, subjectID uint) (int64, error) {
	result := scoped(ctx, r.db).Where("kind = ? AND subject_id = ?", kind, subjectID).Delete(&models.UserSession{})
	return result.RowsAffected, result.Error
}

// DeleteExpired 清理过期会话
func (r *GormSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := scoped(ctx, r.db).Where("expires_at <= ?", now).Delete(&models.UserSession{})
	return result.RowsAffected, result.Error
}
