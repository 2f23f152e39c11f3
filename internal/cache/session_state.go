package cache

import (
	"context"
	"time"

	"github.com/campus-mall/internal/models"
)

const tagListCacheKey = "catalog:tags"

// SessionState 会话绑定快照，仅用于 Redis 读穿缓存
type SessionState struct {
	SessionID string `json:"session_id"`
	Kind      string `json:"kind"`
	SubjectID uint   `json:"subject_id"`
	Name      string `json:"name"`
	ExpiresAt int64  `json:"expires_at"`
}

func sessionStateKey(sessionID string) string {
	return "session:" + sessionID
}

// BuildSessionState 从会话行构建快照
func BuildSessionState(session *models.UserSession) *SessionState {
	if session == nil {
		return nil
	}
	return &SessionState{
		SessionID: session.SessionID,
		Kind:      session.Kind,
		SubjectID: session.SubjectID,
		Name:      session.Name,
		ExpiresAt: session.ExpiresAt.Unix(),
	}
}

// Expired 快照是否已过期
func (s *SessionState) Expired(now time.Time) bool {
	return s == nil || now.Unix() >= s.ExpiresAt
}

// GetSessionState 获取会话快照
func (s *Store) GetSessionState(ctx context.Context, sessionID string) (*SessionState, bool, error) {
	if sessionID == "" {
		return nil, false, nil
	}
	var state SessionState
	hit, err := s.GetJSON(ctx, sessionStateKey(sessionID), &state)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &state, true, nil
}

// SetSessionState 写入会话快照，TTL 不超过会话剩余有效期
func (s *Store) SetSessionState(ctx context.Context, state *SessionState, ttl time.Duration) error {
	if state == nil || state.SessionID == "" {
		return nil
	}
	remaining := time.Until(time.Unix(state.ExpiresAt, 0))
	if remaining <= 0 {
		return nil
	}
	if ttl <= 0 || ttl > remaining {
		ttl = remaining
	}
	return s.SetJSON(ctx, sessionStateKey(state.SessionID), state, ttl)
}

// DelSessionState 删除会话快照
func (s *Store) DelSessionState(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.Del(ctx, sessionStateKey(sessionID))
}

// GetTagList 获取分类列表缓存
func (s *Store) GetTagList(ctx context.Context) ([]models.Tag, bool, error) {
	var tags []models.Tag
	hit, err := s.GetJSON(ctx, tagListCacheKey, &tags)
	if err != nil || !hit {
		return nil, hit, err
	}
	return tags, true, nil
}

// SetTagList 写入分类列表缓存
func (s *Store) SetTagList(ctx context.Context, tags []models.Tag, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.SetJSON(ctx, tagListCacheKey, tags, ttl)
}

// InvalidateTagList 分类变更后清除缓存
func (s *Store) InvalidateTagList(ctx context.Context) error {
	return s.Del(ctx, tagListCacheKey)
}
