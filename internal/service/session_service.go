package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/campus-mall/internal/cache"
	"github.com/campus-mall/internal/config"
	"github.com/campus-mall/internal/logger"
	"github.com/campus-mall/internal/models"
	"github.com/campus-mall/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionClaims 会话令牌声明，ID 字段承载服务端会话 ID
type SessionClaims struct {
	Kind      string `json:"kind"`
	SubjectID uint   `json:"subject_id"`
	Name      string `json:"name"`
	jwt.RegisteredClaims
}

// SessionMeta 建立会话时的客户端信息
type SessionMeta struct {
	ClientIP  string
	UserAgent string
}

// SessionIdentity 解析后的会话身份
type SessionIdentity struct {
	SessionID string
	Kind      string
	SubjectID uint
	Name      string
	ExpiresAt time.Time
}

// SessionService 会话服务
// 令牌只是签名后的会话 ID，真正的绑定关系保存在 user_sessions 表，Redis 做读穿缓存。
type SessionService struct {
	cfg   config.SessionConfig
	repo  repository.SessionRepository
	store *cache.Store
	now   func() time.Time
}

// NewSessionService 创建会话服务
func NewSessionService(cfg config.SessionConfig, repo repository.SessionRepository, store *cache.Store) *SessionService {
	return &SessionService{
		cfg:   cfg,
		repo:  repo,
		store: store,
		now:   time.Now,
	}
}

// Create 建立会话并签发令牌
func (s *SessionService) Create(ctx context.Context, kind string, subjectID uint, name string, meta SessionMeta) (string, time.Time, error) {
	if subjectID == 0 || strings.TrimSpace(kind) == "" {
		return "", time.Time{}, ErrSessionInvalid
	}
	now := s.now()
	expiresAt := now.Add(s.ttl())
	session := &models.UserSession{
		SessionID: uuid.NewString(),
		Kind:      kind,
		SubjectID: subjectID,
		Name:      name,
		ClientIP:  meta.ClientIP,
		UserAgent: meta.UserAgent,
		ExpiresAt: expiresAt,
		CreatedAt: now,
	}
	if err := s.repo.Create(ctx, session); err != nil {
		return "", time.Time{}, persistenceError("create session", err)
	}

	claims := SessionClaims{
		Kind:      kind,
		SubjectID: subjectID,
		Name:      name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.SessionID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", time.Time{}, err
	}

	if err := s.store.SetSessionState(ctx, cache.BuildSessionState(session), s.cacheTTL()); err != nil {
		logger.Warnw("session_cache_set_failed", "session_id", session.SessionID, "error", err)
	}
	return token, expiresAt, nil
}

// Resolve 解析令牌并校验服务端绑定
func (s *SessionService) Resolve(ctx context.Context, kind, token string) (*SessionIdentity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrSessionNotFound
	}
	claims, err := s.parse(token, true)
	if err != nil {
		return nil, ErrSessionInvalid
	}
	if claims.Kind != kind || claims.ID == "" {
		return nil, ErrSessionInvalid
	}

	now := s.now()
	state, hit, err := s.store.GetSessionState(ctx, claims.ID)
	if err != nil {
		logger.Warnw("session_cache_get_failed", "session_id", claims.ID, "error", err)
	}
	if !hit || state == nil {
		row, err := s.repo.GetBySessionID(ctx, claims.ID)
		if err != nil {
			return nil, persistenceError("get session", err)
		}
		if row == nil {
			return nil, ErrSessionNotFound
		}
		state = cache.BuildSessionState(row)
		if !row.Expired(now) {
			if err := s.store.SetSessionState(ctx, state, s.cacheTTL()); err != nil {
				logger.Warnw("session_cache_set_failed", "session_id", claims.ID, "error", err)
			}
		}
	}
	if state.Expired(now) {
		return nil, ErrSessionNotFound
	}
	if state.Kind != claims.Kind || state.SubjectID != claims.SubjectID {
		return nil, ErrSessionInvalid
	}
	return &SessionIdentity{
		SessionID: state.SessionID,
		Kind:      state.Kind,
		SubjectID: state.SubjectID,
		Name:      state.Name,
		ExpiresAt: time.Unix(state.ExpiresAt, 0),
	}, nil
}

// Destroy 注销会话，任何令牌（含过期与非法令牌）都视为成功
func (s *SessionService) Destroy(ctx context.Context, token string) {
	token = strings.TrimSpace(token)
	if token == "" {
		return
	}
	claims, err := s.parse(token, false)
	if err != nil || claims.ID == "" {
		return
	}
	s.destroyByID(ctx, claims.ID)
}

// DestroySubject 注销某账号除 keepSessionID 以外的全部会话
func (s *SessionService) DestroySubject(ctx context.Context, kind string, subjectID uint, keepSessionID string) error {
	ids, err := s.repo.ListIDsBySubject(ctx, kind, subjectID)
	if err != nil {
		return persistenceError("list sessions", err)
	}
	for _, id := range ids {
		if id == keepSessionID {
			continue
		}
		s.destroyByID(ctx, id)
	}
	return nil
}

// PurgeExpired 清理过期会话
func (s *SessionService) PurgeExpired(ctx context.Context) (int64, error) {
	count, err := s.repo.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, persistenceError("purge sessions", err)
	}
	return count, nil
}

func (s *SessionService) destroyByID(ctx context.Context, sessionID string) {
	if _, err := s.repo.DeleteBySessionID(ctx, sessionID); err != nil {
		logger.Warnw("session_delete_failed", "session_id", sessionID, "error", err)
	}
	if err := s.store.DelSessionState(ctx, sessionID); err != nil {
		logger.Warnw("session_cache_delete_failed", "session_id", sessionID, "error", err)
	}
}

func (s *SessionService) parse(token string, validate bool) (*SessionClaims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if !validate {
		opts = append(opts, jwt.WithoutClaimsValidation())
	}
	claims := &SessionClaims{}
	parsed, err := jwt.NewParser(opts...).ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(s.cfg.Secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, errors.New("invalid session token")
	}
	return claims, nil
}

func (s *SessionService) ttl() time.Duration {
	hours := s.cfg.ExpireHours
	if hours <= 0 {
		hours = 24
	}
	return time.Duration(hours) * time.Hour
}

func (s *SessionService) cacheTTL() time.Duration {
	if s.cfg.CacheTTLSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(s.cfg.CacheTTLSeconds) * time.Second
}
