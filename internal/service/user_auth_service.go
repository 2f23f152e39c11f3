package service

import (
	"context"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/campus-mall/internal/config"
	"github.com/campus-mall/internal/constants"
	"github.com/campus-mall/internal/logger"
	"github.com/campus-mall/internal/metrics"
	"github.com/campus-mall/internal/models"
	"github.com/campus-mall/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

var cnPhonePattern = regexp.MustCompile(`^1[3458]\d{9}$`)

// UserAuthService 会员认证与资料服务
type UserAuthService struct {
	cfg       *config.Config
	userRepo  repository.UserRepository
	sessions  *SessionService
	captcha   *CaptchaService
	loginLogs *UserLoginLogService
	metrics   *metrics.Metrics
}

// NewUserAuthService 创建会员认证服务
func NewUserAuthService(cfg *config.Config, userRepo repository.UserRepository, sessions *SessionService, captcha *CaptchaService, loginLogs *UserLoginLogService, m *metrics.Metrics) *UserAuthService {
	return &UserAuthService{
		cfg:       cfg,
		userRepo:  userRepo,
		sessions:  sessions,
		captcha:   captcha,
		loginLogs: loginLogs,
		metrics:   m,
	}
}

// RegisterInput 注册输入
type RegisterInput struct {
	Name       string
	Email      string
	Phone      string
	Password   string
	RePassword string
	Card       string
	Address    string
	Location   string
	Captcha    CaptchaVerifyPayload
}

// LoginInput 登录输入
type LoginInput struct {
	Name      string
	Password  string
	Captcha   CaptchaVerifyPayload
	ClientIP  string
	UserAgent string
	RequestID string
}

// LoginResult 登录结果
type LoginResult struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
}

// UpdateProfileInput 资料更新输入，nil 字段保持不变
type UpdateProfileInput struct {
	Email    *string
	Phone    *string
	Card     *string
	Face     *string
	Address  *string
	Location *string
	Info     *string
}

// Register 会员注册
// 唯一性冲突按字段返回 ValidationError，冲突时不写入任何数据。
func (s *UserAuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if err := s.captcha.Verify(constants.CaptchaSceneRegister, input.Captcha); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, newValidationError("name", ErrInvalidInput)
	}
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	phone, err := normalizePhone(input.Phone)
	if err != nil {
		return nil, err
	}
	if input.Password != input.RePassword {
		return nil, newValidationError("repassword", ErrPasswordMismatch)
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, input.Password); err != nil {
		return nil, err
	}
	card := strings.TrimSpace(input.Card)

	checks := []uniqueCheck{
		{field: "name", value: name, err: ErrUserNameExists},
		{field: "email", value: email, err: ErrEmailExists},
		{field: "phone", value: phone, err: ErrPhoneExists},
		{field: "card", value: card, err: ErrCardExists},
	}
	if err := checkUserUnique(ctx, s.userRepo, checks, 0); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Name:         name,
		PasswordHash: string(hashed),
		Email:        email,
		Phone:        phone,
		Address:      strings.TrimSpace(input.Address),
		Location:     strings.TrimSpace(input.Location),
	}
	if card != "" {
		user.Card = &card
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, persistenceError("create user", err)
	}
	logger.Infow("user_registered", "user_id", user.ID, "name", user.Name)
	return user, nil
}

// Login 会员登录
// 用户不存在返回 ErrUserNotFound，密码错误返回 ErrInvalidCredentials，两种情况都不建立会话。
func (s *UserAuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	name := strings.TrimSpace(input.Name)
	record := RecordUserLoginInput{
		Name:        name,
		ClientIP:    input.ClientIP,
		UserAgent:   input.UserAgent,
		LoginSource: constants.LoginLogSourceWeb,
		RequestID:   input.RequestID,
	}

	if err := s.captcha.Verify(constants.CaptchaSceneLogin, input.Captcha); err != nil {
		s.recordLoginFailure(ctx, record, constants.LoginLogFailReasonCaptchaInvalid)
		return nil, err
	}

	user, err := s.userRepo.GetByName(ctx, name)
	if err != nil {
		s.recordLoginFailure(ctx, record, constants.LoginLogFailReasonInternalError)
		return nil, persistenceError("get user", err)
	}
	if user == nil {
		s.recordLoginFailure(ctx, record, constants.LoginLogFailReasonUserNotFound)
		return nil, ErrUserNotFound
	}
	record.UserID = user.ID
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		s.recordLoginFailure(ctx, record, constants.LoginLogFailReasonInvalidPassword)
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.sessions.Create(ctx, constants.SessionKindUser, user.ID, user.Name, SessionMeta{
		ClientIP:  input.ClientIP,
		UserAgent: input.UserAgent,
	})
	if err != nil {
		s.recordLoginFailure(ctx, record, constants.LoginLogFailReasonInternalError)
		return nil, err
	}

	now := time.Now()
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		logger.Warnw("user_last_login_update_failed", "user_id", user.ID, "error", err)
	}
	user.LastLoginAt = &now

	record.Status = constants.LoginLogStatusSuccess
	if err := s.loginLogs.Record(ctx, record); err != nil {
		logger.Warnw("user_login_log_record_failed", "user_id", user.ID, "error", err)
	}
	s.metrics.ObserveLogin(constants.LoginLogSourceWeb, true)

	return &LoginResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// Logout 注销会话，始终成功
func (s *UserAuthService) Logout(ctx context.Context, token string) {
	s.sessions.Destroy(ctx, token)
}

// GetUser 获取会员信息
func (s *UserAuthService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	if id == 0 {
		return nil, ErrUserNotFound
	}
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, persistenceError("get user", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile 更新会员资料
func (s *UserAuthService) UpdateProfile(ctx context.Context, userID uint, input UpdateProfileInput) (*models.User, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := applyUserProfile(ctx, s.userRepo, user, input); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, persistenceError("update user", err)
	}
	return user, nil
}

// ChangePassword 修改密码，成功后注销该会员的其他会话
func (s *UserAuthService) ChangePassword(ctx context.Context, userID uint, currentSessionID, oldPassword, newPassword string) error {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return newValidationError("old_password", ErrOldPasswordInvalid)
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, newPassword); err != nil {
		return err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hashed)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return persistenceError("update password", err)
	}
	return s.sessions.DestroySubject(ctx, constants.SessionKindUser, user.ID, currentSessionID)
}

func (s *UserAuthService) recordLoginFailure(ctx context.Context, record RecordUserLoginInput, reason string) {
	record.Status = constants.LoginLogStatusFailed
	record.FailReason = reason
	if err := s.loginLogs.Record(ctx, record); err != nil {
		logger.Warnw("user_login_log_record_failed", "name", record.Name, "error", err)
	}
	s.metrics.ObserveLogin(constants.LoginLogSourceWeb, false)
}

type uniqueCheck struct {
	field string
	value string
	err   error
}

func checkUserUnique(ctx context.Context, repo repository.UserRepository, checks []uniqueCheck, excludeID uint) error {
	for _, check := range checks {
		if check.value == "" {
			continue
		}
		exists, err := repo.ExistsBy(ctx, check.field, check.value, excludeID)
		if err != nil {
			return persistenceError("check user "+check.field, err)
		}
		if exists {
			return newValidationError(check.field, check.err)
		}
	}
	return nil
}

// applyUserProfile 校验并写入资料字段，会员与后台共用
func applyUserProfile(ctx context.Context, repo repository.UserRepository, user *models.User, input UpdateProfileInput) error {
	var checks []uniqueCheck
	if input.Email != nil {
		email, err := normalizeEmail(*input.Email)
		if err != nil {
			return err
		}
		if email != user.Email {
			checks = append(checks, uniqueCheck{field: "email", value: email, err: ErrEmailExists})
		}
		user.Email = email
	}
	if input.Phone != nil {
		phone, err := normalizePhone(*input.Phone)
		if err != nil {
			return err
		}
		if phone != user.Phone {
			checks = append(checks, uniqueCheck{field: "phone", value: phone, err: ErrPhoneExists})
		}
		user.Phone = phone
	}
	if input.Card != nil {
		card := strings.TrimSpace(*input.Card)
		if card == "" {
			user.Card = nil
		} else {
			if card != user.CardNumber() {
				checks = append(checks, uniqueCheck{field: "card", value: card, err: ErrCardExists})
			}
			user.Card = &card
		}
	}
	if err := checkUserUnique(ctx, repo, checks, user.ID); err != nil {
		return err
	}
	if input.Face != nil {
		user.Face = strings.TrimSpace(*input.Face)
	}
	if input.Address != nil {
		user.Address = strings.TrimSpace(*input.Address)
	}
	if input.Location != nil {
		user.Location = strings.TrimSpace(*input.Location)
	}
	if input.Info != nil {
		user.Info = strings.TrimSpace(*input.Info)
	}
	return nil
}

func normalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", newValidationError("email", ErrInvalidEmail)
	}
	if _, err := mail.ParseAddress(normalized); err != nil {
		return "", newValidationError("email", ErrInvalidEmail)
	}
	return normalized, nil
}

func normalizePhone(phone string) (string, error) {
	phone = strings.TrimSpace(phone)
	if !cnPhonePattern.MatchString(phone) {
		return "", newValidationError("phone", ErrInvalidPhone)
	}
	return phone, nil
}
