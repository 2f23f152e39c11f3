package public

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/campus-mall/internal/constants"
	handlershared "github.com/campus-mall/internal/http/handlers/shared"
	"github.com/campus-mall/internal/http/response"
	"github.com/campus-mall/internal/i18n"
	"github.com/campus-mall/internal/service"

	"github.com/gin-gonic/gin"
)

const defaultLoginRedirect = "/user/"

// UserLoginRequest 登录请求，支持表单与 JSON
type UserLoginRequest struct {
	Name     string `json:"name" form:"name" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
	Next     string `json:"next" form:"next"`
	CaptchaPayloadRequest
}

// UserRegisterRequest 注册请求
type UserRegisterRequest struct {
	Name       string `json:"name" form:"name" binding:"required,max=100"`
	Email      string `json:"email" form:"email" binding:"required,email"`
	Phone      string `json:"phone" form:"phone" binding:"required,cnphone"`
	Password   string `json:"password" form:"password" binding:"required,min=6"`
	RePassword string `json:"repassword" form:"repassword" binding:"required,eqfield=Password"`
	Card       string `json:"card" form:"card"`
	Address    string `json:"address" form:"address"`
	Location   string `json:"location" form:"location"`
	CaptchaPayloadRequest
}

// LoginPage 登录表单元数据
func (h *Handler) LoginPage(c *gin.Context) {
	response.Success(c, gin.H{
		"next":            safeRedirect(c.Query("next")),
		"captcha":         h.captchaFormMeta(c, constants.CaptchaSceneLogin),
		"captcha_setting": h.CaptchaService.PublicSetting(),
	})
}

// UserLogin 用户登录
func (h *Handler) UserLogin(c *gin.Context) {
	var req UserLoginRequest
	if err := c.ShouldBind(&req); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}
	if req.Next == "" {
		req.Next = c.Query("next")
	}

	result, err := h.UserAuthService.Login(c.Request.Context(), service.LoginInput{
		Name:      req.Name,
		Password:  req.Password,
		Captcha:   req.ToServicePayload(),
		ClientIP:  c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		RequestID: handlershared.ContextString(c, "request_id"),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrInvalidCredentials):
			respondError(c, response.CodeUnauthorized, "error.login_failed", nil)
		case errors.Is(err, service.ErrCaptchaRequired), errors.Is(err, service.ErrCaptchaInvalid):
			respondMappedError(c, err, response.CodeBadRequest, "error.captcha_invalid")
		default:
			respondError(c, response.CodeInternal, "error.login_internal", err)
		}
		return
	}

	h.setSessionCookie(c, h.Config.Session.CookieName, result.Token, result.ExpiresAt)
	response.Success(c, gin.H{
		"token":      result.Token,
		"expires_at": result.ExpiresAt.Format(time.RFC3339),
		"redirect":   safeRedirect(req.Next),
		"user": gin.H{
			"id":   result.User.ID,
			"name": result.User.Name,
		},
	})
}

// RegisterPage 注册表单元数据
func (h *Handler) RegisterPage(c *gin.Context) {
	response.Success(c, gin.H{
		"password_min_length": h.Config.Security.PasswordPolicy.MinLength,
		"captcha":             h.captchaFormMeta(c, constants.CaptchaSceneRegister),
		"captcha_setting":     h.CaptchaService.PublicSetting(),
	})
}

// UserRegister 用户注册
func (h *Handler) UserRegister(c *gin.Context) {
	var req UserRegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}

	user, err := h.UserAuthService.Register(c.Request.Context(), service.RegisterInput{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Password:   req.Password,
		RePassword: req.RePassword,
		Card:       req.Card,
		Address:    req.Address,
		Location:   req.Location,
		Captcha:    req.ToServicePayload(),
	})
	if err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.register_failed")
		return
	}

	msg := i18n.T(i18n.ResolveLocale(c), "flash.register_success")
	response.SuccessWithMsg(c, msg, gin.H{
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
		},
		"redirect": "/login/",
	})
}

// UserLogout 注销当前会话并跳转登录页，任何令牌都视为成功
func (h *Handler) UserLogout(c *gin.Context) {
	token := handlershared.SessionToken(c, h.Config.Session.CookieName)
	h.UserAuthService.Logout(c.Request.Context(), token)
	h.setSessionCookie(c, h.Config.Session.CookieName, "", time.Time{})
	c.Redirect(http.StatusFound, "/login/")
}

// setSessionCookie 写入会话 Cookie，expiresAt 为零值时清除
func (h *Handler) setSessionCookie(c *gin.Context, name, token string, expiresAt time.Time) {
	if strings.TrimSpace(name) == "" {
		return
	}
	maxAge := -1
	if !expiresAt.IsZero() {
		maxAge = int(time.Until(expiresAt).Seconds())
		if maxAge <= 0 {
			maxAge = -1
		}
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, token, maxAge, "/", "", h.Config.Session.CookieSecure, true)
}

// safeRedirect 只接受站内相对路径，防止开放重定向
func safeRedirect(next string) string {
	next = strings.TrimSpace(next)
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, "\\") {
		return defaultLoginRedirect
	}
	return next
}
