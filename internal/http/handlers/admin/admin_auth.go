package admin

import (
	"errors"
	"net/http"
	"time"

	handlershared "github.com/campus-mall/internal/http/handlers/shared"
	"github.com/campus-mall/internal/http/response"
	"github.com/campus-mall/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest 管理员登录请求
type LoginRequest struct {
	Login    string `json:"login" form:"login" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// CreateAdminRequest 创建管理员请求
type CreateAdminRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Login    string `json:"login" binding:"required,max=100"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// AdminLogin 管理员登录
func (h *Handler) AdminLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}

	result, err := h.AdminAuthService.Login(c.Request.Context(), service.AdminLoginInput{
		Login:     req.Login,
		Password:  req.Password,
		ClientIP:  c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, response.CodeUnauthorized, "error.login_failed", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.login_internal", err)
		return
	}

	if name := h.Config.Session.AdminCookieName; name != "" {
		maxAge := int(time.Until(result.ExpiresAt).Seconds())
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(name, result.Token, maxAge, "/admin", "", h.Config.Session.CookieSecure, true)
	}
	requestLog(c).Infow("admin_logged_in", "admin_id", result.Admin.ID)
	response.Success(c, gin.H{
		"token":      result.Token,
		"expires_at": result.ExpiresAt.Format(time.RFC3339),
		"user": gin.H{
			"id":    result.Admin.ID,
			"name":  result.Admin.Name,
			"login": result.Admin.Login,
		},
	})
}

// AdminLogout 管理员注销
func (h *Handler) AdminLogout(c *gin.Context) {
	token := handlershared.SessionToken(c, h.Config.Session.AdminCookieName)
	h.AdminAuthService.Logout(c.Request.Context(), token)
	if name := h.Config.Session.AdminCookieName; name != "" {
		c.SetCookie(name, "", -1, "/admin", "", h.Config.Session.CookieSecure, true)
	}
	response.Success(c, gin.H{"logged_out": true})
}

// GetAdminProfile 当前管理员信息
func (h *Handler) GetAdminProfile(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	admin, err := h.AdminAuthService.GetAdmin(c.Request.Context(), adminID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	access, err := h.AdminAuthService.GetAccess(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{
		"admin":    admin,
		"roles":    access.Roles,
		"policies": access.Policies,
	})
}

// ListAdmins 管理员列表
func (h *Handler) ListAdmins(c *gin.Context) {
	page, pageSize := handlershared.QueryPagination(c)
	admins, total, err := h.AdminAuthService.ListAdmins(c.Request.Context(), page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.list_failed", err)
		return
	}
	response.SuccessWithPage(c, admins, response.BuildPagination(page, pageSize, total))
}

// CreateAdmin 创建管理员并绑定后台角色
func (h *Handler) CreateAdmin(c *gin.Context) {
	var req CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}
	admin, err := h.AdminAuthService.CreateAdmin(c.Request.Context(), service.CreateAdminInput{
		Name:     req.Name,
		Login:    req.Login,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.admin_create_failed")
		return
	}
	response.Success(c, admin)
}

// DeleteAdmin 删除管理员并收回其后台权限
func (h *Handler) DeleteAdmin(c *gin.Context) {
	actorID, ok := getAdminID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.AdminAuthService.DeleteAdmin(c.Request.Context(), actorID, id); err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.delete_failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
