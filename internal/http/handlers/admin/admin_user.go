package admin

import (
	"strings"

	handlershared "github.com/campus-mall/internal/http/handlers/shared"
	"github.com/campus-mall/internal/http/response"
	"github.com/campus-mall/internal/repository"
	"github.com/campus-mall/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateAdminUserRequest 管理员更新用户请求，nil 字段保持不变
type UpdateAdminUserRequest struct {
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Card     *string `json:"card"`
	Face     *string `json:"face"`
	Address  *string `json:"address"`
	Location *string `json:"location"`
	Info     *string `json:"info"`
}

// GetAdminUsers 获取用户列表
func (h *Handler) GetAdminUsers(c *gin.Context) {
	page, pageSize := handlershared.QueryPagination(c)
	createdFrom, err := parseTimeNullable(c.Query("created_from"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	createdTo, err := parseTimeNullable(c.Query("created_to"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	users, total, err := h.UserAdminService.List(c.Request.Context(), repository.UserListFilter{
		Page:        page,
		PageSize:    pageSize,
		Keyword:     strings.TrimSpace(c.Query("keyword")),
		CreatedFrom: createdFrom,
		CreatedTo:   createdTo,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.list_failed", err)
		return
	}
	response.SuccessWithPage(c, users, response.BuildPagination(page, pageSize, total))
}

// GetAdminUser 获取用户详情
func (h *Handler) GetAdminUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	user, err := h.UserAdminService.Get(c.Request.Context(), id)
	if err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, user)
}

// UpdateAdminUser 更新用户资料，唯一性冲突按字段返回
func (h *Handler) UpdateAdminUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req UpdateAdminUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}
	user, err := h.UserAdminService.Update(c.Request.Context(), id, service.UpdateProfileInput{
		Email:    req.Email,
		Phone:    req.Phone,
		Card:     req.Card,
		Face:     req.Face,
		Address:  req.Address,
		Location: req.Location,
		Info:     req.Info,
	})
	if err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.save_failed")
		return
	}
	response.Success(c, user)
}

// DeleteAdminUser 删除用户并注销其全部会话
func (h *Handler) DeleteAdminUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.UserAdminService.Delete(c.Request.Context(), id); err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.delete_failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
