package public

import (
	"errors"
	"net/http"
	"strings"

	"github.com/campus-mall/internal/constants"
	handlershared "github.com/campus-mall/internal/http/handlers/shared"
	"github.com/campus-mall/internal/http/response"
	"github.com/campus-mall/internal/i18n"
	"github.com/campus-mall/internal/service"

	"github.com/gin-gonic/gin"
)

// 资料表单中可修改的字段，未提交的字段保持不变
var profileFormFields = []string{"email", "phone", "card", "address", "location", "info"}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" form:"old_password" binding:"required"`
	NewPassword string `json:"new_password" form:"new_password" binding:"required,min=6"`
}

// GetProfile 获取当前用户资料
func (h *Handler) GetProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	user, err := h.UserAuthService.GetUser(c.Request.Context(), uid)
	if err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, gin.H{"user": user})
}

// UpdateProfile 修改资料，支持 multipart 上传头像 face
func (h *Handler) UpdateProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	input := service.UpdateProfileInput{}
	values := make(map[string]*string, len(profileFormFields))
	for _, field := range profileFormFields {
		if value, exists := c.GetPostForm(field); exists {
			v := strings.TrimSpace(value)
			values[field] = &v
		}
	}
	input.Email = values["email"]
	input.Phone = values["phone"]
	input.Card = values["card"]
	input.Address = values["address"]
	input.Location = values["location"]
	input.Info = values["info"]

	file, err := c.FormFile("face")
	switch {
	case err == nil:
		path, saveErr := h.UploadService.SaveFile(file, constants.UploadSceneFace)
		if saveErr != nil {
			respondMappedError(c, saveErr, response.CodeInternal, "error.profile_update_failed")
			return
		}
		input.Face = &path
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		respondError(c, response.CodeBadRequest, "error.upload_invalid", err)
		return
	}

	user, err := h.UserAuthService.UpdateProfile(c.Request.Context(), uid, input)
	if err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.profile_update_failed")
		return
	}
	msg := i18n.T(i18n.ResolveLocale(c), "flash.profile_saved")
	response.SuccessWithMsg(c, msg, gin.H{"user": user})
}

// ChangePassword 修改密码，成功后其他会话全部失效
func (h *Handler) ChangePassword(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}
	if err := h.UserAuthService.ChangePassword(c.Request.Context(), uid, currentSessionID(c), req.OldPassword, req.NewPassword); err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.profile_update_failed")
		return
	}
	msg := i18n.T(i18n.ResolveLocale(c), "flash.password_changed")
	response.SuccessWithMsg(c, msg, gin.H{"changed": true})
}
