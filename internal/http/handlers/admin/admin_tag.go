package admin

import (
	handlershared "github.com/campus-mall/internal/http/handlers/shared"
	"github.com/campus-mall/internal/http/response"

	"github.com/gin-gonic/gin"
)

// TagRequest 分类请求
type TagRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// GetAdminTags 分类列表
func (h *Handler) GetAdminTags(c *gin.Context) {
	tags, err := h.TagService.List(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.list_failed", err)
		return
	}
	response.Success(c, tags)
}

// CreateTag 创建分类
func (h *Handler) CreateTag(c *gin.Context) {
	var req TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}
	tag, err := h.TagService.Create(c.Request.Context(), req.Name)
	if err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.save_failed")
		return
	}
	response.Success(c, tag)
}

// UpdateTag 更新分类
func (h *Handler) UpdateTag(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}
	tag, err := h.TagService.Update(c.Request.Context(), id, req.Name)
	if err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.save_failed")
		return
	}
	response.Success(c, tag)
}

// DeleteTag 删除分类，仍有商品引用时拒绝
func (h *Handler) DeleteTag(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.TagService.Delete(c.Request.Context(), id); err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.delete_failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
