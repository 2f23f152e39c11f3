package admin

import (
	"strconv"
	"strings"

	handlershared "github.com/campus-mall/internal/http/handlers/shared"
	"github.com/campus-mall/internal/http/response"
	"github.com/campus-mall/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetAdminComments 评论列表，可按商品、用户、关键字过滤
func (h *Handler) GetAdminComments(c *gin.Context) {
	page, pageSize := handlershared.QueryPagination(c)
	filter := repository.CommentListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  strings.TrimSpace(c.Query("keyword")),
	}
	for key, target := range map[string]*uint{"product_id": &filter.ProductID, "user_id": &filter.UserID} {
		raw := strings.TrimSpace(c.Query(key))
		if raw == "" {
			continue
		}
		value, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		*target = uint(value)
	}

	comments, total, err := h.CommentService.ListForAdmin(c.Request.Context(), filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.list_failed", err)
		return
	}
	response.SuccessWithPage(c, comments, response.BuildPagination(page, pageSize, total))
}

// DeleteComment 删除评论
func (h *Handler) DeleteComment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.CommentService.Delete(c.Request.Context(), id); err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.delete_failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
