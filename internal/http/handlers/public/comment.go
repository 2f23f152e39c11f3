package public

import (
	"strconv"

	handlershared "github.com/campus-mall/internal/http/handlers/shared"
	"github.com/campus-mall/internal/http/response"

	"github.com/gin-gonic/gin"
)

// PostCommentRequest 发表评论请求
type PostCommentRequest struct {
	Content string `json:"content" form:"content" binding:"required"`
}

// ListComments 商品评论列表
func (h *Handler) ListComments(c *gin.Context) {
	productID, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeNotFound, "error.product_not_found", nil)
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	comments, total, pageSize, err := h.CommentService.ListByProduct(c.Request.Context(), productID, page)
	if err != nil {
		respondError(c, response.CodeInternal, "error.list_failed", err)
		return
	}
	response.SuccessWithPage(c, comments, response.BuildPagination(page, pageSize, total))
}

// PostComment 发表评论
func (h *Handler) PostComment(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeNotFound, "error.product_not_found", nil)
		return
	}
	var req PostCommentRequest
	if err := c.ShouldBind(&req); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}
	comment, err := h.CommentService.Post(c.Request.Context(), uid, productID, req.Content)
	if err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.comment_failed")
		return
	}
	response.Success(c, comment)
}
