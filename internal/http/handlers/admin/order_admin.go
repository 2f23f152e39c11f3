package admin

import (
	"strconv"
	"strings"

	handlershared "github.com/campus-mall/internal/http/handlers/shared"
	"github.com/campus-mall/internal/http/response"
	"github.com/campus-mall/internal/repository"

	"github.com/gin-gonic/gin"
)

// UpdateOrderStatusRequest 更新订单状态请求
type UpdateOrderStatusRequest struct {
	Status *int `json:"status" binding:"required"`
}

// GetAdminOrders 订单列表，可按用户与状态过滤
func (h *Handler) GetAdminOrders(c *gin.Context) {
	page, pageSize := handlershared.QueryPagination(c)
	filter := repository.OrderListFilter{Page: page, PageSize: pageSize}
	if raw := strings.TrimSpace(c.Query("user_id")); raw != "" {
		userID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		filter.UserID = uint(userID)
	}
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		status, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		filter.Status = &status
	}

	orders, total, err := h.OrderService.ListForAdmin(c.Request.Context(), filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, orders, response.BuildPagination(page, pageSize, total))
}

// GetAdminOrder 订单详情（含明细）
func (h *Handler) GetAdminOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	order, err := h.OrderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.order_fetch_failed")
		return
	}
	response.Success(c, order)
}

// UpdateOrderStatus 更新订单状态，仅允许向前流转
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}
	order, err := h.OrderService.UpdateStatus(c.Request.Context(), id, *req.Status)
	if err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.save_failed")
		return
	}
	response.Success(c, order)
}
