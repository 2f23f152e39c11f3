package public

import (
	"github.com/campus-mall/internal/http/response"

	"github.com/gin-gonic/gin"
)

// Checkout 将购物车结算为订单并返回订单详情
func (h *Handler) Checkout(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	order, err := h.OrderService.Checkout(c.Request.Context(), uid)
	if err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.checkout_failed")
		return
	}
	response.Success(c, gin.H{"order": order})
}
