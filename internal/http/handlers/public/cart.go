package public

import (
	"strings"

	"github.com/campus-mall/internal/http/response"
	"github.com/campus-mall/internal/i18n"
	"github.com/campus-mall/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/goccy/go-json"
)

// CartItemRequest 加购载荷，仅信任商品 ID 与数量，名称与价格以服务端快照为准
type CartItemRequest struct {
	ItemID  uint `json:"itemId" binding:"required"`
	ItemQty int  `json:"itemQty"`
}

// CartItemPayload 购物车明细回显结构
type CartItemPayload struct {
	ItemID    uint         `json:"itemId"`
	ItemName  string       `json:"itemName"`
	ItemPrice models.Money `json:"itemPrice"`
	ItemQty   int          `json:"itemQty"`
	ItemTotal models.Money `json:"itemTotal"`
}

func newCartItemPayload(item *models.CartInfo) CartItemPayload {
	return CartItemPayload{
		ItemID:    item.ProductID,
		ItemName:  item.ProductName,
		ItemPrice: item.ProductPrice,
		ItemQty:   item.Quantity,
		ItemTotal: item.LineTotal(),
	}
}

// GetCart 获取购物车，未登录时返回空购物车
func (h *Handler) GetCart(c *gin.Context) {
	view, err := h.CartService.ListCart(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, response.CodeInternal, "error.cart_fetch_failed", err)
		return
	}
	items := make([]CartItemPayload, 0, len(view.Items))
	for i := range view.Items {
		items = append(items, newCartItemPayload(&view.Items[i]))
	}
	response.Success(c, gin.H{
		"items":    items,
		"subtotal": view.Subtotal,
	})
}

// AddToCart 加入购物车
// 表单字段 data 携带 JSON 明细；未登录只返回提示消息，不做任何写入。
func (h *Handler) AddToCart(c *gin.Context) {
	uid := currentUserID(c)
	if uid == 0 {
		response.Flash(c, response.CodeUnauthorized, i18n.T(i18n.ResolveLocale(c), "error.login_required"))
		return
	}

	raw := strings.TrimSpace(c.PostForm("data"))
	if raw == "" {
		respondError(c, response.CodeBadRequest, "error.cart_payload_invalid", nil)
		return
	}
	var req CartItemRequest
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		respondError(c, response.CodeBadRequest, "error.cart_payload_invalid", err)
		return
	}
	if err := binding.Validator.ValidateStruct(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.cart_payload_invalid", nil)
		return
	}

	item, err := h.CartService.AddToCart(c.Request.Context(), uid, req.ItemID, req.ItemQty)
	if err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.cart_add_failed")
		return
	}
	msg := i18n.T(i18n.ResolveLocale(c), "flash.cart_added")
	response.SuccessWithMsg(c, msg, newCartItemPayload(item))
}
