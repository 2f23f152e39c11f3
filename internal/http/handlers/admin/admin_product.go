package admin

import (
	"net/http"
	"strconv"
	"strings"

	handlershared "github.com/campus-mall/internal/http/handlers/shared"
	"github.com/campus-mall/internal/http/response"
	"github.com/campus-mall/internal/repository"
	"github.com/campus-mall/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ProductRequest 创建/更新商品请求
type ProductRequest struct {
	Name        string          `json:"name" binding:"required,max=100"`
	Price       decimal.Decimal `json:"price"`
	Discount    decimal.Decimal `json:"discount"`
	IsFlashSale bool            `json:"is_flash_sale"`
	Stock       int             `json:"stock" binding:"gte=0"`
	Description string          `json:"description"`
	Pic         string          `json:"pic"`
	TagID       uint            `json:"tag_id"`
}

func (r ProductRequest) toInput() service.ProductInput {
	return service.ProductInput{
		Name:        r.Name,
		Price:       r.Price,
		Discount:    r.Discount,
		IsFlashSale: r.IsFlashSale,
		Stock:       r.Stock,
		Description: r.Description,
		Pic:         r.Pic,
		TagID:       r.TagID,
	}
}

// GetAdminProducts 获取商品列表 (Admin)
func (h *Handler) GetAdminProducts(c *gin.Context) {
	page, pageSize := handlershared.QueryPagination(c)
	filter := repository.ProductAdminFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  strings.TrimSpace(c.Query("keyword")),
	}
	if raw := strings.TrimSpace(c.Query("tag_id")); raw != "" {
		tagID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		filter.TagID = uint(tagID)
	}
	if raw := strings.TrimSpace(c.Query("flash_sale")); raw != "" {
		flashSale, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		filter.FlashSale = &flashSale
	}

	products, total, err := h.ProductService.ListAdmin(c.Request.Context(), filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, products, response.BuildPagination(page, pageSize, total))
}

// GetAdminProduct 获取商品详情 (Admin)
func (h *Handler) GetAdminProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	product, err := h.ProductService.GetAdminByID(c.Request.Context(), id)
	if err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.product_fetch_failed")
		return
	}
	response.Success(c, product)
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}
	product, err := h.ProductService.Create(c.Request.Context(), req.toInput())
	if err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.save_failed")
		return
	}
	response.Success(c, product)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}
	product, err := h.ProductService.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.save_failed")
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.ProductService.Delete(c.Request.Context(), id); err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.delete_failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// UploadFile 上传商品图片或头像，返回访问路径
func (h *Handler) UploadFile(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		if err == http.ErrMissingFile {
			respondError(c, response.CodeBadRequest, "error.upload_invalid", nil)
			return
		}
		respondError(c, response.CodeBadRequest, "error.upload_invalid", err)
		return
	}
	path, err := h.UploadService.SaveFile(file, c.PostForm("scene"))
	if err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.save_failed")
		return
	}
	response.Success(c, gin.H{"url": path})
}
