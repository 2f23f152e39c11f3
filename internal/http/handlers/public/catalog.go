package public

import (
	"strconv"
	"strings"

	"github.com/campus-mall/internal/constants"
	handlershared "github.com/campus-mall/internal/http/handlers/shared"
	"github.com/campus-mall/internal/http/response"
	"github.com/campus-mall/internal/models"
	"github.com/campus-mall/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductView 前台商品视图，附带折后价
type ProductView struct {
	models.Product
	TruePrice models.Money `json:"true_price"`
}

func newProductView(product *models.Product) ProductView {
	return ProductView{Product: *product, TruePrice: product.TruePrice()}
}

func newProductViews(products []models.Product) []ProductView {
	views := make([]ProductView, 0, len(products))
	for i := range products {
		views = append(views, newProductView(&products[i]))
	}
	return views
}

// Home 商城首页：分类筛选 + 排序 + 分页
// time 与 sell 同时出现时以 time 为准，参数值为 "1" 表示降序。
func (h *Handler) Home(c *gin.Context) {
	var tagID uint
	if raw := strings.TrimSpace(c.Query("tid")); raw != "" {
		if parsed, err := strconv.ParseUint(raw, 10, 64); err == nil {
			tagID = uint(parsed)
		}
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	sortKey, sortDir := resolveHomeSort(c)
	result, err := h.CatalogService.ListProducts(c.Request.Context(), service.ListProductsInput{
		TagID:   tagID,
		SortKey: sortKey,
		SortDir: sortDir,
		Page:    page,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}
	tags, err := h.CatalogService.ListTags(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}

	response.SuccessWithPage(c, gin.H{
		"products": newProductViews(result.Products),
		"tags":     tags,
		"tid":      tagID,
		"sort_key": sortKey,
		"sort_dir": sortDir,
	}, response.BuildPagination(result.Page, result.PageSize, result.Total))
}

func resolveHomeSort(c *gin.Context) (string, string) {
	if dir, ok := c.GetQuery(constants.ProductSortTime); ok {
		return constants.ProductSortTime, strings.TrimSpace(dir)
	}
	if dir, ok := c.GetQuery(constants.ProductSortSell); ok {
		return constants.ProductSortSell, strings.TrimSpace(dir)
	}
	return constants.ProductSortNone, ""
}

// Search 按名称搜索商品
func (h *Handler) Search(c *gin.Context) {
	page, _ := strconv.Atoi(c.Param("page"))
	key := strings.TrimSpace(c.Query("key"))

	result, err := h.CatalogService.Search(c.Request.Context(), key, page)
	if err != nil {
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, gin.H{
		"key":      key,
		"count":    result.Total,
		"products": newProductViews(result.Products),
	}, response.BuildPagination(result.Page, result.PageSize, result.Total))
}

// ProductDetail 商品详情
func (h *Handler) ProductDetail(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeNotFound, "error.product_not_found", nil)
		return
	}
	product, err := h.CatalogService.ProductDetail(c.Request.Context(), id)
	if err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.product_fetch_failed")
		return
	}
	response.Success(c, newProductView(product))
}

// ProductDetailOnSale 限时特价商品详情，附带其他特价商品
func (h *Handler) ProductDetailOnSale(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeNotFound, "error.product_not_found", nil)
		return
	}
	detail, err := h.CatalogService.ProductDetailOnSale(c.Request.Context(), id)
	if err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.product_fetch_failed")
		return
	}
	response.Success(c, gin.H{
		"product": newProductView(detail.Product),
		"others":  newProductViews(detail.Others),
	})
}
