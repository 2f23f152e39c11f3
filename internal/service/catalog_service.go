package service

import (
	"context"
	"strings"
	"time"

	"github.com/campus-mall/internal/cache"
	"github.com/campus-mall/internal/config"
	"github.com/campus-mall/internal/constants"
	"github.com/campus-mall/internal/logger"
	"github.com/campus-mall/internal/models"
	"github.com/campus-mall/internal/queue"
	"github.com/campus-mall/internal/repository"
)

const (
	defaultCatalogPageSize = 8
	flashSaleSiblingLimit  = 8
)

// CatalogService 前台商品目录服务
type CatalogService struct {
	cfg         config.CatalogConfig
	productRepo repository.ProductRepository
	tagRepo     repository.TagRepository
	store       *cache.Store
	queue       *queue.Client
}

// NewCatalogService 创建商品目录服务
func NewCatalogService(cfg config.CatalogConfig, productRepo repository.ProductRepository, tagRepo repository.TagRepository, store *cache.Store, queueClient *queue.Client) *CatalogService {
	return &CatalogService{
		cfg:         cfg,
		productRepo: productRepo,
		tagRepo:     tagRepo,
		store:       store,
		queue:       queueClient,
	}
}

// ListProductsInput 首页商品列表参数
type ListProductsInput struct {
	TagID   uint
	SortKey string
	SortDir string
	Page    int
}

// CatalogPage 分页结果，越界页返回空列表
type CatalogPage struct {
	Products []models.Product
	Total    int64
	Page     int
	PageSize int
}

// OnSaleDetail 特价商品详情
type OnSaleDetail struct {
	Product *models.Product
	Others  []models.Product
}

// ListProducts 按分类与排序分页列出商品
func (s *CatalogService) ListProducts(ctx context.Context, input ListProductsInput) (*CatalogPage, error) {
	page := normalizeCatalogPage(input.Page)
	pageSize := positiveOr(s.cfg.PageSize, defaultCatalogPageSize)
	sortKey := strings.TrimSpace(input.SortKey)
	if sortKey != constants.ProductSortTime && sortKey != constants.ProductSortSell {
		sortKey = constants.ProductSortNone
	}
	products, total, err := s.productRepo.List(ctx, repository.ProductListFilter{
		Page:     page,
		PageSize: pageSize,
		TagID:    input.TagID,
		SortKey:  sortKey,
		SortDesc: strings.TrimSpace(input.SortDir) == constants.SortDirDesc,
	})
	if err != nil {
		return nil, persistenceError("list products", err)
	}
	return &CatalogPage{Products: products, Total: total, Page: page, PageSize: pageSize}, nil
}

// Search 按名称不区分大小写搜索，Total 即匹配数量
func (s *CatalogService) Search(ctx context.Context, keyword string, page int) (*CatalogPage, error) {
	page = normalizeCatalogPage(page)
	pageSize := positiveOr(s.cfg.SearchPageSize, defaultCatalogPageSize)
	products, total, err := s.productRepo.Search(ctx, repository.ProductSearchFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  strings.TrimSpace(keyword),
	})
	if err != nil {
		return nil, persistenceError("search products", err)
	}
	return &CatalogPage{Products: products, Total: total, Page: page, PageSize: pageSize}, nil
}

// ListTags 获取分类列表，优先读缓存
func (s *CatalogService) ListTags(ctx context.Context) ([]models.Tag, error) {
	if tags, hit, err := s.store.GetTagList(ctx); err != nil {
		logger.Warnw("tag_list_cache_get_failed", "error", err)
	} else if hit {
		return tags, nil
	}
	tags, err := s.tagRepo.List(ctx)
	if err != nil {
		return nil, persistenceError("list tags", err)
	}
	ttl := time.Duration(s.cfg.TagCacheSeconds) * time.Second
	if err := s.store.SetTagList(ctx, tags, ttl); err != nil {
		logger.Warnw("tag_list_cache_set_failed", "error", err)
	}
	return tags, nil
}

// ProductDetail 商品详情，成功读取后记录一次浏览
func (s *CatalogService) ProductDetail(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.getProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	s.recordView(ctx, product)
	return product, nil
}

// ProductDetailOnSale 特价商品详情，非特价商品视为不存在
func (s *CatalogService) ProductDetailOnSale(ctx context.Context, id uint) (*OnSaleDetail, error) {
	product, err := s.getProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if !product.IsFlashSale {
		return nil, ErrProductNotFound
	}
	others, err := s.productRepo.ListFlashSale(ctx, product.ID, flashSaleSiblingLimit)
	if err != nil {
		return nil, persistenceError("list flash sale products", err)
	}
	s.recordView(ctx, product)
	return &OnSaleDetail{Product: product, Others: others}, nil
}

// IncrementViewCount 累加浏览量，供异步任务调用
func (s *CatalogService) IncrementViewCount(ctx context.Context, productID uint) error {
	if _, err := s.productRepo.IncrementViewCount(ctx, productID, 1); err != nil {
		return persistenceError("increment view count", err)
	}
	return nil
}

// RecordSales 按下单明细累加销量
func (s *CatalogService) RecordSales(ctx context.Context, lines []queue.OrderPlacedLine) error {
	for _, line := range lines {
		if line.ProductID == 0 || line.Quantity <= 0 {
			continue
		}
		if _, err := s.productRepo.IncrementSellCount(ctx, line.ProductID, line.Quantity); err != nil {
			return persistenceError("increment sell count", err)
		}
	}
	return nil
}

func (s *CatalogService) getProduct(ctx context.Context, id uint) (*models.Product, error) {
	if id == 0 {
		return nil, ErrProductNotFound
	}
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, persistenceError("get product", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// recordView 队列可用时异步计数，否则同步累加；失败只记录日志
func (s *CatalogService) recordView(ctx context.Context, product *models.Product) {
	if s.queue.Enabled() {
		err := s.queue.EnqueueProductViewed(queue.ProductViewedPayload{ProductID: product.ID})
		if err == nil {
			return
		}
		logger.Warnw("product_viewed_enqueue_failed", "product_id", product.ID, "error", err)
	}
	if err := s.IncrementViewCount(ctx, product.ID); err != nil {
		logger.Warnw("product_view_count_failed", "product_id", product.ID, "error", err)
		return
	}
	product.ViewCount++
}

func normalizeCatalogPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func positiveOr(value, fallback int) int {
	if value <= 0 {
		return fallback
	}
	return value
}
