package service

import (
	"context"
	"strings"

	"github.com/campus-mall/internal/constants"
	"github.com/campus-mall/internal/models"
	"github.com/campus-mall/internal/repository"

	"github.com/shopspring/decimal"
)

// ProductService 后台商品管理服务
type ProductService struct {
	repo    repository.ProductRepository
	tagRepo repository.TagRepository
}

// NewProductService 创建商品服务
func NewProductService(repo repository.ProductRepository, tagRepo repository.TagRepository) *ProductService {
	return &ProductService{repo: repo, tagRepo: tagRepo}
}

// ProductInput 创建/更新商品输入
type ProductInput struct {
	Name        string
	Price       decimal.Decimal
	Discount    decimal.Decimal
	IsFlashSale bool
	Stock       int
	Description string
	Pic         string
	TagID       uint
}

// ListAdmin 后台商品列表
func (s *ProductService) ListAdmin(ctx context.Context, filter repository.ProductAdminFilter) ([]models.Product, int64, error) {
	filter.Page, filter.PageSize = normalizePagination(filter.Page, filter.PageSize)
	filter.Keyword = strings.TrimSpace(filter.Keyword)
	products, total, err := s.repo.ListAdmin(ctx, filter)
	if err != nil {
		return nil, 0, persistenceError("list products", err)
	}
	return products, total, nil
}

// GetAdminByID 获取后台商品详情
func (s *ProductService) GetAdminByID(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, persistenceError("get product", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Create 创建商品
func (s *ProductService) Create(ctx context.Context, input ProductInput) (*models.Product, error) {
	normalized, err := s.validate(ctx, input, 0)
	if err != nil {
		return nil, err
	}
	product := &models.Product{}
	applyProductInput(product, normalized)
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, persistenceError("create product", err)
	}
	return product, nil
}

// Update 更新商品，销量与浏览量不受影响
func (s *ProductService) Update(ctx context.Context, id uint, input ProductInput) (*models.Product, error) {
	product, err := s.GetAdminByID(ctx, id)
	if err != nil {
		return nil, err
	}
	normalized, err := s.validate(ctx, input, id)
	if err != nil {
		return nil, err
	}
	applyProductInput(product, normalized)
	product.Tag = nil
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, persistenceError("update product", err)
	}
	return product, nil
}

// Delete 删除商品
func (s *ProductService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetAdminByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return persistenceError("delete product", err)
	}
	return nil
}

func (s *ProductService) validate(ctx context.Context, input ProductInput, excludeID uint) (ProductInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return input, newValidationError("name", ErrInvalidInput)
	}
	input.Price = input.Price.Round(2)
	if input.Price.IsNegative() {
		return input, newValidationError("price", ErrInvalidPrice)
	}
	if input.Discount.IsZero() {
		input.Discount = decimal.NewFromInt(constants.DiscountNone)
	}
	if input.Discount.LessThanOrEqual(decimal.NewFromInt(constants.DiscountMin)) || input.Discount.GreaterThan(decimal.NewFromInt(constants.DiscountNone)) {
		return input, newValidationError("discount", ErrInvalidDiscount)
	}
	if input.Stock < 0 {
		return input, newValidationError("stock", ErrInvalidQuantity)
	}
	if input.TagID > 0 {
		tag, err := s.tagRepo.GetByID(ctx, input.TagID)
		if err != nil {
			return input, persistenceError("get tag", err)
		}
		if tag == nil {
			return input, ErrTagNotFound
		}
	}
	exists, err := s.repo.ExistsByName(ctx, input.Name, excludeID)
	if err != nil {
		return input, persistenceError("check product name", err)
	}
	if exists {
		return input, newValidationError("name", ErrProductNameExists)
	}
	return input, nil
}

func applyProductInput(product *models.Product, input ProductInput) {
	product.Name = input.Name
	product.Price = models.NewMoneyFromDecimal(input.Price)
	product.Discount = models.NewMoneyFromDecimal(input.Discount)
	product.IsFlashSale = input.IsFlashSale
	product.Stock = input.Stock
	product.Description = strings.TrimSpace(input.Description)
	product.Pic = strings.TrimSpace(input.Pic)
	product.TagID = input.TagID
}
