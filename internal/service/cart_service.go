package service

import (
	"context"
	"errors"

	"github.com/campus-mall/internal/metrics"
	"github.com/campus-mall/internal/models"
	"github.com/campus-mall/internal/repository"

	"gorm.io/gorm"
)

// CartView 购物车视图
type CartView struct {
	Items    []models.CartInfo `json:"items"`
	Subtotal models.Money      `json:"subtotal"`
}

// CartService 购物车服务
type CartService struct {
	db          *gorm.DB
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	metrics     *metrics.Metrics
}

// NewCartService 创建购物车服务
func NewCartService(db *gorm.DB, cartRepo repository.CartRepository, productRepo repository.ProductRepository, m *metrics.Metrics) *CartService {
	return &CartService{
		db:          db,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		metrics:     m,
	}
}

// AddToCart 加入购物车
// 购物车不存在时先创建；同一商品重复加入会新增一条明细，不做数量合并。
func (s *CartService) AddToCart(ctx context.Context, userID, productID uint, quantity int) (*models.CartInfo, error) {
	if userID == 0 {
		return nil, ErrLoginRequired
	}
	if quantity <= 0 {
		return nil, newValidationError("quantity", ErrInvalidQuantity)
	}

	var item *models.CartInfo
	err := repository.RunInTx(ctx, s.db, func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)

		cart, err := cartRepo.GetByUser(ctx, userID)
		if err != nil {
			return persistenceError("get cart", err)
		}
		if cart == nil {
			cart = &models.Cart{UserID: userID}
			if err := cartRepo.Create(ctx, cart); err != nil {
				return persistenceError("create cart", err)
			}
		}

		product, err := productRepo.GetByID(ctx, productID)
		if err != nil {
			return persistenceError("get product", err)
		}
		if product == nil {
			return ErrProductNotFound
		}

		item = &models.CartInfo{
			Quantity:     quantity,
			ProductName:  product.Name,
			ProductPrice: product.TruePrice(),
			CartID:       cart.ID,
			ProductID:    product.ID,
		}
		if err := cartRepo.AddItem(ctx, item); err != nil {
			return persistenceError("add cart item", err)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrPersistence) {
			err = persistenceError("add to cart", err)
		}
		s.metrics.ObserveCartAdd(false)
		return nil, err
	}
	s.metrics.ObserveCartAdd(true)
	return item, nil
}

// ListCart 获取购物车明细与小计预览
func (s *CartService) ListCart(ctx context.Context, userID uint) (*CartView, error) {
	view := &CartView{Items: []models.CartInfo{}}
	if userID == 0 {
		return view, nil
	}
	items, err := s.cartRepo.ListItemsByUser(ctx, userID)
	if err != nil {
		return nil, persistenceError("list cart items", err)
	}
	view.Items = items
	for _, item := range items {
		view.Subtotal = view.Subtotal.Add(item.LineTotal())
	}
	return view, nil
}
