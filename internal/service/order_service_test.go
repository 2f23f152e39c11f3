package service

import (
	"context"
	"errors"
	"testing"

	"github.com/campus-mall/internal/constants"
	"github.com/campus-mall/internal/models"
)

func TestAddToCartTwiceCreatesTwoRows(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	user := f.registerUser(t, "kate", "kate@example.com", "13811112222")
	product := f.createProduct(t, "notebook", "10")

	for i := 0; i < 2; i++ {
		if _, err := f.cart.AddToCart(ctx, user.ID, product.ID, 1); err != nil {
			t.Fatalf("add to cart #%d failed: %v", i+1, err)
		}
	}

	var carts int64
	if err := f.db.Model(&models.Cart{}).Where("user_id = ?", user.ID).Count(&carts).Error; err != nil {
		t.Fatalf("count carts failed: %v", err)
	}
	if carts != 1 {
		t.Fatalf("expected 1 cart, got %d", carts)
	}
	view, err := f.cart.ListCart(ctx, user.ID)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if len(view.Items) != 2 {
		t.Fatalf("expected 2 cart rows, got %d", len(view.Items))
	}
	if !view.Subtotal.Equal(models.MustMoney("20")) {
		t.Fatalf("expected subtotal 20, got %s", view.Subtotal)
	}
}

func TestAddToCartSnapshotsDiscountedPrice(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	user := f.registerUser(t, "liam", "liam@example.com", "13811113333")
	product := &models.Product{
		Name:        "lamp",
		Price:       models.MustMoney("100"),
		Discount:    models.MustMoney("8"),
		IsFlashSale: true,
	}
	if err := f.db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	item, err := f.cart.AddToCart(ctx, user.ID, product.ID, 3)
	if err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}
	if item.ProductName != "lamp" || !item.ProductPrice.Equal(models.MustMoney("80")) || item.Quantity != 3 {
		t.Fatalf("unexpected cart item: %+v", item)
	}
}

func TestAddToCartRejectsInvalidRequests(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	user := f.registerUser(t, "mia", "mia@example.com", "13811114444")
	product := f.createProduct(t, "pen", "2")

	if _, err := f.cart.AddToCart(ctx, 0, product.ID, 1); !errors.Is(err, ErrLoginRequired) {
		t.Fatalf("expected login required, got %v", err)
	}
	if _, err := f.cart.AddToCart(ctx, user.ID, product.ID, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected invalid quantity, got %v", err)
	}
	if _, err := f.cart.AddToCart(ctx, user.ID, 9999, 1); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected product not found, got %v", err)
	}

	var carts int64
	if err := f.db.Model(&models.Cart{}).Count(&carts).Error; err != nil {
		t.Fatalf("count carts failed: %v", err)
	}
	if carts != 0 {
		t.Fatalf("expected cart creation rolled back, got %d carts", carts)
	}
}

func TestCheckoutComputesSubtotalAndClearsCart(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	user := f.registerUser(t, "noah", "noah@example.com", "13811115555")
	ten := f.createProduct(t, "mug", "10")
	five := f.createProduct(t, "spoon", "5")

	if _, err := f.cart.AddToCart(ctx, user.ID, ten.ID, 2); err != nil {
		t.Fatalf("add mug failed: %v", err)
	}
	if _, err := f.cart.AddToCart(ctx, user.ID, five.ID, 1); err != nil {
		t.Fatalf("add spoon failed: %v", err)
	}

	order, err := f.orders.Checkout(ctx, user.ID)
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if !order.Subtotal.Equal(models.MustMoney("25")) {
		t.Fatalf("expected subtotal 25, got %s", order.Subtotal)
	}
	if order.Status != constants.OrderStatusPendingStorage {
		t.Fatalf("expected pending storage status, got %d", order.Status)
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 order lines, got %d", len(order.Items))
	}

	view, err := f.cart.ListCart(ctx, user.ID)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if len(view.Items) != 0 {
		t.Fatalf("expected empty cart after checkout, got %d rows", len(view.Items))
	}

	again, err := f.orders.Checkout(ctx, user.ID)
	if err != nil {
		t.Fatalf("second checkout failed: %v", err)
	}
	if again.ID != order.ID {
		t.Fatalf("expected the same order to be reused, got %d and %d", order.ID, again.ID)
	}
	if !again.Subtotal.Equal(models.MustMoney("25")) || len(again.Items) != 2 {
		t.Fatalf("expected subtotal to stay 25 with 2 lines, got %s with %d", again.Subtotal, len(again.Items))
	}

	var mug models.Product
	if err := f.db.First(&mug, ten.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if mug.SellCount != 2 {
		t.Fatalf("expected sell count 2, got %d", mug.SellCount)
	}
}

func TestCheckoutAppendsNewCartLinesToExistingOrder(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	user := f.registerUser(t, "olga", "olga@example.com", "13811116666")
	product := f.createProduct(t, "bag", "12.50")

	if _, err := f.cart.AddToCart(ctx, user.ID, product.ID, 1); err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}
	if _, err := f.orders.Checkout(ctx, user.ID); err != nil {
		t.Fatalf("first checkout failed: %v", err)
	}
	if _, err := f.cart.AddToCart(ctx, user.ID, product.ID, 2); err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}
	order, err := f.orders.Checkout(ctx, user.ID)
	if err != nil {
		t.Fatalf("second checkout failed: %v", err)
	}

	sum := models.Money{}
	for _, item := range order.Items {
		sum = sum.Add(item.LineTotal())
	}
	if !order.Subtotal.Equal(sum) || !sum.Equal(models.MustMoney("37.50")) {
		t.Fatalf("expected subtotal 37.50 matching lines, got subtotal %s sum %s", order.Subtotal, sum)
	}
}

func TestCheckoutRequiresLogin(t *testing.T) {
	f := newServiceFixture(t)
	if _, err := f.orders.Checkout(context.Background(), 0); !errors.Is(err, ErrLoginRequired) {
		t.Fatalf("expected login required, got %v", err)
	}
}

func TestUpdateOrderStatusForwardOnly(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	user := f.registerUser(t, "paul", "paul@example.com", "13811117777")
	order, err := f.orders.Checkout(ctx, user.ID)
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	updated, err := f.orders.UpdateStatus(ctx, order.ID, constants.OrderStatusAwaitingPayment)
	if err != nil {
		t.Fatalf("update to awaiting payment failed: %v", err)
	}
	if updated.Status != constants.OrderStatusAwaitingPayment {
		t.Fatalf("expected status 1, got %d", updated.Status)
	}
	if _, err := f.orders.UpdateStatus(ctx, order.ID, constants.OrderStatusPendingStorage); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected backwards transition rejected, got %v", err)
	}
	if _, err := f.orders.UpdateStatus(ctx, order.ID, constants.OrderStatusPaid); err != nil {
		t.Fatalf("update to paid failed: %v", err)
	}
	if _, err := f.orders.UpdateStatus(ctx, order.ID, constants.OrderStatusPaid); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected paid to be terminal, got %v", err)
	}
	if _, err := f.orders.UpdateStatus(ctx, 9999, constants.OrderStatusPaid); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestIsTransitionAllowed(t *testing.T) {
	cases := []struct {
		from, to int
		want     bool
	}{
		{constants.OrderStatusPendingStorage, constants.OrderStatusAwaitingPayment, true},
		{constants.OrderStatusPendingStorage, constants.OrderStatusPaid, true},
		{constants.OrderStatusAwaitingPayment, constants.OrderStatusPaid, true},
		{constants.OrderStatusAwaitingPayment, constants.OrderStatusPendingStorage, false},
		{constants.OrderStatusPaid, constants.OrderStatusAwaitingPayment, false},
		{constants.OrderStatusPendingStorage, constants.OrderStatusPendingStorage, false},
		{7, constants.OrderStatusPaid, false},
	}
	for _, tc := range cases {
		if got := isTransitionAllowed(tc.from, tc.to); got != tc.want {
			t.Fatalf("isTransitionAllowed(%d, %d) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}
