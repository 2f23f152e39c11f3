package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/campus-mall/internal/models"

	"gorm.io/gorm"
)

func TestCartItemsResolveThroughUserCart(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewCartRepository(db)
	ctx := context.Background()
	product := createTestProduct(t, db, "pen", "2.50", 1, time.Now())

	cart, err := repo.GetByUser(ctx, 7)
	if err != nil || cart != nil {
		t.Fatalf("missing cart should be nil, got %+v err=%v", cart, err)
	}
	cart = &models.Cart{UserID: 7}
	if err := repo.Create(ctx, cart); err != nil {
		t.Fatalf("create cart failed: %v", err)
	}
	for i := 0; i < 2; i++ {
		item := &models.CartInfo{
			CartID:       cart.ID,
			ProductID:    product.ID,
			ProductName:  product.Name,
			ProductPrice: product.TruePrice(),
			Quantity:     1,
		}
		if err := repo.AddItem(ctx, item); err != nil {
			t.Fatalf("add item failed: %v", err)
		}
	}
	other := &models.Cart{UserID: 8}
	if err := repo.Create(ctx, other); err != nil {
		t.Fatalf("create other cart failed: %v", err)
	}
	if err := repo.AddItem(ctx, &models.CartInfo{CartID: other.ID, ProductID: product.ID, ProductName: "pen", ProductPrice: models.MustMoney("2.50"), Quantity: 4}); err != nil {
		t.Fatalf("add other item failed: %v", err)
	}

	items, err := repo.ListItemsByUser(ctx, 7)
	if err != nil {
		t.Fatalf("list items failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("same product twice should yield two rows, got %d", len(items))
	}

	cleared, err := repo.ClearItems(ctx, cart.ID)
	if err != nil || cleared != 2 {
		t.Fatalf("clear items want 2 got %d err=%v", cleared, err)
	}
	items, _ = repo.ListItemsByUser(ctx, 8)
	if len(items) != 1 {
		t.Fatalf("other user's cart must be untouched, got %d", len(items))
	}
}

func TestCartUniquePerUser(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewCartRepository(db)
	if err := repo.Create(context.Background(), &models.Cart{UserID: 1}); err != nil {
		t.Fatalf("create cart failed: %v", err)
	}
	if err := repo.Create(context.Background(), &models.Cart{UserID: 1}); err == nil {
		t.Fatalf("second cart for the same user should violate unique index")
	}
}

func TestOrderUniquePerUser(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewOrderRepository(db)
	if err := repo.Create(context.Background(), &models.Order{UserID: 1}); err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if err := repo.Create(context.Background(), &models.Order{UserID: 1}); err == nil {
		t.Fatalf("second order for the same user should violate unique index")
	}
	if err := repo.Create(context.Background(), &models.Order{UserID: 2}); err != nil {
		t.Fatalf("order for another user failed: %v", err)
	}
}

func TestRunInTxRollsBackOnError(t *testing.T) {
	db := openRepositoryTestDB(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := RunInTx(ctx, db, func(tx *gorm.DB) error {
		if err := NewOrderRepository(db).WithTx(tx).Create(ctx, &models.Order{UserID: 3}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("want boom error, got %v", err)
	}
	order, err := NewOrderRepository(db).GetByUser(ctx, 3)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if order != nil {
		t.Fatalf("order should have been rolled back")
	}
}

func TestOrderItemsAndStatusTransition(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	order := &models.Order{UserID: 5}
	if err := repo.Create(ctx, order); err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	items := []models.OrderInfo{
		{OrderID: order.ID, ProductID: 1, ProductName: "a", ProductPrice: models.MustMoney("10"), Quantity: 2},
		{OrderID: order.ID, ProductID: 2, ProductName: "b", ProductPrice: models.MustMoney("5"), Quantity: 1},
	}
	if err := repo.AddItems(ctx, items); err != nil {
		t.Fatalf("add items failed: %v", err)
	}
	if err := repo.UpdateSubtotal(ctx, order.ID, models.MustMoney("25")); err != nil {
		t.Fatalf("update subtotal failed: %v", err)
	}

	got, err := repo.GetByID(ctx, order.ID)
	if err != nil || got == nil {
		t.Fatalf("get order failed: %v", err)
	}
	if len(got.Items) != 2 || !got.Subtotal.Equal(models.MustMoney("25")) {
		t.Fatalf("order want 2 items subtotal 25, got %d items subtotal %s", len(got.Items), got.Subtotal)
	}

	affected, err := repo.UpdateStatus(ctx, order.ID, 1, 2)
	if err != nil || affected != 0 {
		t.Fatalf("stale transition should affect 0 rows, got %d err=%v", affected, err)
	}
	affected, err = repo.UpdateStatus(ctx, order.ID, 0, 1)
	if err != nil || affected != 1 {
		t.Fatalf("transition 0->1 should affect 1 row, got %d err=%v", affected, err)
	}
}
