package repository

import (
	"context"
	"testing"
	"time"

	"github.com/campus-mall/internal/constants"
	"github.com/campus-mall/internal/models"
)

func TestDashboardOverviewCountsAndPaidAmount(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewDashboardRepository(db)
	now := time.Now()

	low := createTestProduct(t, db, "low", "1.00", 1, now)
	empty := createTestProduct(t, db, "empty", "1.00", 1, now)
	createTestProduct(t, db, "plenty", "1.00", 1, now)
	db.Model(low).Update("stock", 2)
	db.Model(empty).Update("stock", 0)

	orders := []models.Order{
		{UserID: 1, Status: constants.OrderStatusPaid, Subtotal: models.MustMoney("25.50")},
		{UserID: 2, Status: constants.OrderStatusPaid, Subtotal: models.MustMoney("4.50")},
		{UserID: 3, Status: constants.OrderStatusPendingStorage, Subtotal: models.MustMoney("99")},
	}
	if err := db.Create(&orders).Error; err != nil {
		t.Fatalf("create orders failed: %v", err)
	}

	overview, err := repo.GetOverview(context.Background(), 5)
	if err != nil {
		t.Fatalf("get overview failed: %v", err)
	}
	if overview.ProductsTotal != 3 || overview.OutOfStockProducts != 1 || overview.LowStockProducts != 1 {
		t.Fatalf("product stats mismatch: %+v", overview)
	}
	if overview.OrdersTotal != 3 || overview.PaidOrders != 2 || overview.PendingStorageOrders != 1 {
		t.Fatalf("order stats mismatch: %+v", overview)
	}
	if !overview.PaidAmount.Equal(models.MustMoney("30")) {
		t.Fatalf("paid amount want 30 got %s", overview.PaidAmount)
	}
}

func TestDashboardTopProductsBySellCount(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewDashboardRepository(db)
	a := createTestProduct(t, db, "a", "1.00", 1, time.Now())
	b := createTestProduct(t, db, "b", "1.00", 1, time.Now())
	db.Model(a).Update("sell_count", 1)
	db.Model(b).Update("sell_count", 9)

	rows, err := repo.GetTopProducts(context.Background(), 1)
	if err != nil {
		t.Fatalf("top products failed: %v", err)
	}
	if len(rows) != 1 || rows[0].ProductID != b.ID || rows[0].SellCount != 9 {
		t.Fatalf("top product mismatch: %+v", rows)
	}
}
