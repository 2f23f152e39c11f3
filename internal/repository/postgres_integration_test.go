//go:build integration
// +build integration

package repository

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/campus-mall/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{DisableForeignKeyConstraintWhenMigrating: true})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanupModels := models.AllModels()
	_ = db.Migrator().DropTable(cleanupModels...)
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanupModels...)
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func TestPostgresProductSearchUsesILike(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Second)

	for i, name := range []string{"Rocket Pen", "rocket mug", "Desk Lamp", "100%_cotton"} {
		product := &models.Product{
			Name:      name,
			Price:     models.MustMoney("9.90"),
			Discount:  models.MustMoney("10"),
			TagID:     1,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Create(ctx, product); err != nil {
			t.Fatalf("create product failed: %v", err)
		}
	}

	rows, total, err := repo.Search(ctx, ProductSearchFilter{Keyword: "ROCKET", Page: 1, PageSize: 8})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if total != 2 || len(rows) != 2 || rows[0].Name != "rocket mug" {
		t.Fatalf("search want 2 newest-first got total=%d", total)
	}

	_, total, err = repo.Search(ctx, ProductSearchFilter{Keyword: "%_", Page: 1, PageSize: 8})
	if err != nil {
		t.Fatalf("wildcard search failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("wildcards should be matched literally, got %d", total)
	}
}

func TestPostgresCheckoutWritesInOneTransaction(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	ctx := context.Background()
	orders := NewOrderRepository(db)

	err := RunInTx(ctx, db, func(tx *gorm.DB) error {
		order := &models.Order{UserID: 42}
		if err := orders.WithTx(tx).Create(ctx, order); err != nil {
			return err
		}
		items := []models.OrderInfo{{OrderID: order.ID, ProductID: 1, ProductName: "x", ProductPrice: models.MustMoney("10"), Quantity: 2}}
		if err := orders.WithTx(tx).AddItems(ctx, items); err != nil {
			return err
		}
		return orders.WithTx(tx).UpdateSubtotal(ctx, order.ID, models.MustMoney("20"))
	})
	if err != nil {
		t.Fatalf("transaction failed: %v", err)
	}
	order, err := orders.GetByUser(ctx, 42)
	if err != nil || order == nil {
		t.Fatalf("order should exist: %v", err)
	}
	if !order.Subtotal.Equal(models.MustMoney("20")) {
		t.Fatalf("subtotal want 20 got %s", order.Subtotal)
	}
}
