package repository

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/campus-mall/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func openRepositoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db failed: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func createTestProduct(t *testing.T, db *gorm.DB, name, price string, tagID uint, createdAt time.Time) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:      name,
		Price:     models.MustMoney(price),
		Discount:  models.MustMoney("10"),
		Stock:     10,
		TagID:     tagID,
		CreatedAt: createdAt,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product %s failed: %v", name, err)
	}
	return product
}
