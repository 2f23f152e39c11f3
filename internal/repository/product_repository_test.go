package repository

import (
	"context"
	"testing"
	"time"

	"github.com/campus-mall/internal/constants"
)

func TestProductListPaginationPastEndReturnsEmpty(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewProductRepository(db)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		createTestProduct(t, db, "product-"+string(rune('a'+i)), "1.00", 1, base.Add(time.Duration(i)*time.Hour))
	}

	items, total, err := repo.List(context.Background(), ProductListFilter{Page: 2, PageSize: 8})
	if err != nil {
		t.Fatalf("list page 2 failed: %v", err)
	}
	if total != 10 || len(items) != 2 {
		t.Fatalf("page 2 want total=10 len=2, got total=%d len=%d", total, len(items))
	}

	items, total, err = repo.List(context.Background(), ProductListFilter{Page: 9, PageSize: 8})
	if err != nil {
		t.Fatalf("list past end should not fail: %v", err)
	}
	if total != 10 || len(items) != 0 {
		t.Fatalf("past end want total=10 len=0, got total=%d len=%d", total, len(items))
	}

	items, total, err = repo.List(context.Background(), ProductListFilter{Page: 1<<61 + 1, PageSize: 8})
	if err != nil {
		t.Fatalf("list huge page should not fail: %v", err)
	}
	if total != 10 || len(items) != 0 {
		t.Fatalf("huge page want total=10 len=0, got total=%d len=%d", total, len(items))
	}
}

func TestProductListFilterAndSort(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewProductRepository(db)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	first := createTestProduct(t, db, "apple", "3.00", 1, base)
	second := createTestProduct(t, db, "banana", "2.00", 2, base.Add(time.Hour))
	third := createTestProduct(t, db, "cherry", "1.00", 1, base.Add(2*time.Hour))
	db.Model(first).Update("sell_count", 5)
	db.Model(third).Update("sell_count", 1)

	items, _, err := repo.List(context.Background(), ProductListFilter{PageSize: 8})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 3 || items[0].ID != first.ID || items[2].ID != third.ID {
		t.Fatalf("default order should be id asc, got %+v", items)
	}

	items, _, err = repo.List(context.Background(), ProductListFilter{PageSize: 8, TagID: 1})
	if err != nil {
		t.Fatalf("list by tag failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("tag filter want 2 got %d", len(items))
	}

	items, _, err = repo.List(context.Background(), ProductListFilter{PageSize: 8, SortKey: constants.ProductSortTime, SortDesc: true})
	if err != nil {
		t.Fatalf("list by time failed: %v", err)
	}
	if items[0].ID != third.ID || items[2].ID != first.ID {
		t.Fatalf("time desc order mismatch: %d,%d,%d", items[0].ID, items[1].ID, items[2].ID)
	}

	items, _, err = repo.List(context.Background(), ProductListFilter{PageSize: 8, SortKey: constants.ProductSortSell})
	if err != nil {
		t.Fatalf("list by sell failed: %v", err)
	}
	if items[0].ID != second.ID || items[2].ID != first.ID {
		t.Fatalf("sell asc order mismatch: %d,%d,%d", items[0].ID, items[1].ID, items[2].ID)
	}
}

func TestProductSearchIsCaseInsensitiveAndNewestFirst(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewProductRepository(db)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	older := createTestProduct(t, db, "Notebook", "5.00", 1, base)
	newer := createTestProduct(t, db, "notepad", "2.00", 1, base.Add(time.Hour))
	createTestProduct(t, db, "pencil", "1.00", 1, base.Add(2*time.Hour))

	items, total, err := repo.Search(context.Background(), ProductSearchFilter{Keyword: "NOTE", PageSize: 8})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Fatalf("search want 2 matches got total=%d len=%d", total, len(items))
	}
	if items[0].ID != newer.ID || items[1].ID != older.ID {
		t.Fatalf("search should order by created_at desc")
	}

	items, total, err = repo.Search(context.Background(), ProductSearchFilter{Keyword: "", PageSize: 8})
	if err != nil {
		t.Fatalf("empty search failed: %v", err)
	}
	if total != 3 || len(items) != 3 || items[2].ID != older.ID {
		t.Fatalf("empty key should return all products newest first, got total=%d", total)
	}
}

func TestProductSearchMatchesNonASCIIName(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewProductRepository(db)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	target := createTestProduct(t, db, "École Notebook", "5.00", 1, base)
	createTestProduct(t, db, "pencil", "1.00", 1, base.Add(time.Hour))

	for _, keyword := range []string{"École", "école", "ÉCOLE", "cole note"} {
		items, total, err := repo.Search(context.Background(), ProductSearchFilter{Keyword: keyword, PageSize: 8})
		if err != nil {
			t.Fatalf("search %q failed: %v", keyword, err)
		}
		if total != 1 || len(items) != 1 || items[0].ID != target.ID {
			t.Fatalf("search %q want the école product, got total=%d len=%d", keyword, total, len(items))
		}
	}
}

func TestProductCountersIncrement(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewProductRepository(db)
	product := createTestProduct(t, db, "mug", "9.90", 1, time.Now())

	if _, err := repo.IncrementViewCount(context.Background(), product.ID, 1); err != nil {
		t.Fatalf("increment view failed: %v", err)
	}
	if _, err := repo.IncrementSellCount(context.Background(), product.ID, 3); err != nil {
		t.Fatalf("increment sell failed: %v", err)
	}
	affected, err := repo.IncrementSellCount(context.Background(), product.ID, 0)
	if err != nil || affected != 0 {
		t.Fatalf("zero delta should be a no-op, affected=%d err=%v", affected, err)
	}

	got, err := repo.GetByID(context.Background(), product.ID)
	if err != nil || got == nil {
		t.Fatalf("get product failed: %v", err)
	}
	if got.ViewCount != 1 || got.SellCount != 3 {
		t.Fatalf("counters want view=1 sell=3 got view=%d sell=%d", got.ViewCount, got.SellCount)
	}
}

func TestProductFlashSaleListExcludesCurrent(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewProductRepository(db)
	a := createTestProduct(t, db, "flash-a", "1.00", 1, time.Now())
	b := createTestProduct(t, db, "flash-b", "1.00", 1, time.Now())
	createTestProduct(t, db, "regular", "1.00", 1, time.Now())
	db.Model(a).Update("is_flash_sale", true)
	db.Model(b).Update("is_flash_sale", true)

	items, err := repo.ListFlashSale(context.Background(), a.ID, 0)
	if err != nil {
		t.Fatalf("list flash sale failed: %v", err)
	}
	if len(items) != 1 || items[0].ID != b.ID {
		t.Fatalf("flash sale list want [%d] got %+v", b.ID, items)
	}
}
