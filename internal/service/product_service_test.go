package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestProductServiceCreateValidates(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	tag, err := f.tags.Create(ctx, "Stationery")
	if err != nil {
		t.Fatalf("create tag failed: %v", err)
	}

	created, err := f.products.Create(ctx, ProductInput{
		Name:  "  Ruler  ",
		Price: decimal.RequireFromString("3.456"),
		Stock: 5,
		TagID: tag.ID,
	})
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	if created.Name != "Ruler" || created.Price.String() != "3.46" || created.Discount.String() != "10.00" {
		t.Fatalf("unexpected normalized product: name=%q price=%s discount=%s", created.Name, created.Price, created.Discount)
	}

	cases := []struct {
		name    string
		input   ProductInput
		wantErr error
	}{
		{"duplicate name", ProductInput{Name: "Ruler", Price: decimal.NewFromInt(1)}, ErrProductNameExists},
		{"negative price", ProductInput{Name: "Eraser", Price: decimal.NewFromInt(-1)}, ErrInvalidPrice},
		{"discount above 10", ProductInput{Name: "Eraser", Price: decimal.NewFromInt(1), Discount: decimal.NewFromInt(11)}, ErrInvalidDiscount},
		{"negative discount", ProductInput{Name: "Eraser", Price: decimal.NewFromInt(1), Discount: decimal.NewFromInt(-2)}, ErrInvalidDiscount},
		{"negative stock", ProductInput{Name: "Eraser", Price: decimal.NewFromInt(1), Stock: -1}, ErrInvalidQuantity},
		{"unknown tag", ProductInput{Name: "Eraser", Price: decimal.NewFromInt(1), TagID: 999}, ErrTagNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := f.products.Create(ctx, tc.input); !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestProductServiceUpdateKeepsCounters(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	product := f.createProduct(t, "Glue", "4")
	if err := f.db.Model(product).Updates(map[string]interface{}{"sell_count": 7, "view_count": 11}).Error; err != nil {
		t.Fatalf("seed counters failed: %v", err)
	}

	updated, err := f.products.Update(ctx, product.ID, ProductInput{Name: "Glue Stick", Price: decimal.NewFromInt(5), Discount: decimal.NewFromInt(9), IsFlashSale: true})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "Glue Stick" || !updated.IsFlashSale || updated.SellCount != 7 || updated.ViewCount != 11 {
		t.Fatalf("unexpected updated product: %+v", updated)
	}

	if err := f.products.Delete(ctx, product.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := f.products.GetAdminByID(ctx, product.ID); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestTagServiceRefusesDeleteInUse(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	tag, err := f.tags.Create(ctx, "Snacks")
	if err != nil {
		t.Fatalf("create tag failed: %v", err)
	}
	if _, err := f.tags.Create(ctx, "Snacks"); !errors.Is(err, ErrTagNameExists) {
		t.Fatalf("expected duplicate tag rejected, got %v", err)
	}
	if _, err := f.products.Create(ctx, ProductInput{Name: "Chips", Price: decimal.NewFromInt(3), TagID: tag.ID}); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	if err := f.tags.Delete(ctx, tag.ID); !errors.Is(err, ErrTagInUse) {
		t.Fatalf("expected tag in use, got %v", err)
	}

	empty, err := f.tags.Create(ctx, "Drinks")
	if err != nil {
		t.Fatalf("create tag failed: %v", err)
	}
	renamed, err := f.tags.Update(ctx, empty.ID, "Beverages")
	if err != nil || renamed.Name != "Beverages" {
		t.Fatalf("rename failed: %v %+v", err, renamed)
	}
	if err := f.tags.Delete(ctx, empty.ID); err != nil {
		t.Fatalf("delete unused tag failed: %v", err)
	}
}

func TestCommentServicePostAndList(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	user := f.registerUser(t, "quinn", "quinn@example.com", "13811118888")
	product := f.createProduct(t, "Headphones", "99")

	if _, err := f.comments.Post(ctx, user.ID, product.ID, "   "); !errors.Is(err, ErrCommentInvalid) {
		t.Fatalf("expected empty comment rejected, got %v", err)
	}
	if _, err := f.comments.Post(ctx, 0, product.ID, "nice"); !errors.Is(err, ErrLoginRequired) {
		t.Fatalf("expected login required, got %v", err)
	}
	if _, err := f.comments.Post(ctx, user.ID, 9999, "nice"); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected product not found, got %v", err)
	}
	comment, err := f.comments.Post(ctx, user.ID, product.ID, "Great sound")
	if err != nil {
		t.Fatalf("post comment failed: %v", err)
	}

	comments, total, pageSize, err := f.comments.ListByProduct(ctx, product.ID, 1)
	if err != nil {
		t.Fatalf("list comments failed: %v", err)
	}
	if total != 1 || pageSize != 10 || len(comments) != 1 || comments[0].User == nil || comments[0].User.Name != "quinn" {
		t.Fatalf("unexpected comments: total=%d size=%d %+v", total, pageSize, comments)
	}

	if err := f.comments.Delete(ctx, comment.ID); err != nil {
		t.Fatalf("delete comment failed: %v", err)
	}
	if err := f.comments.Delete(ctx, comment.ID); !errors.Is(err, ErrCommentNotFound) {
		t.Fatalf("expected comment not found, got %v", err)
	}
}

func TestValidatePasswordPolicy(t *testing.T) {
	f := newServiceFixture(t)
	policy := f.cfg.Security.PasswordPolicy
	policy.RequireLetter = true
	policy.RequireNumber = true

	err := validatePassword(policy, "abc")
	var policyErr passwordPolicyError
	if !errors.Is(err, ErrWeakPassword) || !errors.As(err, &policyErr) || policyErr.Key() != "error.password_weak" {
		t.Fatalf("expected min length violation, got %v", err)
	}
	if err := validatePassword(policy, "123456"); !errors.As(err, &policyErr) || policyErr.Key() != "error.password_require_letter" {
		t.Fatalf("expected letter requirement, got %v", err)
	}
	if err := validatePassword(policy, "abcdef"); !errors.As(err, &policyErr) || policyErr.Key() != "error.password_require_number" {
		t.Fatalf("expected number requirement, got %v", err)
	}
	if err := validatePassword(policy, "abc123"); err != nil {
		t.Fatalf("expected valid password, got %v", err)
	}
}
