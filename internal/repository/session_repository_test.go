package repository

import (
	"context"
	"testing"
	"time"

	"github.com/campus-mall/internal/models"
)

func TestSessionLifecycle(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewSessionRepository(db)
	ctx := context.Background()
	now := time.Now()

	live := &models.UserSession{SessionID: "live", Kind: "user", SubjectID: 1, ExpiresAt: now.Add(time.Hour)}
	stale := &models.UserSession{SessionID: "stale", Kind: "user", SubjectID: 1, ExpiresAt: now.Add(-time.Hour)}
	for _, s := range []*models.UserSession{live, stale} {
		if err := repo.Create(ctx, s); err != nil {
			t.Fatalf("create session failed: %v", err)
		}
	}

	removed, err := repo.DeleteExpired(ctx, now)
	if err != nil || removed != 1 {
		t.Fatalf("delete expired want 1 got %d err=%v", removed, err)
	}
	got, err := repo.GetBySessionID(ctx, "live")
	if err != nil || got == nil {
		t.Fatalf("live session should remain, err=%v", err)
	}

	if _, err := repo.DeleteBySessionID(ctx, "live"); err != nil {
		t.Fatalf("delete session failed: %v", err)
	}
	affected, err := repo.DeleteBySessionID(ctx, "live")
	if err != nil || affected != 0 {
		t.Fatalf("second delete should be a no-op, got %d err=%v", affected, err)
	}
	got, _ = repo.GetBySessionID(ctx, "live")
	if got != nil {
		t.Fatalf("deleted session should not resolve")
	}
}
