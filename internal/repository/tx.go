package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// RunInTx 在单个事务中执行 fn，fn 返回错误或 panic 时整体回滚
func RunInTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return errors.New("run in tx: db is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return db.WithContext(ctx).Transaction(fn)
}

func scoped(ctx context.Context, db *gorm.DB) *gorm.DB {
	if ctx == nil {
		return db
	}
	return db.WithContext(ctx)
}
