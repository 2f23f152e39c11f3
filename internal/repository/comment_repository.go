package repository

import (
	"context"
	"errors"

	"github.com/campus-mall/internal/models"

	"gorm.io/gorm"
)

// CommentRepository 评论数据访问接口
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	List(ctx context.Context, filter CommentListFilter) ([]models.Comment, int64, error)
	Delete(ctx context.Context, id uint) error
}

// GormCommentRepository GORM 实现
type GormCommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository 创建评论仓库
func NewCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// Create 创建评论
func (r *GormCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return scoped(ctx, r.db).Create(comment).Error
}

// GetByID 根据 ID 获取评论
func (r *GormCommentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := scoped(ctx, r.db).Preload("User").First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &comment, nil
}

// List 评论列表，最新的在前
func (r *GormCommentRepository) List(ctx context.Context, filter CommentListFilter) ([]models.Comment, int64, error) {
	query := scoped(ctx, r.db).Model(&models.Comment{})
	if filter.ProductID != 0 {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	query = whereKeyword(query, filter.Keyword, "content")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	comments := make([]models.Comment, 0)
	query = applyPagination(query, filter.Page, filter.PageSize)
	err := query.Preload("User", func(db *gorm.DB) *gorm.DB {
		return db.Unscoped().Select("id", "name", "face")
	}).Order("created_at DESC, id DESC").Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

// Delete 删除评论
func (r *GormCommentRepository) Delete(ctx context.Context, id uint) error {
	return scoped(ctx, r.db).Delete(&models.Comment{}, id).Error
}
